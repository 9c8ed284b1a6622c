package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/aptos-gifts/internal/model"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/api"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
)

const (
	codeModule          = "code"
	publishPackageEntry = "publish_package_txn"

	// waitForever replaces the SDK's 10s poll timeout when none is configured
	waitForever = 100 * 365 * 24 * time.Hour
)

// Options tunes transaction submission
type Options struct {
	MaxGasAmount uint64
	WaitTimeout  time.Duration // 0 waits until the transaction commits or ctx is done
}

// AptosClient is a client for the Aptos fullnode and faucet
type AptosClient struct {
	client  *aptos.Client
	network aptos.NetworkConfig
	opts    Options
}

// ResolveNetwork returns the named network config with optional URL overrides
func ResolveNetwork(name, nodeURL, faucetURL string) (aptos.NetworkConfig, error) {
	var network aptos.NetworkConfig
	switch strings.ToLower(name) {
	case "mainnet":
		network = aptos.MainnetConfig
	case "testnet", "":
		network = aptos.TestnetConfig
	case "devnet":
		network = aptos.DevnetConfig
	case "localnet", "local":
		network = aptos.LocalnetConfig
	default:
		if nodeURL == "" {
			return aptos.NetworkConfig{}, fmt.Errorf("unknown network %q: set APTOS_NODE_URL for custom networks", name)
		}
		network = aptos.NetworkConfig{Name: name}
	}

	if nodeURL != "" {
		network.NodeUrl = nodeURL
	}
	if faucetURL != "" {
		network.FaucetUrl = faucetURL
	}
	return network, nil
}

// NewAptosClient creates a new client for the given network
func NewAptosClient(network aptos.NetworkConfig, opts Options) (*AptosClient, error) {
	c, err := aptos.NewClient(network)
	if err != nil {
		return nil, fmt.Errorf("failed to create Aptos client: %w", err)
	}
	return &AptosClient{client: c, network: network, opts: opts}, nil
}

// NodeURL returns the fullnode REST endpoint
func (c *AptosClient) NodeURL() string {
	return c.network.NodeUrl
}

// NetworkName returns the network name, e.g. testnet
func (c *AptosClient) NetworkName() string {
	return c.network.Name
}

// ParseAddress parses a hex account address, short forms allowed
func ParseAddress(address string) (aptos.AccountAddress, error) {
	var addr aptos.AccountAddress
	if err := addr.ParseStringRelaxed(address); err != nil {
		return addr, fmt.Errorf("invalid Aptos address %q: %w", address, err)
	}
	return addr, nil
}

// AccountResources returns all resources of the account.
// An account that does not exist yet has no resources.
func (c *AptosClient) AccountResources(ctx context.Context, address string) ([]model.AccountResource, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resources, err := c.client.AccountResources(addr)
	if err != nil {
		if isNotFound(err) {
			return []model.AccountResource{}, nil
		}
		return nil, fmt.Errorf("failed to get account resources: %w", err)
	}

	out := make([]model.AccountResource, 0, len(resources))
	for _, r := range resources {
		out = append(out, model.AccountResource{Type: r.Type, Data: r.Data})
	}
	return out, nil
}

// AccountExists reports whether the account is known on-chain
func (c *AptosClient) AccountExists(ctx context.Context, address string) (bool, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := c.client.Account(addr); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account: %w", err)
	}
	return true, nil
}

// PublishPackage submits 0x1::code::publish_package_txn signed by signer and
// returns the transaction hash. It does not wait for the transaction.
func (c *AptosClient) PublishPackage(ctx context.Context, signer aptos.TransactionSigner, metadata []byte, modules [][]byte) (string, error) {
	args, err := EncodePublishArgs(metadata, modules)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, signer, aptos.AccountOne, codeModule, publishPackageEntry, args)
}

// SubmitEntryFunction submits <moduleAddress>::<module>::<function>(args...) signed by signer
// and returns the transaction hash. args must already be BCS encoded.
func (c *AptosClient) SubmitEntryFunction(ctx context.Context, signer aptos.TransactionSigner, moduleAddress, module, function string, args [][]byte) (string, error) {
	addr, err := ParseAddress(moduleAddress)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, signer, addr, module, function, args)
}

func (c *AptosClient) submit(ctx context.Context, signer aptos.TransactionSigner, moduleAddress aptos.AccountAddress, module, function string, args [][]byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload := aptos.TransactionPayload{
		Payload: &aptos.EntryFunction{
			Module: aptos.ModuleId{
				Address: moduleAddress,
				Name:    module,
			},
			Function: function,
			ArgTypes: []aptos.TypeTag{},
			Args:     args,
		},
	}

	var options []any
	if c.opts.MaxGasAmount > 0 {
		options = append(options, aptos.MaxGasAmount(c.opts.MaxGasAmount))
	}

	resp, err := c.client.BuildSignAndSubmitTransaction(signer, payload, options...)
	if err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	return resp.Hash, nil
}

// WaitForTransaction blocks until the transaction is committed, the wait fails or ctx is done.
// Without a configured WaitTimeout the wait is bounded only by waitForever.
func (c *AptosClient) WaitForTransaction(ctx context.Context, hash string) (*model.TransactionStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.opts.WaitTimeout
	if timeout <= 0 {
		timeout = waitForever
	}

	type result struct {
		txn *api.UserTransaction
		err error
	}
	done := make(chan result, 1)
	go func() {
		txn, err := c.client.WaitForTransaction(hash, aptos.PollTimeout(timeout))
		done <- result{txn: txn, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("stopped waiting for transaction %s: %w", hash, ctx.Err())
	case r = <-done:
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", hash, r.err)
	}

	return &model.TransactionStatus{
		Hash:     r.txn.Hash,
		Success:  r.txn.Success,
		VMStatus: r.txn.VmStatus,
		Version:  r.txn.Version,
		GasUsed:  r.txn.GasUsed,
	}, nil
}

// Fund asks the network faucet to mint octas to address
func (c *AptosClient) Fund(ctx context.Context, address string, octas uint64) error {
	if c.network.FaucetUrl == "" {
		return fmt.Errorf("network %s has no faucet", c.network.Name)
	}
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.client.Fund(addr, octas); err != nil {
		return fmt.Errorf("failed to fund account: %w", err)
	}
	return nil
}

// EncodePublishArgs BCS encodes (metadata: vector<u8>, code: vector<vector<u8>>)
func EncodePublishArgs(metadata []byte, modules [][]byte) ([][]byte, error) {
	metadataArg, err := bcs.SerializeBytes(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode package metadata: %w", err)
	}

	ser := &bcs.Serializer{}
	ser.Uleb128(uint32(len(modules)))
	for _, m := range modules {
		ser.WriteBytes(m)
	}
	if err := ser.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode module bytecode: %w", err)
	}

	return [][]byte{metadataArg, ser.ToBytes()}, nil
}

// EncodeGiftArgs BCS encodes (recipient: address, amount: u64, message: String)
func EncodeGiftArgs(recipient string, octas uint64, message string) ([][]byte, error) {
	addr, err := ParseAddress(recipient)
	if err != nil {
		return nil, err
	}

	recipientArg, err := bcs.Serialize(&addr)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipient: %w", err)
	}
	amountArg, err := bcs.SerializeU64(octas)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	messageArg, err := bcs.SerializeBytes([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	return [][]byte{recipientArg, amountArg, messageArg}, nil
}

// isNotFound checks if the node answered 404 (unknown account or resource)
func isNotFound(err error) bool {
	var httpErr *aptos.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}
	return false
}
