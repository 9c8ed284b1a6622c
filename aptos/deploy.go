package aptos

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexZinkM/aptos-gifts/internal/common"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
	"github.com/AlexZinkM/aptos-gifts/internal/move"
	"github.com/AlexZinkM/aptos-gifts/internal/record"

	"github.com/aptos-labs/aptos-go-sdk"
	"go.uber.org/zap"
)

// DefaultMinBalanceOctas is the smallest balance a deployer may publish with
const DefaultMinBalanceOctas = 5000

// Chain is the network surface a deployment needs
type Chain interface {
	ResourceReader
	AccountExists(ctx context.Context, address string) (bool, error)
	PublishPackage(ctx context.Context, signer aptos.TransactionSigner, metadata []byte, modules [][]byte) (string, error)
	WaitForTransaction(ctx context.Context, hash string) (*model.TransactionStatus, error)
	NodeURL() string
}

// Compiler builds the Move package for a deployer address
type Compiler interface {
	Compile(ctx context.Context, address string) error
}

// DeployOptions configures a deployment run
type DeployOptions struct {
	Identity        IdentityOptions
	MinBalanceOctas uint64
	VerifyAccount   bool
	SkipCompile     bool
	BuildDir        string
	RecordPath      string
}

// Deployer publishes the gifts package
type Deployer struct {
	chain    Chain
	compiler Compiler
	opts     DeployOptions
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeployer creates a Deployer. A nil logger discards output.
func NewDeployer(chain Chain, compiler Compiler, opts DeployOptions, logger *zap.Logger) *Deployer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{
		chain:    chain,
		compiler: compiler,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes the 7-step deployment pipeline. Any failure ends the run;
// the record is written only after the publish transaction succeeded.
func (d *Deployer) Run(ctx context.Context) (*model.DeploymentRecord, error) {
	d.logger.Info("🚀 Starting deployment process...")

	identity, err := d.resolveIdentity()
	if err != nil {
		return nil, err
	}

	if err := d.checkFunding(ctx, identity); err != nil {
		return nil, err
	}

	if err := d.verifyAccount(ctx, identity); err != nil {
		return nil, err
	}

	if err := d.compile(ctx, identity); err != nil {
		return nil, err
	}

	hash, err := d.publish(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := d.awaitFinality(ctx, hash); err != nil {
		return nil, err
	}

	rec, err := d.persist(identity, hash)
	if err != nil {
		return nil, err
	}

	d.logger.Info("✅ Contract deployed successfully!",
		zap.String("transactionHash", hash),
		zap.String("deployer", identity.Address()),
	)
	return rec, nil
}

func (d *Deployer) resolveIdentity() (*Identity, error) {
	d.logger.Info("1️⃣  Resolving deployer identity...")

	identity, err := ResolveIdentity(d.opts.Identity)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Account address", zap.String("address", identity.Address()), zap.String("keyRef", identity.KeyRef))
	return identity, nil
}

func (d *Deployer) checkFunding(ctx context.Context, identity *Identity) error {
	d.logger.Info("2️⃣  Checking account balance...")

	resources, err := d.chain.AccountResources(ctx, identity.Address())
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}

	octas, found, err := CoinBalance(resources)
	if err != nil {
		return err
	}
	d.logger.Info("Current balance", zap.String("apt", common.OctasToAPT(octas)), zap.Bool("coinStore", found))

	minBalance := d.opts.MinBalanceOctas
	if !found || octas < minBalance {
		return &FundingRequiredError{Address: identity.Address(), Balance: octas, Required: minBalance}
	}
	return nil
}

func (d *Deployer) verifyAccount(ctx context.Context, identity *Identity) error {
	if !d.opts.VerifyAccount {
		return nil
	}
	d.logger.Info("3️⃣  Verifying account exists on-chain...")

	exists, err := d.chain.AccountExists(ctx, identity.Address())
	if err != nil {
		return fmt.Errorf("failed to verify account: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, identity.Address())
	}
	return nil
}

func (d *Deployer) compile(ctx context.Context, identity *Identity) error {
	if d.opts.SkipCompile {
		d.logger.Info("4️⃣  Skipping compilation, using existing build output")
		return nil
	}
	d.logger.Info("4️⃣  📝 Compiling contract...")

	if err := d.compiler.Compile(ctx, identity.Address()); err != nil {
		return fmt.Errorf("failed to compile package: %w", err)
	}
	return nil
}

func (d *Deployer) publish(ctx context.Context, identity *Identity) (string, error) {
	d.logger.Info("5️⃣  📦 Deploying contract...")

	artifacts, err := move.LoadArtifacts(d.opts.BuildDir)
	if err != nil {
		return "", err
	}
	d.logger.Debug("Loaded build artifacts", zap.Strings("modules", artifacts.Names), zap.Int("metadataBytes", len(artifacts.Metadata)))

	hash, err := d.chain.PublishPackage(ctx, identity.Account, artifacts.Metadata, artifacts.Modules)
	if err != nil {
		return "", fmt.Errorf("failed to publish package: %w", err)
	}
	d.logger.Info("Publish transaction submitted", zap.String("transactionHash", hash))
	return hash, nil
}

func (d *Deployer) awaitFinality(ctx context.Context, hash string) error {
	d.logger.Info("6️⃣  Waiting for transaction...", zap.String("transactionHash", hash))

	status, err := d.chain.WaitForTransaction(ctx, hash)
	if err != nil {
		return err
	}
	if !status.Success {
		d.logger.Error("Transaction failed", zap.String("vmStatus", status.VMStatus))
		return &TransactionFailedError{Hash: hash, VMStatus: status.VMStatus}
	}
	return nil
}

func (d *Deployer) persist(identity *Identity, hash string) (*model.DeploymentRecord, error) {
	d.logger.Info("7️⃣  Saving deployment info...", zap.String("path", d.opts.RecordPath))

	rec := &model.DeploymentRecord{
		NetworkURL:      d.chain.NodeURL(),
		DeployerAddress: identity.Address(),
		DeployerKeyRef:  identity.KeyRef,
		TransactionHash: hash,
		Timestamp:       d.now().UTC().Format(time.RFC3339),
	}
	if err := record.Write(d.opts.RecordPath, rec); err != nil {
		return nil, err
	}

	d.logger.Info("💾 Deployment info saved", zap.String("path", d.opts.RecordPath))
	return rec, nil
}
