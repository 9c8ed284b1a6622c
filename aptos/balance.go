package aptos

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AlexZinkM/aptos-gifts/internal/common"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
)

// CoinStoreType is the resource holding an account's APT balance
const CoinStoreType = "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>"

// ResourceReader reads on-chain account resources
type ResourceReader interface {
	AccountResources(ctx context.Context, address string) ([]model.AccountResource, error)
}

// CoinBalance extracts the APT balance in octas from account resources.
// found is false when the account has no CoinStore<AptosCoin>.
func CoinBalance(resources []model.AccountResource) (octas uint64, found bool, err error) {
	for _, r := range resources {
		if r.Type != CoinStoreType {
			continue
		}
		coin, ok := r.Data["coin"].(map[string]any)
		if !ok {
			return 0, true, fmt.Errorf("malformed %s: missing coin", CoinStoreType)
		}
		value, ok := coin["value"].(string)
		if !ok {
			return 0, true, fmt.Errorf("malformed %s: missing coin value", CoinStoreType)
		}
		octas, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, true, fmt.Errorf("failed to parse coin value: %w", err)
		}
		return octas, true, nil
	}
	return 0, false, nil
}

// GetBalance gets the APT balance of address. An account without a coin
// store reports zero.
func GetBalance(ctx context.Context, reader ResourceReader, address, network string) (*model.BalanceResponse, error) {
	resources, err := reader.AccountResources(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	octas, _, err := CoinBalance(resources)
	if err != nil {
		return nil, err
	}

	return &model.BalanceResponse{
		Address: address,
		Network: network,
		Octas:   octas,
		APT:     common.OctasToAPT(octas),
	}, nil
}
