package aptos

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlexZinkM/aptos-gifts/internal/common"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
)

// DefaultFaucetOctas is 1 APT
const DefaultFaucetOctas = 100000000

// Funder mints test tokens through a network faucet
type Funder interface {
	Fund(ctx context.Context, address string, octas uint64) error
}

// RequestFaucet funds address with octas of test APT. Mainnet has no faucet.
func RequestFaucet(ctx context.Context, funder Funder, address, network string, octas uint64) (*model.FaucetResponse, error) {
	if strings.EqualFold(network, "mainnet") {
		return nil, fmt.Errorf("faucet is not available on mainnet")
	}
	if octas == 0 {
		octas = DefaultFaucetOctas
	}

	if err := funder.Fund(ctx, address, octas); err != nil {
		return nil, fmt.Errorf("failed to get tokens from faucet: %w", err)
	}

	return &model.FaucetResponse{
		Address: address,
		Octas:   octas,
		APT:     common.OctasToAPT(octas),
	}, nil
}
