package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
	"github.com/AlexZinkM/aptos-gifts/internal/record"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show address and APT balance of the configured account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := a.loadIdentity()
			if err != nil {
				return err
			}
			chain, err := a.newChain()
			if err != nil {
				return err
			}

			balance, err := aptos.GetBalance(cmd.Context(), chain, identity.Address(), a.cfg.Network)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balance)
		},
	}
}

func newFaucetCmd(a *app) *cobra.Command {
	var octas uint64

	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Fund the configured account from the network faucet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := a.loadIdentity()
			if err != nil {
				return err
			}
			chain, err := a.newChain()
			if err != nil {
				return err
			}
			if octas == 0 {
				octas = a.cfg.FaucetAmountOctas
			}

			resp, err := aptos.RequestFaucet(cmd.Context(), chain, identity.Address(), a.cfg.Network, octas)
			if err != nil {
				return err
			}
			a.logger.Info("💧 Account funded", zap.String("address", resp.Address), zap.String("apt", resp.APT))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&octas, "octas", 0, "amount in octas (default FAUCET_AMOUNT_OCTAS)")
	return cmd
}

func newGiftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gift",
		Short: "Create and list gifts",
	}
	cmd.AddCommand(newGiftCreateCmd(a), newGiftListCmd())
	return cmd
}

func newGiftCreateCmd(a *app) *cobra.Command {
	req := &model.GiftRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Send APT as a gift through the deployed package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			identity, err := a.loadIdentity()
			if err != nil {
				return err
			}
			chain, err := a.newChain()
			if err != nil {
				return err
			}
			gm, err := a.giftModule()
			if err != nil {
				return err
			}

			a.logger.Info("🎁 Creating gift", zap.String("recipient", req.Recipient), zap.String("apt", req.Amount))
			resp, err := aptos.CreateGift(cmd.Context(), chain, identity, gm, req)
			if err != nil {
				return err
			}
			a.logger.Info("✅ Gift created", zap.String("transactionHash", resp.TxHash))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Recipient, "to", "", "recipient address")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "amount in APT, e.g. 1.5")
	cmd.Flags().StringVar(&req.Message, "message", "", "message attached to the gift")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newGiftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sample gift cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), aptos.ListGifts())
		},
	}
}

// giftModule locates the gift entry function. Without GIFT_MODULE_ADDRESS the
// deployer address of the last deployment is used.
func (a *app) giftModule() (aptos.GiftModule, error) {
	gm := aptos.GiftModule{
		Address:  a.cfg.GiftModuleAddress,
		Module:   a.cfg.GiftModule,
		Function: a.cfg.GiftFunction,
	}
	if gm.Address != "" {
		return gm, nil
	}

	rec, err := record.Read(a.cfg.RecordPath)
	if err != nil {
		if errors.Is(err, record.ErrNoRecord) {
			return gm, fmt.Errorf("no deployment found at %s: run giftctl deploy or set GIFT_MODULE_ADDRESS", a.cfg.RecordPath)
		}
		return gm, err
	}
	gm.Address = rec.DeployerAddress
	return gm, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
