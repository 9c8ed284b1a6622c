package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/common"
	"github.com/AlexZinkM/aptos-gifts/internal/config"
	"github.com/AlexZinkM/aptos-gifts/internal/move"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const testnetFaucetURL = "https://aptoslabs.com/testnet-faucet"

func newDeployCmd(a *app) *cobra.Command {
	var skipCompile bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Compile and publish the gifts package, then record the deployment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chain, err := a.newChain()
			if err != nil {
				return err
			}

			compiler := &move.Compiler{
				CLIPath:      a.cfg.AptosCLIPath,
				PackageDir:   a.cfg.MovePackageDir,
				NamedAddress: a.cfg.MoveNamedAddress,
				Stdout:       os.Stdout,
				Stderr:       os.Stderr,
			}

			deployer := aptos.NewDeployer(chain, compiler, aptos.DeployOptions{
				Identity:        a.identityOptions(),
				MinBalanceOctas: a.cfg.MinBalanceOctas,
				VerifyAccount:   a.cfg.VerifyAccount,
				SkipCompile:     a.cfg.SkipCompile || skipCompile,
				BuildDir:        a.cfg.MoveBuildDir,
				RecordPath:      a.cfg.RecordPath,
			}, a.logger)

			a.logger.Info("Network", zap.String("name", chain.NetworkName()), zap.String("nodeUrl", chain.NodeURL()))

			if _, err := deployer.Run(cmd.Context()); err != nil {
				var fundErr *aptos.FundingRequiredError
				if errors.As(err, &fundErr) {
					printFundingInstructions(cmd.OutOrStdout(), fundErr, a.cfg.Network)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipCompile, "skip-compile", false, "publish the existing build output without compiling")
	return cmd
}

// printFundingInstructions tells the operator how to fund the deployer address
func printFundingInstructions(w io.Writer, fundErr *aptos.FundingRequiredError, network string) {
	switch {
	case fundErr.Generated && fundErr.KeystorePath != "":
		fmt.Fprintln(w, "⚠️  No private key found. Generated a new account.")
		fmt.Fprintf(w, "🔐 Key saved to keystore: %s\n", fundErr.KeystorePath)
	case fundErr.Generated:
		fmt.Fprintln(w, "⚠️  No private key found. Generated a new account, but its key was NOT saved.")
		if fundErr.SaveErr != nil {
			fmt.Fprintf(w, "Saving failed: %v\n", fundErr.SaveErr)
		}
		fmt.Fprintf(w, "Discarded address: %s\n", fundErr.Address)
		fmt.Fprintf(w, "Create a reusable key with `giftctl keystore new` and set APTOS_KEY_FILE, or set %s, then fund that account.\n", config.PrivateKeyEnv)
		return
	default:
		fmt.Fprintf(w, "⚠️  Account balance is %s APT, at least %s APT is required.\n",
			common.OctasToAPT(fundErr.Balance), common.OctasToAPT(fundErr.Required))
	}

	fmt.Fprintf(w, "Fund this address before deploying: %s\n", fundErr.Address)
	if network == "" || network == "testnet" {
		fmt.Fprintf(w, "Faucet: %s\n", testnetFaucetURL)
	} else {
		fmt.Fprintln(w, "Faucet: giftctl faucet")
	}

	if qr, err := aptos.TerminalQR(fundErr.Address); err == nil {
		fmt.Fprint(w, qr)
	}
}
