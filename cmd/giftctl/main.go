// giftctl deploys the aptos_gifts Move package and serves the gifts wallet API.
//
// @title           Aptos Gifts API
// @version         1.0
// @description     Local wallet and gifting API for the Aptos gifts package
// @host            localhost:8080
// @BasePath        /
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexZinkM/aptos-gifts/internal/config"
	"github.com/AlexZinkM/aptos-gifts/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands once the root command ran
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func()
	stderr   io.Writer
}

type rootFlags struct {
	verbose bool
	network string
	record  string
	logPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes giftctl with args and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.report(err)
	a.close()
	if err != nil {
		return 1
	}
	return 0
}

func newRootCmd(stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stderr: stderr}
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "giftctl",
		Short:         "Deploy and operate the Aptos gifts package",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			a.cfg = config.Get()
			flags.apply(cmd, a.cfg)

			logger, closeFn, err := logging.New(a.stderr, a.cfg.LogPath, flags.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			a.closeLog = closeFn
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.network, "network", "", "network name (overrides APTOS_NETWORK)")
	root.PersistentFlags().StringVar(&flags.record, "record", "", "deployment record path (overrides DEPLOY_RECORD_PATH)")
	root.PersistentFlags().StringVar(&flags.logPath, "log", "", "append-only log file (overrides DEPLOY_LOG_PATH)")

	root.AddCommand(
		newDeployCmd(a),
		newBalanceCmd(a),
		newFaucetCmd(a),
		newGiftCmd(a),
		newKeystoreCmd(a),
		newServeCmd(a),
	)
	return root, a
}

// apply copies explicitly set flags over the environment configuration
func (f *rootFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("network") {
		cfg.Network = f.network
	}
	if fs.Changed("record") {
		cfg.RecordPath = f.record
	}
	if fs.Changed("log") {
		cfg.LogPath = f.logPath
	}
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// report writes err once: to the log when it is set up, to stderr otherwise
func (a *app) report(err error) {
	if err == nil {
		return
	}
	if a.logger != nil {
		a.logger.Error("❌ Error", zap.Error(err))
		return
	}
	fmt.Fprintln(a.stderr, "Error:", err)
}
