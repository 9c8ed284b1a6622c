package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/config"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
	"github.com/AlexZinkM/aptos-gifts/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlagsOverrideConfig(t *testing.T) {
	root, _ := newRootCmd(io.Discard)
	require.NoError(t, root.ParseFlags([]string{"--network", "devnet", "--record", "out.json"}))

	cfg := &config.Config{Network: "testnet", RecordPath: "deploy-info.json", LogPath: "deploy.log"}
	flags := &rootFlags{network: "devnet", record: "out.json"}
	flags.apply(root, cfg)

	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, "out.json", cfg.RecordPath)
	assert.Equal(t, "deploy.log", cfg.LogPath)
}

func TestPrintFundingInstructions_GeneratedAndSaved(t *testing.T) {
	var buf bytes.Buffer
	printFundingInstructions(&buf, &aptos.FundingRequiredError{
		Address:      "0xabc",
		Generated:    true,
		KeystorePath: "deployer.aks",
	}, "testnet")

	out := buf.String()
	assert.Contains(t, out, "Generated a new account")
	assert.Contains(t, out, "deployer.aks")
	assert.Contains(t, out, "Fund this address before deploying: 0xabc")
	assert.Contains(t, out, testnetFaucetURL)
}

func TestPrintFundingInstructions_GeneratedNotSaved(t *testing.T) {
	var buf bytes.Buffer
	printFundingInstructions(&buf, &aptos.FundingRequiredError{
		Address:   "0xabc",
		Generated: true,
		SaveErr:   errors.New("stdin is not a terminal"),
	}, "testnet")

	out := buf.String()
	assert.Contains(t, out, "was NOT saved")
	assert.Contains(t, out, "stdin is not a terminal")
	assert.Contains(t, out, "0xabc")
	assert.Contains(t, out, "giftctl keystore new")
	assert.Contains(t, out, config.PrivateKeyEnv)
	assert.NotContains(t, out, "Fund this address")
	assert.NotContains(t, out, "to use it")
}

func TestPrintFundingInstructions_LowBalance(t *testing.T) {
	var buf bytes.Buffer
	printFundingInstructions(&buf, &aptos.FundingRequiredError{
		Address:  "0xabc",
		Balance:  100,
		Required: 5000,
	}, "devnet")

	out := buf.String()
	assert.Contains(t, out, "0.00000100 APT")
	assert.Contains(t, out, "0.00005000 APT")
	assert.Contains(t, out, "giftctl faucet")
	assert.NotContains(t, out, testnetFaucetURL)
}

func TestGiftModule(t *testing.T) {
	recordPath := filepath.Join(t.TempDir(), "deploy-info.json")
	a := &app{cfg: &config.Config{RecordPath: recordPath, GiftModule: "gifts", GiftFunction: "create_gift"}}

	_, err := a.giftModule()
	assert.ErrorContains(t, err, "no deployment found")

	require.NoError(t, record.Write(recordPath, &model.DeploymentRecord{DeployerAddress: "0xcafe"}))
	gm, err := a.giftModule()
	require.NoError(t, err)
	assert.Equal(t, aptos.GiftModule{Address: "0xcafe", Module: "gifts", Function: "create_gift"}, gm)

	a.cfg.GiftModuleAddress = "0xbeef"
	gm, err = a.giftModule()
	require.NoError(t, err)
	assert.Equal(t, "0xbeef", gm.Address)
}

func TestKeyFile(t *testing.T) {
	a := &app{cfg: &config.Config{}}
	_, err := a.keyFile("")
	assert.Error(t, err)

	a.cfg.KeyFile = "env.aks"
	path, err := a.keyFile("")
	require.NoError(t, err)
	assert.Equal(t, "env.aks", path)

	path, err = a.keyFile("flag.aks")
	require.NoError(t, err)
	assert.Equal(t, "flag.aks", path)
}

func TestRun_ReportsCobraErrorsAfterSetup(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--log", "", "gift", "create"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "required flag(s)")
	assert.Contains(t, stderr.String(), "amount")
	assert.Equal(t, 1, strings.Count(stderr.String(), "Error"))
}

func TestRun_ReportsFlagErrorsBeforeSetup(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"deploy", "--bogus"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown flag: --bogus")
}

func TestRun_ReportsCommandErrorOnce(t *testing.T) {
	t.Setenv(config.PrivateKeyEnv, "")
	t.Setenv("APTOS_KEY_FILE", "")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--log", "", "keystore", "address"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(stderr.String(), "keystore path is required"))
}

func TestRun_GiftList(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--log", "", "gift", "list"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Happy Birthday!")
}
