package aptos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/aptos-gifts/internal/model"
	"github.com/AlexZinkM/aptos-gifts/internal/move"
	"github.com/AlexZinkM/aptos-gifts/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deployFixture struct {
	chain    *fakeChain
	compiler *fakeCompiler
	opts     DeployOptions
	buildDir string
}

func newDeployFixture(t *testing.T) *deployFixture {
	dir := t.TempDir()
	return &deployFixture{
		chain:    newFakeChain(),
		compiler: &fakeCompiler{},
		buildDir: filepath.Join(dir, "move", "build", "aptos_gifts"),
		opts: DeployOptions{
			Identity:        IdentityOptions{Secret: testSecret, SecretEnv: "APTOS_PRIVATE_KEY"},
			MinBalanceOctas: DefaultMinBalanceOctas,
			VerifyAccount:   true,
			BuildDir:        filepath.Join(dir, "move", "build", "aptos_gifts"),
			RecordPath:      filepath.Join(dir, "deploy-info.json"),
		},
	}
}

func (f *deployFixture) deployer() *Deployer {
	d := NewDeployer(f.chain, f.compiler, f.opts, nil)
	d.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return d
}

func TestRun_Success(t *testing.T) {
	f := newDeployFixture(t)
	writeBuild(t, f.buildDir)

	rec, err := f.deployer().Run(context.Background())
	require.NoError(t, err)

	identity, err := NewIdentityFromHex(testSecret, "")
	require.NoError(t, err)

	assert.Equal(t, identity.Address(), rec.DeployerAddress)
	assert.Equal(t, "0xfeed", rec.TransactionHash)
	assert.Equal(t, "env:APTOS_PRIVATE_KEY", rec.DeployerKeyRef)
	assert.Equal(t, "2026-10-17T12:00:00Z", rec.Timestamp)
	assert.Equal(t, identity.Address(), f.compiler.address)
	assert.Equal(t, []string{"resources", "exists", "publish", "wait"}, f.chain.calls)
	assert.Equal(t, [][]byte{[]byte("meta"), []byte("code")}, f.chain.published)

	onDisk, err := record.Read(f.opts.RecordPath)
	require.NoError(t, err)
	assert.Equal(t, rec, onDisk)

	raw, err := os.ReadFile(f.opts.RecordPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), testSecret[2:], "record must not contain the private key")
}

func TestRun_NoSecretGeneratesIdentity(t *testing.T) {
	f := newDeployFixture(t)
	f.opts.Identity = IdentityOptions{}
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.Error(t, err)

	fe, ok := isFundingErr(err)
	require.True(t, ok)
	assert.True(t, fe.Generated)
	assert.True(t, strings.HasPrefix(fe.Address, "0x"))
	assert.Empty(t, fe.KeystorePath)

	assert.Zero(t, f.compiler.calls)
	assert.Empty(t, f.chain.calls)
	assert.NoFileExists(t, f.opts.RecordPath)
}

func TestRun_NoSecretSavesGeneratedKey(t *testing.T) {
	f := newDeployFixture(t)
	keyFile := filepath.Join(t.TempDir(), "deployer.aks")
	f.opts.Identity = IdentityOptions{
		KeyFile:  keyFile,
		Network:  "testnet",
		Password: func() ([]byte, error) { return []byte("pw"), nil },
	}

	_, err := f.deployer().Run(context.Background())
	fe, ok := isFundingErr(err)
	require.True(t, ok)
	assert.Equal(t, keyFile, fe.KeystorePath)
	assert.Zero(t, f.compiler.calls)

	// The next run picks the saved key up
	identity, err := LoadIdentity(f.opts.Identity)
	require.NoError(t, err)
	assert.Equal(t, fe.Address, identity.Address())
	assert.Equal(t, "keystore:"+keyFile, identity.KeyRef)
}

func TestRun_NoSecretUnsavableKeyStillReportsAddress(t *testing.T) {
	f := newDeployFixture(t)
	keyFile := filepath.Join(t.TempDir(), "deployer.aks")
	f.opts.Identity = IdentityOptions{
		KeyFile:  keyFile,
		Password: func() ([]byte, error) { return nil, errors.New("stdin is not a terminal") },
	}

	_, err := f.deployer().Run(context.Background())
	fe, ok := isFundingErr(err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(fe.Address, "0x"))
	assert.Error(t, fe.SaveErr)
	assert.Empty(t, fe.KeystorePath)
	assert.Zero(t, f.compiler.calls)
	assert.False(t, f.chain.called("publish"))
}

func TestRun_MissingBuildDirStopsBeforePublish(t *testing.T) {
	f := newDeployFixture(t)

	_, err := f.deployer().Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, move.ErrArtifactsMissing)

	assert.Equal(t, 1, f.compiler.calls)
	assert.False(t, f.chain.called("publish"))
	assert.NoFileExists(t, f.opts.RecordPath)
}

func TestRun_ZeroBalanceShortCircuits(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.octas = 0
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	fe, ok := isFundingErr(err)
	require.True(t, ok)
	assert.False(t, fe.Generated)
	assert.Equal(t, uint64(0), fe.Balance)
	assert.Equal(t, uint64(DefaultMinBalanceOctas), fe.Required)

	assert.Zero(t, f.compiler.calls)
	assert.Equal(t, []string{"resources"}, f.chain.calls)
}

func TestRun_BelowMinimum(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.octas = DefaultMinBalanceOctas - 1
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	assert.True(t, IsFundingRequiredError(err))
	assert.Zero(t, f.compiler.calls)
}

func TestRun_NoCoinStore(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.noCoin = true
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	assert.True(t, IsFundingRequiredError(err))
	assert.Zero(t, f.compiler.calls)
}

func TestRun_AccountNotFound(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.exists = false
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Zero(t, f.compiler.calls)
}

func TestRun_VerifyAccountDisabled(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.exists = false
	f.opts.VerifyAccount = false
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.NoError(t, err)
	assert.False(t, f.chain.called("exists"))
}

func TestRun_CompileFailure(t *testing.T) {
	f := newDeployFixture(t)
	f.compiler.err = &move.CompileError{ExitCode: 2, Err: errors.New("exit status 2")}
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.Error(t, err)
	assert.True(t, move.IsCompileError(err))
	assert.False(t, f.chain.called("publish"))
}

func TestRun_SkipCompile(t *testing.T) {
	f := newDeployFixture(t)
	f.opts.SkipCompile = true
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, f.compiler.calls)
}

func TestRun_CompileProducesArtifacts(t *testing.T) {
	f := newDeployFixture(t)
	f.compiler.onCompile = func() error {
		writeBuild(t, f.buildDir)
		return nil
	}

	_, err := f.deployer().Run(context.Background())
	require.NoError(t, err)
	assert.True(t, f.chain.called("publish"))
}

func TestRun_TransactionFailedKeepsPreviousRecord(t *testing.T) {
	f := newDeployFixture(t)
	writeBuild(t, f.buildDir)

	// Previous successful deployment
	_, err := f.deployer().Run(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(f.opts.RecordPath)
	require.NoError(t, err)

	f.chain.publishTx = "0xbad"
	f.chain.status = &model.TransactionStatus{Hash: "0xbad", Success: false, VMStatus: "Move abort in 0x1::code: EMODULE_MISSING"}

	_, err = f.deployer().Run(context.Background())
	require.Error(t, err)
	require.True(t, IsTransactionFailedError(err))

	var te *TransactionFailedError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "0xbad", te.Hash)
	assert.Contains(t, te.VMStatus, "EMODULE_MISSING")

	after, err := os.ReadFile(f.opts.RecordPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_TransactionFailedNoRecord(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.status = &model.TransactionStatus{Success: false, VMStatus: "OUT_OF_GAS"}
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	assert.True(t, IsTransactionFailedError(err))
	assert.NoFileExists(t, f.opts.RecordPath)
}

func TestRun_WaitError(t *testing.T) {
	f := newDeployFixture(t)
	f.chain.waitErr = errors.New("connection reset")
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, f.opts.RecordPath)
}

func TestRun_RerunOverwritesRecord(t *testing.T) {
	f := newDeployFixture(t)
	writeBuild(t, f.buildDir)

	_, err := f.deployer().Run(context.Background())
	require.NoError(t, err)

	f.chain.publishTx = "0xbeef"
	_, err = f.deployer().Run(context.Background())
	require.NoError(t, err)

	rec, err := record.Read(f.opts.RecordPath)
	require.NoError(t, err)
	assert.Equal(t, "0xbeef", rec.TransactionHash)
}
