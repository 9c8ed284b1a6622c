package move

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBuild(t *testing.T, dir string, modules map[string][]byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, modulesDir, "dependencies", "AptosFramework"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, metadataFile), []byte("meta"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, modulesDir, "dependencies", "AptosFramework", "coin.mv"), []byte("dep"), 0644))
	for name, code := range modules {
		require.NoError(t, os.WriteFile(filepath.Join(dir, modulesDir, name), code, 0644))
	}
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, map[string][]byte{
		"gifts.mv":  []byte("g"),
		"events.mv": []byte("e"),
		"notes.txt": []byte("ignored"),
	})

	art, err := LoadArtifacts(dir)
	require.NoError(t, err)
	assert.Equal(t, []byte("meta"), art.Metadata)
	assert.Equal(t, []string{"events.mv", "gifts.mv"}, art.Names)
	assert.Equal(t, [][]byte{[]byte("e"), []byte("g")}, art.Modules)
}

func TestLoadArtifacts_Missing(t *testing.T) {
	_, err := LoadArtifacts(filepath.Join(t.TempDir(), "build", "aptos_gifts"))
	assert.ErrorIs(t, err, ErrArtifactsMissing)
}

func TestLoadArtifacts_NoModules(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, nil)

	_, err := LoadArtifacts(dir)
	assert.ErrorIs(t, err, ErrArtifactsMissing)
}

func TestCompilerArgs(t *testing.T) {
	c := &Compiler{PackageDir: "move", NamedAddress: "aptos_gifts"}
	assert.Equal(t, []string{
		"move", "compile",
		"--package-dir", "move",
		"--named-addresses", "aptos_gifts=0xabc",
		"--save-metadata",
	}, c.Args("0xabc"))
}

// fakeCLI writes a shell script standing in for the aptos binary
func fakeCLI(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script CLI stub")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "aptos")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestCompile_Success(t *testing.T) {
	var out bytes.Buffer
	c := &Compiler{
		CLIPath:      fakeCLI(t, `echo "$@"`),
		PackageDir:   "move",
		NamedAddress: "aptos_gifts",
		Stdout:       &out,
	}

	require.NoError(t, c.Compile(context.Background(), "0xabc"))
	assert.Contains(t, out.String(), "--named-addresses aptos_gifts=0xabc")
}

func TestCompile_NonZeroExit(t *testing.T) {
	var errOut bytes.Buffer
	c := &Compiler{
		CLIPath:      fakeCLI(t, `echo "unbound module" >&2; exit 3`),
		PackageDir:   "move",
		NamedAddress: "aptos_gifts",
		Stderr:       &errOut,
	}

	err := c.Compile(context.Background(), "0xabc")
	require.Error(t, err)
	assert.True(t, IsCompileError(err))

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.ExitCode)
	assert.Contains(t, errOut.String(), "unbound module")
}

func TestCompile_MissingBinary(t *testing.T) {
	c := &Compiler{CLIPath: filepath.Join(t.TempDir(), "nope")}
	err := c.Compile(context.Background(), "0xabc")
	require.Error(t, err)
	assert.False(t, IsCompileError(err))
}
