package move

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// CompileError is returned when the compiler exits with a non-zero status
type CompileError struct {
	ExitCode int
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("move compile exited with code %d: %v", e.ExitCode, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// IsCompileError checks if error is CompileError
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

// Compiler runs the Aptos CLI to build a Move package
type Compiler struct {
	CLIPath      string // aptos binary
	PackageDir   string
	NamedAddress string // named address bound to the deployer, e.g. aptos_gifts
	Stdout       io.Writer
	Stderr       io.Writer
}

// Args returns the compiler arguments for the given deployer address
func (c *Compiler) Args(address string) []string {
	return []string{
		"move", "compile",
		"--package-dir", c.PackageDir,
		"--named-addresses", fmt.Sprintf("%s=%s", c.NamedAddress, address),
		"--save-metadata",
	}
}

// Compile builds the package with NamedAddress bound to address.
// It blocks until the compiler exits.
func (c *Compiler) Compile(ctx context.Context, address string) error {
	if c.CLIPath == "" {
		return errors.New("aptos CLI path is not configured")
	}

	cmd := exec.CommandContext(ctx, c.CLIPath, c.Args(address)...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CompileError{ExitCode: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("failed to run %s: %w", c.CLIPath, err)
	}
	return nil
}
