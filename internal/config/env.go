package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: APTOS_PRIVATE_KEY is read here only to be handed to identity resolution,
// it is never logged or persisted.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	Network   string `envconfig:"APTOS_NETWORK" default:"testnet"`
	NodeURL   string `envconfig:"APTOS_NODE_URL"`
	FaucetURL string `envconfig:"APTOS_FAUCET_URL"`

	PrivateKey string `envconfig:"APTOS_PRIVATE_KEY"`
	KeyFile    string `envconfig:"APTOS_KEY_FILE"`

	MinBalanceOctas uint64 `envconfig:"MIN_BALANCE_OCTAS" default:"5000"`
	VerifyAccount   bool   `envconfig:"VERIFY_ACCOUNT" default:"true"`

	AptosCLIPath     string `envconfig:"APTOS_CLI_PATH" default:"aptos"`
	MovePackageDir   string `envconfig:"MOVE_PACKAGE_DIR" default:"move"`
	MoveNamedAddress string `envconfig:"MOVE_NAMED_ADDRESS" default:"aptos_gifts"`
	MoveBuildDir     string `envconfig:"MOVE_BUILD_DIR" default:"move/build/aptos_gifts"`
	SkipCompile      bool   `envconfig:"SKIP_COMPILE" default:"false"`

	MaxGasAmount  uint64        `envconfig:"MAX_GAS_AMOUNT" default:"100000"`
	TxWaitTimeout time.Duration `envconfig:"TX_WAIT_TIMEOUT" default:"0s"`

	RecordPath string `envconfig:"DEPLOY_RECORD_PATH" default:"deploy-info.json"`
	LogPath    string `envconfig:"DEPLOY_LOG_PATH" default:"deploy.log"`

	FaucetAmountOctas uint64 `envconfig:"FAUCET_AMOUNT_OCTAS" default:"100000000"`

	GiftModuleAddress string `envconfig:"GIFT_MODULE_ADDRESS"`
	GiftModule        string `envconfig:"GIFT_MODULE" default:"gifts"`
	GiftFunction      string `envconfig:"GIFT_FUNCTION" default:"create_gift"`
}

// PrivateKeyEnv is the variable the signing secret is read from.
const PrivateKeyEnv = "APTOS_PRIVATE_KEY"

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads a fresh Config from the environment without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetRecordPath returns path of the deployment record file
func GetRecordPath() string {
	return Get().RecordPath
}

// GetLogPath returns path of the append-only deployment log
func GetLogPath() string {
	return Get().LogPath
}

// PromptForPassword prompts for the keystore password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively to enter the keystore password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
