package aptos

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/aptos-gifts/internal/crypto"
	"github.com/AlexZinkM/aptos-gifts/internal/model"

	"github.com/aptos-labs/aptos-go-sdk"
	aptoscrypto "github.com/aptos-labs/aptos-go-sdk/crypto"
)

const (
	aip80Prefix = "ed25519-priv-"

	// KeyRefGenerated marks an identity generated in the current run
	KeyRefGenerated = "generated"
)

// Identity is a signing key and its derived account address.
// KeyRef names where the key came from (env:VAR, keystore:path, generated).
type Identity struct {
	Account *aptos.Account
	KeyRef  string
	key     *aptoscrypto.Ed25519PrivateKey
}

// Address returns the account address in 0x-prefixed hex
func (i *Identity) Address() string {
	return i.Account.Address.String()
}

// IdentityOptions selects where the signing key is loaded from
type IdentityOptions struct {
	Secret    string // hex private key, usually from APTOS_PRIVATE_KEY
	SecretEnv string // variable Secret was read from, recorded in KeyRef
	KeyFile   string // encrypted keystore, used when Secret is empty
	Network   string
	// Password returns the keystore password; the slice is cleared after use.
	Password func() ([]byte, error)
}

// NewIdentityFromHex builds an identity from a hex Ed25519 private key.
// Accepts plain hex, 0x-prefixed hex and AIP-80 (ed25519-priv-0x...) strings.
func NewIdentityFromHex(secret, keyRef string) (*Identity, error) {
	s := strings.TrimSpace(secret)
	s = strings.TrimPrefix(s, aip80Prefix)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}

	key := &aptoscrypto.Ed25519PrivateKey{}
	if err := key.FromHex(s); err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return newIdentity(key, keyRef)
}

// NewIdentityFromSeed builds an identity from a raw 32 byte Ed25519 seed
func NewIdentityFromSeed(seed []byte, keyRef string) (*Identity, error) {
	key := &aptoscrypto.Ed25519PrivateKey{}
	if err := key.FromBytes(seed); err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return newIdentity(key, keyRef)
}

// GenerateIdentity creates a fresh Ed25519 identity
func GenerateIdentity() (*Identity, error) {
	key, err := aptoscrypto.GenerateEd25519PrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return newIdentity(key, KeyRefGenerated)
}

func newIdentity(key *aptoscrypto.Ed25519PrivateKey, keyRef string) (*Identity, error) {
	account, err := aptos.NewAccountFromSigner(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	return &Identity{Account: account, KeyRef: keyRef, key: key}, nil
}

// LoadIdentity resolves an existing identity from the secret or the keystore.
// Returns os.ErrNotExist when neither is available.
func LoadIdentity(opts IdentityOptions) (*Identity, error) {
	if opts.Secret != "" {
		return NewIdentityFromHex(opts.Secret, "env:"+opts.SecretEnv)
	}

	if opts.KeyFile != "" {
		if fileInfo, err := os.Stat(opts.KeyFile); err == nil && fileInfo.Size() > 0 {
			return loadKeystore(opts)
		}
	}
	return nil, fmt.Errorf("no private key configured: %w", os.ErrNotExist)
}

// ResolveIdentity loads the configured identity, or generates a new one.
// A generated identity is saved to opts.KeyFile when set and reported as a
// *FundingRequiredError: it cannot hold funds yet, so the run must stop.
// A failed save is carried in SaveErr, the address is still reported.
func ResolveIdentity(opts IdentityOptions) (*Identity, error) {
	identity, err := LoadIdentity(opts)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	identity, err = GenerateIdentity()
	if err != nil {
		return nil, err
	}

	fundErr := &FundingRequiredError{Address: identity.Address(), Generated: true}
	if opts.KeyFile != "" {
		if err := SaveKeystore(identity, opts.KeyFile, opts.Network, opts.Password); err != nil {
			fundErr.SaveErr = fmt.Errorf("failed to save generated key: %w", err)
		} else {
			fundErr.KeystorePath = opts.KeyFile
		}
	}
	return nil, fundErr
}

// SaveKeystore encrypts the identity key into a new keystore file
func SaveKeystore(identity *Identity, keyFile, network string, password func() ([]byte, error)) error {
	if password == nil {
		return errors.New("keystore password source is not configured")
	}
	pw, err := password()
	if err != nil {
		return err
	}
	defer clear(pw)

	qrCode, err := generateQRCode(identity.Address())
	if err != nil {
		return err
	}

	seed := append([]byte(nil), identity.key.Bytes()...)
	defer clear(seed)

	keyData := &model.KeyData{
		PrivateKey: seed,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	return crypto.EncryptKey(keyFile, network, identity.Address(), qrCode, keyData, pw)
}

func loadKeystore(opts IdentityOptions) (*Identity, error) {
	if opts.Password == nil {
		return nil, errors.New("keystore password source is not configured")
	}
	pw, err := opts.Password()
	if err != nil {
		return nil, err
	}
	defer clear(pw)

	file, keyData, err := crypto.DecryptKey(opts.KeyFile, pw)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	defer clear(keyData.PrivateKey)

	identity, err := NewIdentityFromSeed(keyData.PrivateKey, "keystore:"+opts.KeyFile)
	if err != nil {
		return nil, err
	}

	// Verify key matches the stored address
	if file.Address != "" && file.Address != identity.Address() {
		return nil, fmt.Errorf("keystore key does not match address %s", file.Address)
	}
	return identity, nil
}
