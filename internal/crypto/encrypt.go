package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/aptos-gifts/internal/model"

	"golang.org/x/crypto/scrypt"
)

// KeystoreExt is the required extension of keystore files
const KeystoreExt = ".aks"

// scrypt parameters for the keystore.
// N=2^18 needs ~256MB RAM and 0.5-2s per derivation. N is stored in the file
// so keystores stay readable if the default changes.
const (
	defaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
)

var scryptN = defaultScryptN

// SetScryptN changes N for newly written keystores and returns a func restoring
// the previous value. Meant for tests.
func SetScryptN(n int) (restore func()) {
	prev := scryptN
	scryptN = n
	return func() { scryptN = prev }
}

const (
	saltLen  = 32
	nonceLen = 12
)

// ErrKeystoreExists is returned when the keystore file already has content
var ErrKeystoreExists = errors.New("keystore file is not empty")

// EncryptKey encrypts key data and writes it to an .aks keystore.
// password must be []byte for security (caller should zero it after use)
func EncryptKey(filePath string, network, address, qrCode string, keyData *model.KeyData, password []byte) error {
	if filepath.Ext(filePath) != KeystoreExt {
		return fmt.Errorf("file must have %s extension", KeystoreExt)
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return ErrKeystoreExists
	}

	file, err := seal(network, address, qrCode, keyData, password)
	if err != nil {
		return err
	}
	return writeKeystore(filePath, file)
}

// seal encrypts key data under a fresh salt and nonce
func seal(network, address, qrCode string, keyData *model.KeyData, password []byte) (*model.KeystoreFile, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, scryptN)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.KeystoreFile{
		Network:    network,
		Address:    address,
		QR:         qrCode,
		ScryptN:    scryptN,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// newGCM derives the file key from password and salt
func newGCM(password, salt []byte, n int) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, n, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// renameFile moves the finished temp keystore over the target
var renameFile = os.Rename

// writeKeystore replaces filePath with file. The data is written to a temp file
// in the same directory and renamed into place, so the previous keystore stays
// intact until the new one is complete.
func writeKeystore(filePath string, file *model.KeystoreFile) error {
	fileData, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp keystore: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(fileData); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to chmod keystore: %w", err)
	}
	if err := renameFile(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to replace keystore: %w", err)
	}
	return nil
}
