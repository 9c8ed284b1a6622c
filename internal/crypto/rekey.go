package crypto

import "fmt"

// Rekey decrypts the keystore with oldPassword and rewrites it under newPassword
// with a fresh salt and nonce. Address and QR are carried over unchanged.
func Rekey(filePath string, oldPassword, newPassword []byte) error {
	file, keyData, err := DecryptKey(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(keyData.PrivateKey)

	resealed, err := seal(file.Network, file.Address, file.QR, keyData, newPassword)
	if err != nil {
		return fmt.Errorf("failed to re-encrypt keystore: %w", err)
	}
	return writeKeystore(filePath, resealed)
}
