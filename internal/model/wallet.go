package model

// KeystoreFile represents the encrypted keystore file structure
type KeystoreFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	ScryptN    int    `json:"scryptN,omitempty"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyData represents decrypted keystore data
type KeyData struct {
	PrivateKey []byte `json:"privateKey"` // 32 byte Ed25519 seed (base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
