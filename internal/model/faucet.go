package model

// FaucetRequest represents request for POST /aptos/faucet.
// Amount is optional and defaults to the configured faucet amount.
type FaucetRequest struct {
	Octas uint64 `json:"octas,omitempty"`
}

// FaucetResponse represents response for POST /aptos/faucet
type FaucetResponse struct {
	Address string `json:"address"`
	Octas   uint64 `json:"octas"`
	APT     string `json:"apt"`
}
