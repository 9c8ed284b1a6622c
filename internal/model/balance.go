package model

// BalanceResponse represents response for GET /aptos/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Octas   uint64 `json:"octas"`
	APT     string `json:"apt"`
}
