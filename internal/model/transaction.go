package model

// AccountResource is a single on-chain resource of an account
type AccountResource struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// TransactionStatus is the terminal state of a submitted transaction
type TransactionStatus struct {
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vmStatus"`
	Version  uint64 `json:"version"`
	GasUsed  uint64 `json:"gasUsed"`
}
