package model

import (
	"fmt"

	"github.com/AlexZinkM/aptos-gifts/internal/common"
)

// maxGiftMessageLen bounds the on-chain message string
const maxGiftMessageLen = 280

// GiftRequest represents request for POST /aptos/gifts
type GiftRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"` // APT, decimal string
	Message   string `json:"message,omitempty"`
}

// Validate validates amount and message. The recipient address is checked by the caller.
func (r *GiftRequest) Validate() error {
	if r.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	octas, err := common.APTToOctas(r.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if octas == 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if len(r.Message) > maxGiftMessageLen {
		return fmt.Errorf("message must be at most %d bytes", maxGiftMessageLen)
	}
	return nil
}

// GiftResponse represents response for POST /aptos/gifts
type GiftResponse struct {
	TxHash string `json:"txHash"`
}

// GiftCard is a display card for a gift
type GiftCard struct {
	Amount    string `json:"amount"`
	Message   string `json:"message,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Action    string `json:"action"`
}
