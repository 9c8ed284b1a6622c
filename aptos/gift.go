package aptos

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/aptos-gifts/internal/client"
	"github.com/AlexZinkM/aptos-gifts/internal/common"
	"github.com/AlexZinkM/aptos-gifts/internal/model"

	"github.com/aptos-labs/aptos-go-sdk"
)

// Sample addresses shown on the demo gift cards
const (
	sampleSender    = "0x1234567890abcdef"
	sampleRecipient = "0xabcdef1234567890"
)

// GiftSubmitter submits entry function transactions and waits for them
type GiftSubmitter interface {
	SubmitEntryFunction(ctx context.Context, signer aptos.TransactionSigner, moduleAddress, module, function string, args [][]byte) (string, error)
	WaitForTransaction(ctx context.Context, hash string) (*model.TransactionStatus, error)
}

// GiftModule locates the on-chain create-gift entry function
type GiftModule struct {
	Address  string
	Module   string
	Function string
}

// CreateGift submits a create-gift transaction from identity and waits for it
func CreateGift(ctx context.Context, submitter GiftSubmitter, identity *Identity, gm GiftModule, req *model.GiftRequest) (*model.GiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if gm.Address == "" {
		return nil, fmt.Errorf("gift module address is not known: deploy the package or set GIFT_MODULE_ADDRESS")
	}

	octas, err := common.APTToOctas(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	args, err := client.EncodeGiftArgs(req.Recipient, octas, req.Message)
	if err != nil {
		return nil, err
	}

	hash, err := submitter.SubmitEntryFunction(ctx, identity.Account, gm.Address, gm.Module, gm.Function, args)
	if err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}

	status, err := submitter.WaitForTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !status.Success {
		return nil, &TransactionFailedError{Hash: hash, VMStatus: status.VMStatus}
	}

	return &model.GiftResponse{TxHash: hash}, nil
}

// ListGifts returns the demo gift cards: one received, one waiting to be sent
func ListGifts() []model.GiftCard {
	return []model.GiftCard{
		newGiftCard("100", "Happy Birthday!", sampleSender, ""),
		newGiftCard("50", "", "", sampleRecipient),
	}
}

func newGiftCard(amount, message, sender, recipient string) model.GiftCard {
	card := model.GiftCard{
		Amount:  amount,
		Message: message,
		Action:  "Send Gift",
	}
	if sender != "" {
		card.Sender = common.ShortAddress(sender)
	}
	if recipient != "" {
		card.Recipient = common.ShortAddress(recipient)
		card.Action = "Claim Gift"
	}
	return card
}
