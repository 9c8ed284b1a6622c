package aptos

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/aptos-gifts/internal/common"
)

// ErrAccountNotFound is returned when the deployer account is unknown on-chain
var ErrAccountNotFound = errors.New("account not found on chain")

// FundingRequiredError stops a run until the operator funds Address
type FundingRequiredError struct {
	Address      string
	Balance      uint64 // octas
	Required     uint64 // octas
	Generated    bool   // Address belongs to a key generated in this run
	KeystorePath string // where the generated key was saved, if anywhere
	SaveErr      error  // why the generated key could not be saved
}

func (e *FundingRequiredError) Error() string {
	if e.Generated {
		if e.SaveErr != nil {
			return fmt.Sprintf("no private key provided, generated new account %s but it was not saved: %v", e.Address, e.SaveErr)
		}
		return fmt.Sprintf("no private key provided, generated new account %s: fund it and re-run", e.Address)
	}
	return fmt.Sprintf("insufficient funds on %s: have %s APT, need at least %s APT",
		e.Address, common.OctasToAPT(e.Balance), common.OctasToAPT(e.Required))
}

func (e *FundingRequiredError) Unwrap() error {
	return e.SaveErr
}

// IsFundingRequiredError checks if error is FundingRequiredError
func IsFundingRequiredError(err error) bool {
	var fe *FundingRequiredError
	return errors.As(err, &fe)
}

// TransactionFailedError is returned when a committed transaction did not succeed
type TransactionFailedError struct {
	Hash     string
	VMStatus string
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Hash, e.VMStatus)
}

// IsTransactionFailedError checks if error is TransactionFailedError
func IsTransactionFailedError(err error) bool {
	var te *TransactionFailedError
	return errors.As(err, &te)
}
