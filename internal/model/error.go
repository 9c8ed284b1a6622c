package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeFundingRequired  = "funding_required"
	CodeNotFound         = "not_found"
	CodeTransactionError = "transaction_failed"
	CodeInternal         = "internal"
)
