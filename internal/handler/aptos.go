package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/model"
	"github.com/AlexZinkM/aptos-gifts/internal/record"

	"go.uber.org/zap"
)

// Chain is the network surface the HTTP API needs
type Chain interface {
	aptos.ResourceReader
	aptos.Funder
	aptos.GiftSubmitter
}

// Options holds configuration for AptosHandler
type Options struct {
	Network     string
	FaucetOctas uint64
	RecordPath  string
	// Gift.Address may be empty: the deployer address from the record is used then
	Gift aptos.GiftModule
}

// AptosHandler serves wallet and gift endpoints for one identity
type AptosHandler struct {
	chain    Chain
	identity *aptos.Identity
	opts     Options
	logger   *zap.Logger
}

// NewAptosHandler creates a new AptosHandler
func NewAptosHandler(chain Chain, identity *aptos.Identity, opts Options, logger *zap.Logger) (*AptosHandler, error) {
	if identity == nil {
		return nil, errors.New("identity is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AptosHandler{chain: chain, identity: identity, opts: opts, logger: logger}, nil
}

// GetBalance handles GET /aptos/balance
// @Summary      Get wallet status
// @Description  Gets address, network and APT balance of the active account
// @Tags         aptos
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /aptos/balance [get]
func (h *AptosHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balance, err := aptos.GetBalance(r.Context(), h.chain, h.identity.Address(), h.opts.Network)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Faucet handles POST /aptos/faucet
// @Summary      Get test tokens
// @Description  Funds the active account from the network faucet (1 APT by default)
// @Tags         aptos
// @Accept       json
// @Produce      json
// @Param        request  body      model.FaucetRequest  false  "Amount in octas"
// @Success      200      {object}  model.FaucetResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /aptos/faucet [post]
func (h *AptosHandler) Faucet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.FaucetRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeBadRequest})
			return
		}
	}
	if req.Octas == 0 {
		req.Octas = h.opts.FaucetOctas
	}

	resp, err := aptos.RequestFaucet(r.Context(), h.chain, h.identity.Address(), h.opts.Network, req.Octas)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("faucet funded account", zap.String("address", resp.Address), zap.String("apt", resp.APT))
	writeJSON(w, http.StatusOK, resp)
}

// Gifts handles GET and POST /aptos/gifts
func (h *AptosHandler) Gifts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListGifts(w, r)
	case http.MethodPost:
		h.CreateGift(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// ListGifts handles GET /aptos/gifts
// @Summary      List gift cards
// @Description  Lists sample gift cards
// @Tags         gifts
// @Produce      json
// @Success      200  {array}  model.GiftCard
// @Router       /aptos/gifts [get]
func (h *AptosHandler) ListGifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aptos.ListGifts())
}

// CreateGift handles POST /aptos/gifts
// @Summary      Create gift
// @Description  Submits a create-gift transaction signed by the active account
// @Tags         gifts
// @Accept       json
// @Produce      json
// @Param        request  body      model.GiftRequest  true  "Gift data"
// @Success      200      {object}  model.GiftResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /aptos/gifts [post]
func (h *AptosHandler) CreateGift(w http.ResponseWriter, r *http.Request) {
	var req model.GiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeBadRequest})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeBadRequest})
		return
	}

	gm := h.opts.Gift
	if gm.Address == "" {
		rec, err := record.Read(h.opts.RecordPath)
		if err != nil {
			h.writeError(w, err)
			return
		}
		gm.Address = rec.DeployerAddress
	}

	resp, err := aptos.CreateGift(r.Context(), h.chain, h.identity, gm, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("gift created", zap.String("recipient", req.Recipient), zap.String("txHash", resp.TxHash))
	writeJSON(w, http.StatusOK, resp)
}

// Deployment handles GET /aptos/deployment
// @Summary      Get deployment record
// @Description  Returns the record written by the last successful deployment
// @Tags         aptos
// @Produce      json
// @Success      200  {object}  model.DeploymentRecord
// @Failure      404  {object}  model.ErrorResponse
// @Router       /aptos/deployment [get]
func (h *AptosHandler) Deployment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	rec, err := record.Read(h.opts.RecordPath)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeError maps domain errors to status codes
func (h *AptosHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, record.ErrNoRecord):
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error(), Code: model.CodeNotFound})
	case aptos.IsFundingRequiredError(err):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeFundingRequired})
	case aptos.IsTransactionFailedError(err):
		writeJSON(w, http.StatusBadGateway, model.ErrorResponse{Error: err.Error(), Code: model.CodeTransactionError})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Code: model.CodeInternal})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
