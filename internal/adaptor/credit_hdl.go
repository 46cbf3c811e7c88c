package adaptor

import (
	"encoding/json"
	"net/http"

	"fieldpro/internal/dto/request"
	"fieldpro/internal/usecase"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

type CreditHandler struct {
	service usecase.CreditService
	log     *zap.Logger
}

func NewCreditHandler(service usecase.CreditService, log *zap.Logger) *CreditHandler {
	return &CreditHandler{
		service: service,
		log:     log.With(zap.String("handler", "credit")),
	}
}

// GetBalance handles GET /api/credits/balance
func (h *CreditHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.GetBalance(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get balance")
		return
	}

	utils.ResponseSuccess(w, "success", balance)
}

// GetStats handles GET /api/credits/stats
func (h *CreditHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetTransactions handles GET /api/credits/transactions
func (h *CreditHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.GetTransactions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get transactions")
		return
	}

	utils.ResponseSuccess(w, "success", transactions)
}

// CreatePurchaseIntent handles POST /api/credits/purchase-intent
func (h *CreditHandler) CreatePurchaseIntent(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	intent, err := h.service.CreatePurchaseIntent(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create purchase intent")
		return
	}

	utils.ResponseCreated(w, "success", intent)
}

// ConfirmPurchase handles POST /api/credits/confirm-purchase
func (h *CreditHandler) ConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ConfirmPurchase(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "confirm purchase")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
