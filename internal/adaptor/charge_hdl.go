package adaptor

import (
	"encoding/json"
	"net/http"

	"fieldpro/internal/dto/request"
	"fieldpro/internal/usecase"
	"fieldpro/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ChargeHandler struct {
	service usecase.ChargeService
	log     *zap.Logger
}

func NewChargeHandler(service usecase.ChargeService, log *zap.Logger) *ChargeHandler {
	return &ChargeHandler{
		service: service,
		log:     log.With(zap.String("handler", "charge")),
	}
}

// AddCharges handles POST /api/bookings/{id}/charges
func (h *ChargeHandler) AddCharges(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.AddChargesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	sheet, err := h.service.AddCharges(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add charges")
		return
	}

	utils.ResponseCreated(w, "success", sheet)
}

// RemoveCharge handles DELETE /api/bookings/{id}/charges/{chargeId}
func (h *ChargeHandler) RemoveCharge(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	chargeID := chi.URLParam(r, "chargeId")
	if bookingID == "" || chargeID == "" {
		utils.ResponseBadRequest(w, "Booking ID and charge ID are required", nil)
		return
	}

	sheet, err := h.service.RemoveCharge(r.Context(), bookingID, chargeID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove charge")
		return
	}

	utils.ResponseSuccess(w, "success", sheet)
}

// GetCharges handles GET /api/bookings/{id}/charges
func (h *ChargeHandler) GetCharges(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	sheet, err := h.service.GetCharges(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get charges")
		return
	}

	utils.ResponseSuccess(w, "success", sheet)
}
