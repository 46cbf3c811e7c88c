package adaptor

import (
	"net/http"

	"fieldpro/internal/usecase"
	"fieldpro/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GenerateSession handles POST /api/bookings/{id}/payment-session
func (h *PaymentHandler) GenerateSession(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	session, err := h.service.Generate(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "generate payment session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// RegenerateSession handles POST /api/bookings/{id}/payment-session/regenerate
func (h *PaymentHandler) RegenerateSession(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	session, err := h.service.Regenerate(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "regenerate payment session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// GetSession handles GET /api/bookings/{id}/payment-session
func (h *PaymentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	session, err := h.service.GetSession(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// DismissSession handles DELETE /api/bookings/{id}/payment-session
func (h *PaymentHandler) DismissSession(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.Dismiss(r.Context(), bookingID); err != nil {
		handleServiceError(w, h.log, err, "dismiss payment session")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
