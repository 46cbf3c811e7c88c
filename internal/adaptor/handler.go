package adaptor

import (
	"net/http"
	"strings"

	"fieldpro/internal/usecase"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Charge  *ChargeHandler
	Payment *PaymentHandler
	Credit  *CreditHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Charge:  NewChargeHandler(service.Charge, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Credit:  NewCreditHandler(service.Credit, log),
	}
}

// handleServiceError maps service errors onto HTTP responses by message
// class, shared by all handlers.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "cannot"):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "unreconciled"):
		// paid but not credited; distinct from an ordinary failure so the
		// app routes the professional to support instead of a retry button
		log.Error(operation+" left an unreconciled payment",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "backend unreachable"):
		log.Error(operation+" failed - backend unreachable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, "Service temporarily unavailable, please try again")

	default:
		// backend business-rule rejection; the message is already the
		// backend's own wording
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)
	}
}
