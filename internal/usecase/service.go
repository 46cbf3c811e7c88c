package usecase

import (
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Charge  ChargeService
	Payment PaymentService
	Credit  CreditService
}

func NewService(gw *gateway.Gateway, st store.Store, config *utils.Config, log *zap.Logger) *Service {
	payment := NewPaymentService(gw, st, config, log)

	return &Service{
		Booking: NewBookingService(gw, st, payment, log),
		Charge:  NewChargeService(gw, st, log),
		Payment: payment,
		Credit:  NewCreditService(gw, st, log),
	}
}
