package gateway

import (
	"go.uber.org/zap"
)

// Gateway groups the backend resource clients the engine depends on. Tests
// swap individual fields for fakes.
type Gateway struct {
	Booking BookingAPI
	Charge  ChargeAPI
	Payment PaymentAPI
	Credit  CreditAPI
}

func NewGateway(client *Client, log *zap.Logger) *Gateway {
	return &Gateway{
		Booking: NewBookingAPI(client, log),
		Charge:  NewChargeAPI(client, log),
		Payment: NewPaymentAPI(client, log),
		Credit:  NewCreditAPI(client, log),
	}
}
