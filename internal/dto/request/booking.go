package request

type StartJobRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// CompleteJobRequest declares how payment is settled when the booking is
// pay_later. PaymentMode stays empty for pay_now bookings.
type CompleteJobRequest struct {
	PaymentMode   string `json:"payment_mode,omitempty" validate:"omitempty,oneof=cash online"`
	CashConfirmed bool   `json:"cash_confirmed,omitempty"`
}
