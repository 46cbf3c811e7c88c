package entity

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed           BookingStatus = "confirmed"
	BookingStatusInProgress          BookingStatus = "in_progress"
	BookingStatusCompleted           BookingStatus = "completed"
	BookingStatusCancellationPending BookingStatus = "cancellation_pending"
	BookingStatusCancelled           BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo enforces the forward-only lifecycle:
// confirmed -> in_progress -> completed, or
// confirmed -> cancellation_pending -> cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed:
		return next == BookingStatusInProgress || next == BookingStatusCancellationPending
	case BookingStatusInProgress:
		return next == BookingStatusCompleted
	case BookingStatusCancellationPending:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodPayNow   PaymentMethod = "pay_now"
	PaymentMethodPayLater PaymentMethod = "pay_later"
)

// Booking is the engine's snapshot of a job assigned to the professional.
// It is created by the marketplace backend at assignment time and mutated
// only through status transitions; the engine never deletes one.
type Booking struct {
	ID                     string        `json:"id"`
	BookingNumber          string        `json:"booking_number"`
	Status                 BookingStatus `json:"status"`
	PaymentMethod          PaymentMethod `json:"payment_method"`
	ServiceName            string        `json:"service_name"`
	CustomerName           string        `json:"customer_name"`
	Total                  float64       `json:"total"`
	AdditionalChargesTotal float64       `json:"additional_charges_total"`
	FinalTotal             float64       `json:"final_total"`
	CreditDeducted         float64       `json:"credit_deducted"`
	OnlinePaid             bool          `json:"online_paid"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}
