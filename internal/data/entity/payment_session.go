package entity

import "time"

type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusExpired    SessionStatus = "expired"
)

// Terminal reports whether the session can no longer change state.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusExpired
}

// PaymentSession is a time-boxed QR payment request for one booking. Amount
// is fixed at creation; PaymentID identifies the session for all polling.
type PaymentSession struct {
	PaymentID  string        `json:"payment_id"`
	QRCodeID   string        `json:"qr_code_id"`
	BookingID  string        `json:"booking_id"`
	PaymentURL string        `json:"payment_url"`
	Amount     float64       `json:"amount"`
	Status     SessionStatus `json:"status"`
	ExpiresAt  time.Time     `json:"expires_at"`
	CreatedAt  time.Time     `json:"created_at"`
}

// TimeLeft returns the remaining lifetime at the given instant, floored at zero.
func (p *PaymentSession) TimeLeft(now time.Time) time.Duration {
	if p == nil || !now.Before(p.ExpiresAt) {
		return 0
	}
	return p.ExpiresAt.Sub(now)
}
