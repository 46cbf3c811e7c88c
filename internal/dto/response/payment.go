package response

import (
	"time"

	"fieldpro/internal/data/entity"
)

type PaymentSessionResponse struct {
	PaymentID       string               `json:"payment_id"`
	QRCodeID        string               `json:"qr_code_id,omitempty"`
	PaymentURL      string               `json:"payment_url,omitempty"`
	Amount          float64              `json:"amount"`
	Status          entity.SessionStatus `json:"status"`
	ExpiresAt       time.Time            `json:"expires_at"`
	TimeLeftSeconds int                  `json:"time_left_seconds"`
}

func SessionToResponse(s *entity.PaymentSession, now time.Time) *PaymentSessionResponse {
	return &PaymentSessionResponse{
		PaymentID:       s.PaymentID,
		QRCodeID:        s.QRCodeID,
		PaymentURL:      s.PaymentURL,
		Amount:          s.Amount,
		Status:          s.Status,
		ExpiresAt:       s.ExpiresAt,
		TimeLeftSeconds: int(s.TimeLeft(now).Seconds()),
	}
}
