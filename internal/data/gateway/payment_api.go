package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fieldpro/internal/data/entity"

	"go.uber.org/zap"
)

type PaymentAPI interface {
	GenerateQR(ctx context.Context, bookingID, description string) (*entity.PaymentSession, error)
	Status(ctx context.Context, paymentID string) (string, error)
	CloseQR(ctx context.Context, qrCodeID string) error
}

type paymentAPI struct {
	client *Client
	log    *zap.Logger
	now    func() time.Time
}

func NewPaymentAPI(client *Client, log *zap.Logger) PaymentAPI {
	return &paymentAPI{
		client: client,
		log:    log.With(zap.String("gateway", "payment")),
		now:    time.Now,
	}
}

func (a *paymentAPI) GenerateQR(ctx context.Context, bookingID, description string) (*entity.PaymentSession, error) {
	body := struct {
		BookingID   string `json:"bookingId"`
		Description string `json:"description"`
	}{BookingID: bookingID, Description: description}

	raw, err := a.client.do(ctx, http.MethodPost, "/payments/generate-upi-qr", body)
	if err != nil {
		return nil, fmt.Errorf("generate payment QR for booking %s: %w", bookingID, err)
	}
	return NormalizeSession(bookingID, raw, a.now())
}

func (a *paymentAPI) Status(ctx context.Context, paymentID string) (string, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/payments/"+paymentID, nil)
	if err != nil {
		return "", fmt.Errorf("poll payment %s: %w", paymentID, err)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode payment status payload: %w", err)
	}
	return payload.Status, nil
}

func (a *paymentAPI) CloseQR(ctx context.Context, qrCodeID string) error {
	_, err := a.client.do(ctx, http.MethodPost, "/payments/qr/"+qrCodeID+"/close", nil)
	if err != nil {
		// best effort; an already-expired QR comes back as an error too
		a.log.Debug("QR close failed", zap.Error(err), zap.String("qr_code_id", qrCodeID))
		return fmt.Errorf("close QR %s: %w", qrCodeID, err)
	}
	return nil
}
