package gateway

import (
	"context"
	"fmt"
	"net/http"

	"fieldpro/internal/data/entity"

	"go.uber.org/zap"
)

// ChargeItem is one line of a bulk charge submission.
type ChargeItem struct {
	Description string                `json:"description"`
	Amount      float64               `json:"amount"`
	Category    entity.ChargeCategory `json:"category"`
}

type ChargeAPI interface {
	AddBulk(ctx context.Context, bookingID string, items []ChargeItem, idempotencyKey string) (*entity.ChargeSheet, error)
	Remove(ctx context.Context, bookingID, chargeID string) error
	List(ctx context.Context, bookingID string) (*entity.ChargeSheet, error)
}

type chargeAPI struct {
	client *Client
	log    *zap.Logger
}

func NewChargeAPI(client *Client, log *zap.Logger) ChargeAPI {
	return &chargeAPI{
		client: client,
		log:    log.With(zap.String("gateway", "charge")),
	}
}

func (a *chargeAPI) AddBulk(ctx context.Context, bookingID string, items []ChargeItem, idempotencyKey string) (*entity.ChargeSheet, error) {
	body := struct {
		Items          []ChargeItem `json:"items"`
		IdempotencyKey string       `json:"idempotencyKey,omitempty"`
	}{Items: items, IdempotencyKey: idempotencyKey}

	raw, err := a.client.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/charges/bulk", body)
	if err != nil {
		return nil, fmt.Errorf("add charges for booking %s: %w", bookingID, err)
	}
	return NormalizeCharges(bookingID, raw)
}

func (a *chargeAPI) Remove(ctx context.Context, bookingID, chargeID string) error {
	_, err := a.client.do(ctx, http.MethodDelete, "/bookings/"+bookingID+"/charges/"+chargeID, nil)
	if err != nil {
		a.log.Warn("Charge removal rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("charge_id", chargeID),
		)
		return fmt.Errorf("remove charge %s: %w", chargeID, err)
	}
	return nil
}

func (a *chargeAPI) List(ctx context.Context, bookingID string) (*entity.ChargeSheet, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/bookings/"+bookingID+"/charges", nil)
	if err != nil {
		return nil, fmt.Errorf("list charges for booking %s: %w", bookingID, err)
	}
	return NormalizeCharges(bookingID, raw)
}
