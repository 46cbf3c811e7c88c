package gateway

import (
	"context"
	"fmt"
	"net/http"

	"fieldpro/internal/data/entity"

	"go.uber.org/zap"
)

// StatusUpdate is the body of PATCH /bookings/{id}/status. OTP rides along on
// the start transition, CashPayment on a cash completion.
type StatusUpdate struct {
	Status      entity.BookingStatus `json:"status"`
	OTP         string               `json:"otp,omitempty"`
	CashPayment bool                 `json:"cashPayment,omitempty"`
}

type BookingAPI interface {
	List(ctx context.Context) ([]*entity.Booking, error)
	Get(ctx context.Context, bookingID string) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, update StatusUpdate) (*entity.Booking, error)
}

type bookingAPI struct {
	client *Client
	log    *zap.Logger
}

func NewBookingAPI(client *Client, log *zap.Logger) BookingAPI {
	return &bookingAPI{
		client: client,
		log:    log.With(zap.String("gateway", "booking")),
	}
}

func (a *bookingAPI) List(ctx context.Context) ([]*entity.Booking, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return NormalizeBookingList(raw)
}

func (a *bookingAPI) Get(ctx context.Context, bookingID string) (*entity.Booking, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/bookings/"+bookingID, nil)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	return NormalizeBooking(raw)
}

func (a *bookingAPI) UpdateStatus(ctx context.Context, bookingID string, update StatusUpdate) (*entity.Booking, error) {
	raw, err := a.client.do(ctx, http.MethodPatch, "/bookings/"+bookingID+"/status", update)
	if err != nil {
		a.log.Warn("Booking status update rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", string(update.Status)),
		)
		return nil, err
	}
	return NormalizeBooking(raw)
}
