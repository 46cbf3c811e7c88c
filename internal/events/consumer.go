// Package events consumes the marketplace push channel. Charge approvals and
// booking updates happen out-of-band at any time; handlers only re-fetch and
// overwrite snapshots, so duplicate or out-of-order delivery is harmless.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventChargeApproved = "charge_approved"
	EventChargeRejected = "charge_rejected"
	EventBookingUpdated = "booking_updated"
)

// Envelope is the wire format of a push message.
type Envelope struct {
	Type      string          `json:"type"`
	BookingID string          `json:"bookingId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type bookingRefresher interface {
	RefreshBooking(ctx context.Context, bookingID string) error
}

type chargeRefresher interface {
	RefreshCharges(ctx context.Context, bookingID string) error
}

// Dispatcher routes decoded events to the idempotent refreshers. Split from
// the Kafka reader so tests exercise routing without a broker.
type Dispatcher struct {
	store    store.Store
	bookings bookingRefresher
	charges  chargeRefresher
	log      *zap.Logger
}

func NewDispatcher(st store.Store, bookings bookingRefresher, charges chargeRefresher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:    st,
		bookings: bookings,
		charges:  charges,
		log:      log.With(zap.String("component", "events")),
	}
}

// Dispatch handles one raw message. Events for bookings the engine holds no
// snapshot of are skipped; this is the bookingId filter.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	if env.BookingID == "" {
		d.log.Debug("Event without bookingId skipped", zap.String("type", env.Type))
		return nil
	}

	if _, ok := d.store.Booking(env.BookingID); !ok {
		d.log.Debug("Event for unknown booking skipped",
			zap.String("type", env.Type),
			zap.String("booking_id", env.BookingID),
		)
		return nil
	}

	switch env.Type {
	case EventChargeApproved, EventChargeRejected:
		d.log.Info("Charge decision received",
			zap.String("type", env.Type),
			zap.String("booking_id", env.BookingID),
		)
		if err := d.charges.RefreshCharges(ctx, env.BookingID); err != nil {
			return err
		}
		// a charge decision can also move the booking's finalTotal
		return d.bookings.RefreshBooking(ctx, env.BookingID)

	case EventBookingUpdated:
		return d.bookings.RefreshBooking(ctx, env.BookingID)

	default:
		d.log.Debug("Unknown event type skipped", zap.String("type", env.Type))
		return nil
	}
}

// Consumer reads the push channel from Kafka and feeds the dispatcher.
type Consumer struct {
	reader     *kafka.Reader
	dispatcher *Dispatcher
	log        *zap.Logger
}

func NewConsumer(cfg utils.KafkaConfig, dispatcher *Dispatcher, log *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Warn(fmt.Sprintf("kafka: "+msg, args...))
		}),
	})

	return &Consumer{
		reader:     reader,
		dispatcher: dispatcher,
		log:        log.With(zap.String("component", "events")),
	}
}

// Start consumes until the context is cancelled. Dispatch failures are logged
// and the message is moved past; the next event for the same booking will
// re-fetch the same snapshot anyway.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Event consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.log.Error("Event read failed", zap.Error(err))
			return err
		}

		if err := c.dispatcher.Dispatch(ctx, msg.Value); err != nil {
			c.log.Warn("Event dispatch failed",
				zap.Error(err),
				zap.Int64("offset", msg.Offset),
			)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
