package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fieldpro/internal/data/entity"
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/dto/request"
	"fieldpro/internal/dto/response"
	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

const otpLength = 6

type BookingService interface {
	ListBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	StartJob(ctx context.Context, bookingID string, req *request.StartJobRequest) (*response.BookingResponse, error)
	CompleteJob(ctx context.Context, bookingID string, req *request.CompleteJobRequest) (*response.BookingResponse, error)
	RequestCancellation(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	RefreshBooking(ctx context.Context, bookingID string) error
}

// sessionCloser is the slice of PaymentService the booking state machine
// needs: tearing an open collection session down once the job closes.
type sessionCloser interface {
	Dismiss(ctx context.Context, bookingID string) error
}

type bookingService struct {
	gw       *gateway.Gateway
	store    store.Store
	sessions sessionCloser
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(gw *gateway.Gateway, st store.Store, sessions sessionCloser, log *zap.Logger) BookingService {
	return &bookingService{
		gw:       gw,
		store:    st,
		sessions: sessions,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) ListBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.gw.Booking.List(ctx)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		s.store.SetBooking(b)
		responses[i] = response.BookingToResponse(b)
	}

	s.log.Info("Bookings retrieved", zap.Int("count", len(bookings)))
	return responses, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
	}

	if charges, ok := s.store.Charges(bookingID); ok {
		detail.ChargeCount = charges.Count()
		detail.Charges = response.ChargeSheetToResponse(charges)
	}

	// the complete action stays hidden until at least one charge exists;
	// a workflow policy, not a backend constraint
	detail.CanComplete = booking.Status == entity.BookingStatusInProgress && detail.ChargeCount > 0

	if session, ok := s.store.Session(bookingID); ok {
		detail.Session = response.SessionToResponse(session, s.now())
	}

	return detail, nil
}

// StartJob drives confirmed -> in_progress, gated on the start OTP the
// customer reads out. The backend verifies the code; a rejection leaves the
// booking untouched and is never retried automatically.
func (s *bookingService) StartJob(ctx context.Context, bookingID string, req *request.StartJobRequest) (*response.BookingResponse, error) {
	otp := strings.TrimSpace(req.OTP)
	if otp == "" {
		return nil, fmt.Errorf("validation failed: Please enter the start OTP from customer")
	}
	if !utils.IsNumericCode(otp, otpLength) {
		return nil, fmt.Errorf("validation failed: OTP must be a %d-digit code", otpLength)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusInProgress) {
		return nil, fmt.Errorf("cannot start job while booking is %s", booking.Status)
	}

	updated, err := s.gw.Booking.UpdateStatus(ctx, bookingID, gateway.StatusUpdate{
		Status: entity.BookingStatusInProgress,
		OTP:    otp,
	})
	if err != nil {
		// wrong or expired code; surfaced verbatim, state unchanged
		s.log.Warn("Start OTP rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, err
	}

	s.store.SetBooking(updated)

	s.log.Info("Job started",
		zap.String("booking_id", bookingID),
		zap.String("booking_number", updated.BookingNumber),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// CompleteJob drives in_progress -> completed. For pay_later bookings the
// professional declares how payment was settled; cash requires the explicit
// receipt confirmation since the system cannot verify cash. Completing while
// an online session is still open is allowed (cash fallback mid-flow) and
// logged.
func (s *bookingService) CompleteJob(ctx context.Context, bookingID string, req *request.CompleteJobRequest) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCompleted) {
		return nil, fmt.Errorf("cannot complete job while booking is %s", booking.Status)
	}

	cashPayment := false
	if booking.PaymentMethod == entity.PaymentMethodPayLater {
		switch req.PaymentMode {
		case "cash":
			if !req.CashConfirmed {
				return nil, fmt.Errorf("validation failed: cash receipt must be confirmed before completing the job")
			}
			cashPayment = true
		case "online":
			if !booking.OnlinePaid {
				s.log.Warn("Completing job before online payment confirmation",
					zap.String("booking_id", bookingID),
				)
			}
		default:
			return nil, fmt.Errorf("validation failed: a payment mode (cash or online) must be declared for this booking")
		}
	}

	updated, err := s.gw.Booking.UpdateStatus(ctx, bookingID, gateway.StatusUpdate{
		Status:      entity.BookingStatusCompleted,
		CashPayment: cashPayment,
	})
	if err != nil {
		s.log.Error("Job completion rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, err
	}

	s.store.SetBooking(updated)

	// the backend deducts the second credit installment on completion;
	// drop the cached balance so the next read re-fetches it
	s.store.InvalidateBalance()

	if err := s.sessions.Dismiss(ctx, bookingID); err != nil {
		s.log.Warn("Session teardown after completion failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
	}

	s.log.Info("Job completed",
		zap.String("booking_id", bookingID),
		zap.String("booking_number", updated.BookingNumber),
		zap.Bool("cash_payment", cashPayment),
		zap.Float64("final_total", updated.FinalTotal),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// RequestCancellation drives confirmed -> cancellation_pending. The terminal
// cancelled state arrives later through a booking_updated event once the
// backend settles it.
func (s *bookingService) RequestCancellation(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancellationPending) {
		return nil, fmt.Errorf("cannot request cancellation while booking is %s", booking.Status)
	}

	updated, err := s.gw.Booking.UpdateStatus(ctx, bookingID, gateway.StatusUpdate{
		Status: entity.BookingStatusCancellationPending,
	})
	if err != nil {
		return nil, err
	}

	s.store.SetBooking(updated)

	s.log.Info("Cancellation requested", zap.String("booking_id", bookingID))

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// RefreshBooking re-fetches and overwrites the snapshot. Idempotent; driven
// by booking_updated events which may arrive duplicated or out of order.
func (s *bookingService) RefreshBooking(ctx context.Context, bookingID string) error {
	booking, err := s.gw.Booking.Get(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("refresh booking %s: %w", bookingID, err)
	}
	s.store.SetBooking(booking)

	if booking.Status.Terminal() {
		s.store.InvalidateBalance()
	}

	return nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	if booking, ok := s.store.Booking(bookingID); ok {
		return booking, nil
	}

	booking, err := s.gw.Booking.Get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
	}
	s.store.SetBooking(booking)
	return booking, nil
}
