package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fieldpro/internal/data/entity"
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/dto/response"
	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

type PaymentService interface {
	Generate(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error)
	Regenerate(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error)
	GetSession(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error)
	Dismiss(ctx context.Context, bookingID string) error
	Shutdown()
}

// runner lifecycle: idle -> active -> terminal. Teardown is the single
// idle/active -> terminal transition; it cancels both timers together.
type runnerState int

const (
	runnerIdle runnerState = iota
	runnerActive
	runnerTerminal
)

type sessionRunner struct {
	bookingID string
	paymentID string

	mu     sync.Mutex
	state  runnerState
	cancel context.CancelFunc
	done   chan struct{}
}

// terminate moves the runner to terminal exactly once and cancels its
// context. Safe to call from any goroutine, any number of times.
func (r *sessionRunner) terminate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == runnerTerminal {
		return
	}
	r.state = runnerTerminal
	r.cancel()
}

type paymentService struct {
	gw    *gateway.Gateway
	store store.Store
	log   *zap.Logger

	pollEvery time.Duration
	tickEvery time.Duration
	now       func() time.Time

	mu      sync.Mutex
	runners map[string]*sessionRunner
}

func NewPaymentService(gw *gateway.Gateway, st store.Store, config *utils.Config, log *zap.Logger) PaymentService {
	pollEvery := time.Duration(config.Payment.PollSeconds) * time.Second
	if pollEvery <= 0 {
		pollEvery = 3 * time.Second
	}
	tickEvery := time.Duration(config.Payment.TickSeconds) * time.Second
	if tickEvery <= 0 {
		tickEvery = time.Second
	}

	return &paymentService{
		gw:        gw,
		store:     st,
		log:       log.With(zap.String("service", "payment")),
		pollEvery: pollEvery,
		tickEvery: tickEvery,
		now:       time.Now,
		runners:   make(map[string]*sessionRunner),
	}
}

func (s *paymentService) Generate(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error) {
	booking, ok := s.store.Booking(bookingID)
	if !ok {
		fetched, err := s.gw.Booking.Get(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
		}
		s.store.SetBooking(fetched)
		booking = fetched
	}

	if booking.Status != entity.BookingStatusInProgress {
		return nil, fmt.Errorf("cannot collect payment while booking is %s", booking.Status)
	}

	// a new session is allowed only after the previous one is terminal
	if existing, ok := s.store.Session(bookingID); ok && !existing.Status.Terminal() {
		return nil, fmt.Errorf("cannot generate a new payment session while one is %s", existing.Status)
	}

	return s.startSession(ctx, booking)
}

func (s *paymentService) Regenerate(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error) {
	existing, ok := s.store.Session(bookingID)
	if !ok {
		return nil, fmt.Errorf("payment session for booking %s not found", bookingID)
	}
	if existing.Status != entity.SessionStatusExpired {
		return nil, fmt.Errorf("cannot regenerate a payment session that is %s", existing.Status)
	}

	booking, ok := s.store.Booking(bookingID)
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	s.teardown(bookingID)
	s.store.DeleteSession(bookingID)

	return s.startSession(ctx, booking)
}

func (s *paymentService) startSession(ctx context.Context, booking *entity.Booking) (*response.PaymentSessionResponse, error) {
	description := fmt.Sprintf("Payment for booking %s", booking.BookingNumber)
	session, err := s.gw.Payment.GenerateQR(ctx, booking.ID, description)
	if err != nil {
		s.log.Error("Failed to generate payment session",
			zap.Error(err),
			zap.String("booking_id", booking.ID),
		)
		return nil, err
	}

	s.store.SetSession(session)

	s.log.Info("Payment session started",
		zap.String("booking_id", booking.ID),
		zap.String("payment_id", session.PaymentID),
		zap.Float64("amount", session.Amount),
		zap.Time("expires_at", session.ExpiresAt),
	)

	s.spawnRunner(booking.ID, session.PaymentID)

	return response.SessionToResponse(session, s.now()), nil
}

func (s *paymentService) spawnRunner(bookingID, paymentID string) {
	runCtx, cancel := context.WithCancel(context.Background())
	r := &sessionRunner{
		bookingID: bookingID,
		paymentID: paymentID,
		state:     runnerActive,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	if old := s.runners[bookingID]; old != nil {
		old.terminate()
	}
	s.runners[bookingID] = r
	s.mu.Unlock()

	go s.run(runCtx, r)
}

// run owns both recurring timers for one session: the gateway status poll and
// the expiry tick. They live and die together; leaving this loop for any
// reason stops both.
func (s *paymentService) run(ctx context.Context, r *sessionRunner) {
	defer close(r.done)

	poll := time.NewTicker(s.pollEvery)
	defer poll.Stop()
	tick := time.NewTicker(s.tickEvery)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-tick.C:
			if s.expireIfDue(r) {
				r.terminate()
				return
			}

		case <-poll.C:
			if s.pollOnce(ctx, r) {
				r.terminate()
				return
			}
		}
	}
}

// expireIfDue forces the session to expired once its lifetime elapses,
// independent of what the gateway reports. Returns true when the session is
// terminal.
func (s *paymentService) expireIfDue(r *sessionRunner) bool {
	session, ok := s.store.Session(r.bookingID)
	if !ok || session.PaymentID != r.paymentID {
		return true
	}
	if session.Status.Terminal() {
		return true
	}
	if s.now().Before(session.ExpiresAt) {
		return false
	}

	session.Status = entity.SessionStatusExpired
	s.store.SetSession(session)

	s.log.Info("Payment session expired",
		zap.String("booking_id", r.bookingID),
		zap.String("payment_id", r.paymentID),
	)

	return true
}

// pollOnce asks the gateway for the payment status and applies it. Returns
// true when the session is terminal.
func (s *paymentService) pollOnce(ctx context.Context, r *sessionRunner) bool {
	remote, err := s.gw.Payment.Status(ctx, r.paymentID)
	if err != nil {
		// transient poll failures are tolerated; the next tick retries
		s.log.Debug("Payment status poll failed",
			zap.Error(err),
			zap.String("payment_id", r.paymentID),
		)
		return false
	}

	session, ok := s.store.Session(r.bookingID)
	if !ok || session.PaymentID != r.paymentID {
		return true
	}

	// expiry takes precedence: a late succeeded result never revives an
	// expired session
	if session.Status.Terminal() {
		return true
	}

	switch remote {
	case "succeeded":
		session.Status = entity.SessionStatusCompleted
		s.store.SetSession(session)
		s.markBookingPaid(r.bookingID)
		s.log.Info("Payment session completed",
			zap.String("booking_id", r.bookingID),
			zap.String("payment_id", r.paymentID),
			zap.Float64("amount", session.Amount),
		)
		return true

	case "processing":
		if session.Status != entity.SessionStatusProcessing {
			session.Status = entity.SessionStatusProcessing
			s.store.SetSession(session)
		}
		return false

	default:
		// unknown or still-pending gateway status leaves the session as is
		return false
	}
}

func (s *paymentService) markBookingPaid(bookingID string) {
	booking, ok := s.store.Booking(bookingID)
	if !ok {
		return
	}
	booking.OnlinePaid = true
	s.store.SetBooking(booking)
}

func (s *paymentService) GetSession(ctx context.Context, bookingID string) (*response.PaymentSessionResponse, error) {
	session, ok := s.store.Session(bookingID)
	if !ok {
		return nil, fmt.Errorf("payment session for booking %s not found", bookingID)
	}
	return response.SessionToResponse(session, s.now()), nil
}

// Dismiss tears the session's timers down when the professional navigates
// away, and best-effort closes the QR at the gateway so it stops accepting
// payment. No session keeps polling once its owning view is gone.
func (s *paymentService) Dismiss(ctx context.Context, bookingID string) error {
	s.teardown(bookingID)

	session, ok := s.store.Session(bookingID)
	if !ok {
		return nil
	}

	if !session.Status.Terminal() && session.QRCodeID != "" {
		if err := s.gw.Payment.CloseQR(ctx, session.QRCodeID); err != nil {
			s.log.Warn("QR close on dismiss failed",
				zap.Error(err),
				zap.String("booking_id", bookingID),
			)
		}
		session.Status = entity.SessionStatusExpired
		s.store.SetSession(session)
	}

	s.store.DeleteSession(bookingID)
	return nil
}

// teardown stops the runner for a booking and waits for it to exit.
func (s *paymentService) teardown(bookingID string) {
	s.mu.Lock()
	r := s.runners[bookingID]
	delete(s.runners, bookingID)
	s.mu.Unlock()

	if r == nil {
		return
	}
	r.terminate()
	<-r.done
}

// Shutdown tears down every active runner; called on server stop.
func (s *paymentService) Shutdown() {
	s.mu.Lock()
	runners := make([]*sessionRunner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	s.runners = make(map[string]*sessionRunner)
	s.mu.Unlock()

	for _, r := range runners {
		r.terminate()
		<-r.done
	}
}
