package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fieldpro/internal/data/entity"
	"fieldpro/internal/data/gateway"

	"go.uber.org/zap"
)

// ---------- gateway fakes ----------

type fakeBookingAPI struct {
	mu       sync.Mutex
	bookings map[string]*entity.Booking
	startOTP string
	updates  []gateway.StatusUpdate
	failWith error
}

func newFakeBookingAPI(bookings ...*entity.Booking) *fakeBookingAPI {
	f := &fakeBookingAPI{bookings: make(map[string]*entity.Booking)}
	for _, b := range bookings {
		copied := *b
		f.bookings[b.ID] = &copied
	}
	return f
}

func (f *fakeBookingAPI) List(ctx context.Context) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingAPI) Get(ctx context.Context, bookingID string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingAPI) UpdateStatus(ctx context.Context, bookingID string, update gateway.StatusUpdate) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, update)

	if f.failWith != nil {
		return nil, f.failWith
	}

	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if update.Status == entity.BookingStatusInProgress && update.OTP != f.startOTP {
		return nil, fmt.Errorf("Invalid start OTP")
	}

	b.Status = update.Status
	copied := *b
	return &copied, nil
}

func (f *fakeBookingAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeBookingAPI) lastUpdate() gateway.StatusUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[len(f.updates)-1]
}

type fakeChargeAPI struct {
	mu       sync.Mutex
	sheet    *entity.ChargeSheet
	added    [][]gateway.ChargeItem
	removed  []string
	failWith error
}

func (f *fakeChargeAPI) AddBulk(ctx context.Context, bookingID string, items []gateway.ChargeItem, idempotencyKey string) (*entity.ChargeSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, items)
	if f.failWith != nil {
		return nil, f.failWith
	}

	sheet := &entity.ChargeSheet{BookingID: bookingID}
	if f.sheet != nil {
		*sheet = *f.sheet
	}
	for i, item := range items {
		sheet.Pending = append(sheet.Pending, entity.Charge{
			ID:          fmt.Sprintf("chg-%d", i+1),
			BookingID:   bookingID,
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
			Approval:    entity.ChargeApprovalPending,
		})
	}
	f.sheet = sheet
	return sheet, nil
}

func (f *fakeChargeAPI) Remove(ctx context.Context, bookingID, chargeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, chargeID)
	if f.failWith != nil {
		return f.failWith
	}
	if f.sheet != nil {
		kept := f.sheet.Pending[:0]
		for _, c := range f.sheet.Pending {
			if c.ID != chargeID {
				kept = append(kept, c)
			}
		}
		f.sheet.Pending = kept
	}
	return nil
}

func (f *fakeChargeAPI) List(ctx context.Context, bookingID string) (*entity.ChargeSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	sheet := &entity.ChargeSheet{BookingID: bookingID}
	if f.sheet != nil {
		sheet.Pending = append([]entity.Charge(nil), f.sheet.Pending...)
		sheet.Approved = append([]entity.Charge(nil), f.sheet.Approved...)
	}
	for i := range sheet.Approved {
		sheet.Total += sheet.Approved[i].Amount
	}
	return sheet, nil
}

func (f *fakeChargeAPI) addCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

type fakePaymentAPI struct {
	mu           sync.Mutex
	session      *entity.PaymentSession
	remoteStatus string
	statusErr    error
	polls        int
	closed       []string
	generated    int
}

func (f *fakePaymentAPI) GenerateQR(ctx context.Context, bookingID, description string) (*entity.PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated++
	s := *f.session
	s.BookingID = bookingID
	s.PaymentID = fmt.Sprintf("%s-%d", f.session.PaymentID, f.generated)
	return &s, nil
}

func (f *fakePaymentAPI) Status(ctx context.Context, paymentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.remoteStatus, nil
}

func (f *fakePaymentAPI) CloseQR(ctx context.Context, qrCodeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, qrCodeID)
	return nil
}

func (f *fakePaymentAPI) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}

type fakeCreditAPI struct {
	mu           sync.Mutex
	balance      float64
	balanceCalls int
	stats        *entity.CreditStats
	transactions []entity.CreditTransaction
	intentID     string
	confirmErr   error
	confirmed    []string
}

func (f *fakeCreditAPI) Balance(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++
	return f.balance, nil
}

func (f *fakeCreditAPI) Stats(ctx context.Context) (*entity.CreditStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *f.stats
	return &s, nil
}

func (f *fakeCreditAPI) Transactions(ctx context.Context) ([]entity.CreditTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.CreditTransaction(nil), f.transactions...), nil
}

func (f *fakeCreditAPI) CreateIntent(ctx context.Context, amount float64) (string, error) {
	return f.intentID, nil
}

func (f *fakeCreditAPI) ConfirmPurchase(ctx context.Context, paymentIntentID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, paymentIntentID)
	return nil
}

// ---------- session closer fake ----------

type fakeSessionCloser struct {
	mu        sync.Mutex
	dismissed []string
}

func (f *fakeSessionCloser) Dismiss(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed = append(f.dismissed, bookingID)
	return nil
}

// ---------- helpers ----------

func testGateway(booking gateway.BookingAPI, charge gateway.ChargeAPI, payment gateway.PaymentAPI, credit gateway.CreditAPI) *gateway.Gateway {
	return &gateway.Gateway{
		Booking: booking,
		Charge:  charge,
		Payment: payment,
		Credit:  credit,
	}
}

func testBooking(id string, status entity.BookingStatus, method entity.PaymentMethod) *entity.Booking {
	return &entity.Booking{
		ID:            id,
		BookingNumber: "BK-" + id,
		Status:        status,
		PaymentMethod: method,
		Total:         1200,
		FinalTotal:    1200,
		CreatedAt:     time.Now(),
	}
}

// fakeClock steps time manually so expiry is deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func nopLogger() *zap.Logger { return zap.NewNop() }
