package store

import (
	"testing"
	"time"

	"fieldpro/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingSnapshotsAreIsolated(t *testing.T) {
	st := NewMemoryStore()
	st.SetBooking(&entity.Booking{ID: "b1", Status: entity.BookingStatusConfirmed, Total: 1200})

	first, ok := st.Booking("b1")
	require.True(t, ok)

	// mutating a returned snapshot must not leak into the store
	first.Status = entity.BookingStatusCompleted
	first.Total = 0

	second, ok := st.Booking("b1")
	require.True(t, ok)
	assert.Equal(t, entity.BookingStatusConfirmed, second.Status)
	assert.Equal(t, 1200.0, second.Total)
}

func TestSetBookingIgnoresEmptyID(t *testing.T) {
	st := NewMemoryStore()
	st.SetBooking(&entity.Booking{Status: entity.BookingStatusConfirmed})
	st.SetBooking(nil)
	assert.Empty(t, st.Bookings())
}

func TestChargeSheetSlicesAreCopied(t *testing.T) {
	st := NewMemoryStore()
	original := &entity.ChargeSheet{
		BookingID: "b1",
		Pending:   []entity.Charge{{ID: "c1", Amount: 150, Approval: entity.ChargeApprovalPending}},
	}
	st.SetCharges(original)

	// mutating the caller's slice after storing must not affect the store
	original.Pending[0].Amount = 9999

	got, ok := st.Charges("b1")
	require.True(t, ok)
	assert.Equal(t, 150.0, got.Pending[0].Amount)

	// nor the other way around
	got.Pending[0].Amount = 1
	again, _ := st.Charges("b1")
	assert.Equal(t, 150.0, again.Pending[0].Amount)
}

func TestSessionLifecycle(t *testing.T) {
	st := NewMemoryStore()
	st.SetSession(&entity.PaymentSession{
		PaymentID: "pay-1",
		BookingID: "b1",
		Status:    entity.SessionStatusPending,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})

	got, ok := st.Session("b1")
	require.True(t, ok)
	assert.Equal(t, "pay-1", got.PaymentID)

	st.DeleteSession("b1")
	_, ok = st.Session("b1")
	assert.False(t, ok)
}

func TestBalanceCacheAndInvalidation(t *testing.T) {
	st := NewMemoryStore()

	_, ok := st.Balance()
	assert.False(t, ok, "balance starts unset")

	st.SetBalance(800)
	balance, ok := st.Balance()
	require.True(t, ok)
	assert.Equal(t, 800.0, balance)

	st.InvalidateBalance()
	_, ok = st.Balance()
	assert.False(t, ok)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	st := NewMemoryStore()

	var changes []Change
	unsubscribe := st.Subscribe(func(c Change) { changes = append(changes, c) })

	st.SetBooking(&entity.Booking{ID: "b1", Status: entity.BookingStatusConfirmed})
	st.SetCharges(&entity.ChargeSheet{BookingID: "b1"})
	st.InvalidateBalance()

	require.Len(t, changes, 3)
	assert.Equal(t, Change{Kind: "booking", BookingID: "b1"}, changes[0])
	assert.Equal(t, Change{Kind: "charges", BookingID: "b1"}, changes[1])
	assert.Equal(t, Change{Kind: "balance"}, changes[2])

	unsubscribe()
	st.SetBooking(&entity.Booking{ID: "b2", Status: entity.BookingStatusConfirmed})
	assert.Len(t, changes, 3, "no deliveries after unsubscribe")
}

func TestSubscribersAreIndependent(t *testing.T) {
	st := NewMemoryStore()

	var a, b int
	stopA := st.Subscribe(func(Change) { a++ })
	st.Subscribe(func(Change) { b++ })

	st.SetBalance(100)
	stopA()
	st.SetBalance(200)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}
