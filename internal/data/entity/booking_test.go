package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusConfirmed, BookingStatusInProgress, true},
		{BookingStatusConfirmed, BookingStatusCancellationPending, true},
		{BookingStatusConfirmed, BookingStatusCompleted, false},
		{BookingStatusInProgress, BookingStatusCompleted, true},
		{BookingStatusInProgress, BookingStatusConfirmed, false},
		{BookingStatusInProgress, BookingStatusCancellationPending, false},
		{BookingStatusCancellationPending, BookingStatusCancelled, true},
		{BookingStatusCancellationPending, BookingStatusInProgress, false},
		{BookingStatusCompleted, BookingStatusInProgress, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusConfirmed.Terminal())
	assert.False(t, BookingStatusInProgress.Terminal())
	assert.False(t, BookingStatusCancellationPending.Terminal())
}

func TestSessionTimeLeftFlooredAtZero(t *testing.T) {
	now := time.Now()
	s := &PaymentSession{ExpiresAt: now.Add(90 * time.Second)}

	assert.Equal(t, 90*time.Second, s.TimeLeft(now))
	assert.Equal(t, time.Duration(0), s.TimeLeft(now.Add(2*time.Minute)))
	assert.Equal(t, time.Duration(0), s.TimeLeft(s.ExpiresAt))
}

func TestReconcileTransactions(t *testing.T) {
	good := []CreditTransaction{
		{ID: "t3", Amount: -40, Status: TransactionStatusCompleted, BalanceAfter: 760},
		{ID: "t2", Amount: -200, Status: TransactionStatusFailed, BalanceAfter: 0},
		{ID: "t1", Amount: 800, Status: TransactionStatusCompleted, BalanceAfter: 800},
	}
	assert.True(t, ReconcileTransactions(good))

	bad := []CreditTransaction{
		{ID: "t2", Amount: -40, Status: TransactionStatusCompleted, BalanceAfter: 700},
		{ID: "t1", Amount: 800, Status: TransactionStatusCompleted, BalanceAfter: 800},
	}
	assert.False(t, ReconcileTransactions(bad))

	assert.True(t, ReconcileTransactions(nil))
	assert.True(t, ReconcileTransactions([]CreditTransaction{
		{ID: "t1", Amount: 800, Status: TransactionStatusCompleted, BalanceAfter: 800},
	}))
}
