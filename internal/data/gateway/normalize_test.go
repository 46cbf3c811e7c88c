package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"fieldpro/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBookingFlatShape(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "b1",
		"bookingNumber": "BK-1042",
		"status": "in_progress",
		"paymentMethod": "pay_later",
		"total": 1200,
		"additionalChargesTotal": 500,
		"finalTotal": 1700,
		"createdAt": "2026-08-29T10:00:00Z"
	}`)

	b, err := NormalizeBooking(raw)
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "BK-1042", b.BookingNumber)
	assert.Equal(t, entity.BookingStatusInProgress, b.Status)
	assert.Equal(t, entity.PaymentMethodPayLater, b.PaymentMethod)
	assert.Equal(t, 1700.0, b.FinalTotal)
}

func TestNormalizeBookingNestedDataAndStringAmounts(t *testing.T) {
	raw := json.RawMessage(`{"data": {"data": {
		"bookingId": "b2",
		"number": "BK-7",
		"status": "confirmed",
		"paymentMethod": "pay_now",
		"total": "950.50",
		"createdAt": 1756461600
	}}}`)

	b, err := NormalizeBooking(raw)
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)
	assert.Equal(t, "BK-7", b.BookingNumber)
	assert.Equal(t, 950.50, b.Total)
	assert.Equal(t, time.Unix(1756461600, 0), b.CreatedAt)
}

func TestNormalizeBookingComputesMissingFinalTotal(t *testing.T) {
	raw := json.RawMessage(`{"id": "b3", "status": "in_progress", "total": "1200", "additionalChargesTotal": 300}`)

	b, err := NormalizeBooking(raw)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, b.FinalTotal)
}

func TestNormalizeBookingMissingID(t *testing.T) {
	_, err := NormalizeBooking(json.RawMessage(`{"status": "confirmed"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestNormalizeBookingListBothShapes(t *testing.T) {
	flat := json.RawMessage(`[{"id": "b1", "status": "confirmed"}, {"id": "b2", "status": "completed"}]`)
	list, err := NormalizeBookingList(flat)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	wrapped := json.RawMessage(`{"data": {"bookings": [{"id": "b1", "status": "confirmed"}]}}`)
	list, err = NormalizeBookingList(wrapped)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].ID)
}

func TestNormalizeChargesPreSplitShape(t *testing.T) {
	raw := json.RawMessage(`{"data": {
		"pending": [{"id": "c2", "description": "Sealant", "amount": "150"}],
		"approved": [{"id": "c1", "description": "Extra pipe", "amount": 500}],
		"total": 9999
	}}`)

	sheet, err := NormalizeCharges("b1", raw)
	require.NoError(t, err)
	require.Len(t, sheet.Pending, 1)
	require.Len(t, sheet.Approved, 1)
	assert.Equal(t, entity.ChargeApprovalPending, sheet.Pending[0].Approval)
	assert.Equal(t, entity.ChargeApprovalApproved, sheet.Approved[0].Approval)

	// the wire total is never trusted; only approved amounts count
	assert.Equal(t, 500.0, sheet.Total)
}

func TestNormalizeChargesFlatListWithTriStateApproved(t *testing.T) {
	raw := json.RawMessage(`[
		{"id": "c1", "amount": 500, "approved": true},
		{"id": "c2", "amount": 150, "approved": null},
		{"id": "c3", "amount": 90, "approved": false}
	]`)

	sheet, err := NormalizeCharges("b1", raw)
	require.NoError(t, err)
	require.Len(t, sheet.Approved, 1)
	require.Len(t, sheet.Pending, 1)
	assert.Equal(t, "c1", sheet.Approved[0].ID)
	assert.Equal(t, "c2", sheet.Pending[0].ID)

	// rejected charges are excluded from both buckets
	assert.Equal(t, 500.0, sheet.Total)
}

func TestNormalizeChargesFlatListWithStatusStrings(t *testing.T) {
	raw := json.RawMessage(`[
		{"chargeId": "c1", "amount": "500", "status": "approved"},
		{"chargeId": "c2", "amount": "150", "status": "pending"},
		{"chargeId": "c3", "amount": "90", "status": "rejected"}
	]`)

	sheet, err := NormalizeCharges("b1", raw)
	require.NoError(t, err)
	assert.Len(t, sheet.Approved, 1)
	assert.Len(t, sheet.Pending, 1)
	assert.Equal(t, 500.0, sheet.Total)
	assert.Equal(t, "b1", sheet.Pending[0].BookingID)
}

func TestNormalizeChargesUnknownCategoryFallsBack(t *testing.T) {
	raw := json.RawMessage(`[{"id": "c1", "amount": 10, "category": "miscellaneous"}]`)

	sheet, err := NormalizeCharges("b1", raw)
	require.NoError(t, err)
	require.Len(t, sheet.Pending, 1)
	assert.Equal(t, entity.ChargeCategoryOther, sheet.Pending[0].Category)
}

func TestNormalizeSessionAbsoluteExpiry(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	raw := json.RawMessage(`{"data": {
		"paymentId": "pay-1",
		"qrCodeId": "qr-1",
		"paymentUrl": "upi://pay?x=1",
		"amount": "1700",
		"status": "pending",
		"expiresAt": "2026-08-29T10:05:00Z"
	}}`)

	s, err := NormalizeSession("b1", raw, now)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", s.PaymentID)
	assert.Equal(t, "qr-1", s.QRCodeID)
	assert.Equal(t, "b1", s.BookingID)
	assert.Equal(t, 1700.0, s.Amount)
	assert.Equal(t, entity.SessionStatusPending, s.Status)
	assert.Equal(t, 5*time.Minute, s.ExpiresAt.Sub(now))
}

func TestNormalizeSessionRelativeExpiry(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	raw := json.RawMessage(`{"id": "pay-2", "expiresIn": 300}`)

	s, err := NormalizeSession("b1", raw, now)
	require.NoError(t, err)
	assert.Equal(t, "pay-2", s.PaymentID)
	assert.Equal(t, entity.SessionStatusPending, s.Status)
	assert.Equal(t, now.Add(5*time.Minute), s.ExpiresAt)
}

func TestNormalizeSessionMissingPaymentID(t *testing.T) {
	_, err := NormalizeSession("b1", json.RawMessage(`{"amount": 10}`), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing paymentId")
}

func TestNormalizeTransactionsBothShapes(t *testing.T) {
	flat := json.RawMessage(`[
		{"id": "t2", "amount": "-40", "type": "job_deduction", "status": "completed", "balanceAfter": 760, "bookingId": "b1"},
		{"id": "t1", "amount": 800, "type": "purchase", "status": "completed", "balanceAfter": "800"}
	]`)

	txs, err := NormalizeTransactions(flat)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, -40.0, txs[0].Amount)
	assert.Equal(t, "b1", txs[0].RelatedBooking)
	assert.Equal(t, 800.0, txs[1].BalanceAfter)

	wrapped := json.RawMessage(`{"data": {"transactions": [{"id": "t1", "amount": 800, "status": "completed"}]}}`)
	txs, err = NormalizeTransactions(wrapped)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestNormalizeStatsThresholdAlias(t *testing.T) {
	raw := json.RawMessage(`{"data": {"balance": "450", "threshold": 500, "needsRecharge": true}}`)

	stats, err := NormalizeStats(raw)
	require.NoError(t, err)
	assert.Equal(t, 450.0, stats.Balance)
	assert.Equal(t, 500.0, stats.MinimumBalance)
	assert.True(t, stats.NeedsRecharge)
}
