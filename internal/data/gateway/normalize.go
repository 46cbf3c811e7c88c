package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldpro/internal/data/entity"
)

// The backend emits several shapes for the same resource: fields optionally
// nested under "data", amounts as numbers or strings, charge lists flat or
// pre-split, timestamps as RFC3339 or epoch seconds. Everything funnels
// through one normalization function per entity so the state machine never
// branches on payload shape.

// unwrapData strips a {"data": ...} wrapper if present, recursively.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}
	if len(probe.Data) == 0 || string(probe.Data) == "null" {
		return raw
	}
	return unwrapData(probe.Data)
}

// flexAmount accepts a JSON number or a quoted numeric string.
type flexAmount float64

func (f *flexAmount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*f = flexAmount(v)
	return nil
}

// flexTime accepts RFC3339 strings or epoch seconds.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = flexTime(time.Time{})
		return nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexTime(time.Unix(secs, 0))
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*f = flexTime(t)
	return nil
}

func (f flexTime) Time() time.Time { return time.Time(f) }

// ---------- Booking ----------

type wireBooking struct {
	ID                string     `json:"id"`
	BookingID         string     `json:"bookingId"`
	BookingNumber     string     `json:"bookingNumber"`
	Number            string     `json:"number"`
	Status            string     `json:"status"`
	PaymentMethod     string     `json:"paymentMethod"`
	ServiceName       string     `json:"serviceName"`
	CustomerName      string     `json:"customerName"`
	Total             flexAmount `json:"total"`
	AdditionalCharges flexAmount `json:"additionalChargesTotal"`
	FinalTotal        flexAmount `json:"finalTotal"`
	CreditDeducted    flexAmount `json:"creditDeducted"`
	OnlinePaid        bool       `json:"onlinePaid"`
	CreatedAt         flexTime   `json:"createdAt"`
	UpdatedAt         flexTime   `json:"updatedAt"`
}

func (w *wireBooking) toEntity() *entity.Booking {
	id := w.ID
	if id == "" {
		id = w.BookingID
	}
	number := w.BookingNumber
	if number == "" {
		number = w.Number
	}

	b := &entity.Booking{
		ID:                     id,
		BookingNumber:          number,
		Status:                 entity.BookingStatus(w.Status),
		PaymentMethod:          entity.PaymentMethod(w.PaymentMethod),
		ServiceName:            w.ServiceName,
		CustomerName:           w.CustomerName,
		Total:                  float64(w.Total),
		AdditionalChargesTotal: float64(w.AdditionalCharges),
		FinalTotal:             float64(w.FinalTotal),
		CreditDeducted:         float64(w.CreditDeducted),
		OnlinePaid:             w.OnlinePaid,
		CreatedAt:              w.CreatedAt.Time(),
		UpdatedAt:              w.UpdatedAt.Time(),
	}

	// finalTotal must always equal total + approved charges; some payloads
	// omit it entirely
	if b.FinalTotal == 0 {
		b.FinalTotal = b.Total + b.AdditionalChargesTotal
	}

	return b
}

// NormalizeBooking maps any accepted booking wire shape into the canonical
// struct.
func NormalizeBooking(raw json.RawMessage) (*entity.Booking, error) {
	var w wireBooking
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, fmt.Errorf("decode booking payload: %w", err)
	}
	b := w.toEntity()
	if b.ID == "" {
		return nil, fmt.Errorf("booking payload missing id")
	}
	return b, nil
}

// NormalizeBookingList maps a booking list payload.
func NormalizeBookingList(raw json.RawMessage) ([]*entity.Booking, error) {
	payload := unwrapData(raw)

	var wires []wireBooking
	if err := json.Unmarshal(payload, &wires); err != nil {
		// some variants wrap the list one level deeper
		var nested struct {
			Bookings []wireBooking `json:"bookings"`
		}
		if err2 := json.Unmarshal(payload, &nested); err2 != nil {
			return nil, fmt.Errorf("decode booking list payload: %w", err)
		}
		wires = nested.Bookings
	}

	bookings := make([]*entity.Booking, 0, len(wires))
	for i := range wires {
		b := wires[i].toEntity()
		if b.ID == "" {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ---------- Charges ----------

type wireCharge struct {
	ID          string     `json:"id"`
	ChargeID    string     `json:"chargeId"`
	BookingID   string     `json:"bookingId"`
	Description string     `json:"description"`
	Amount      flexAmount `json:"amount"`
	Category    string     `json:"category"`
	Approved    *bool      `json:"approved"` // tri-state: null = pending
	Status      string     `json:"status"`   // newer payloads use a string instead
	CreatedAt   flexTime   `json:"createdAt"`
}

func (w *wireCharge) toEntity(bookingID string) entity.Charge {
	id := w.ID
	if id == "" {
		id = w.ChargeID
	}
	if w.BookingID != "" {
		bookingID = w.BookingID
	}

	approval := entity.ChargeApprovalPending
	switch {
	case w.Status != "":
		approval = entity.ChargeApproval(w.Status)
	case w.Approved != nil && *w.Approved:
		approval = entity.ChargeApprovalApproved
	case w.Approved != nil:
		approval = entity.ChargeApprovalRejected
	}

	category := entity.ChargeCategory(w.Category)
	if !category.Valid() {
		category = entity.ChargeCategoryOther
	}

	return entity.Charge{
		ID:          id,
		BookingID:   bookingID,
		Description: w.Description,
		Amount:      float64(w.Amount),
		Category:    category,
		Approval:    approval,
		CreatedAt:   w.CreatedAt.Time(),
	}
}

// NormalizeCharges maps a charge payload into a ChargeSheet. Accepts both the
// pre-split {pending, approved, total} shape and a flat list of charges.
// Total is always recomputed from approved amounts.
func NormalizeCharges(bookingID string, raw json.RawMessage) (*entity.ChargeSheet, error) {
	payload := unwrapData(raw)

	sheet := &entity.ChargeSheet{BookingID: bookingID}

	var split struct {
		Pending  []wireCharge `json:"pending"`
		Approved []wireCharge `json:"approved"`
	}
	if err := json.Unmarshal(payload, &split); err == nil && (split.Pending != nil || split.Approved != nil) {
		for i := range split.Pending {
			c := split.Pending[i].toEntity(bookingID)
			c.Approval = entity.ChargeApprovalPending
			sheet.Pending = append(sheet.Pending, c)
		}
		for i := range split.Approved {
			c := split.Approved[i].toEntity(bookingID)
			c.Approval = entity.ChargeApprovalApproved
			sheet.Approved = append(sheet.Approved, c)
		}
	} else {
		var flat []wireCharge
		if err := json.Unmarshal(payload, &flat); err != nil {
			return nil, fmt.Errorf("decode charges payload: %w", err)
		}
		for i := range flat {
			c := flat[i].toEntity(bookingID)
			switch c.Approval {
			case entity.ChargeApprovalApproved:
				sheet.Approved = append(sheet.Approved, c)
			case entity.ChargeApprovalRejected:
				// rejected charges stay out of both buckets; the
				// professional removes them manually
			default:
				sheet.Pending = append(sheet.Pending, c)
			}
		}
	}

	for i := range sheet.Approved {
		sheet.Total += sheet.Approved[i].Amount
	}

	return sheet, nil
}

// ---------- Payment session ----------

type wireSession struct {
	PaymentID  string     `json:"paymentId"`
	ID         string     `json:"id"`
	QRCodeID   string     `json:"qrCodeId"`
	BookingID  string     `json:"bookingId"`
	PaymentURL string     `json:"paymentUrl"`
	Amount     flexAmount `json:"amount"`
	Status     string     `json:"status"`
	ExpiresAt  flexTime   `json:"expiresAt"`
	ExpiresIn  int64      `json:"expiresIn"` // seconds, older variant
}

// NormalizeSession maps a session descriptor. The now argument anchors
// relative expiry (expiresIn) payloads.
func NormalizeSession(bookingID string, raw json.RawMessage, now time.Time) (*entity.PaymentSession, error) {
	var w wireSession
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, fmt.Errorf("decode payment session payload: %w", err)
	}

	paymentID := w.PaymentID
	if paymentID == "" {
		paymentID = w.ID
	}
	if paymentID == "" {
		return nil, fmt.Errorf("payment session payload missing paymentId")
	}
	if w.BookingID != "" {
		bookingID = w.BookingID
	}

	expiresAt := w.ExpiresAt.Time()
	if expiresAt.IsZero() && w.ExpiresIn > 0 {
		expiresAt = now.Add(time.Duration(w.ExpiresIn) * time.Second)
	}

	status := entity.SessionStatus(w.Status)
	if status == "" {
		status = entity.SessionStatusPending
	}

	return &entity.PaymentSession{
		PaymentID:  paymentID,
		QRCodeID:   w.QRCodeID,
		BookingID:  bookingID,
		PaymentURL: w.PaymentURL,
		Amount:     float64(w.Amount),
		Status:     status,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}, nil
}

// ---------- Credits ----------

type wireTransaction struct {
	ID             string     `json:"id"`
	Amount         flexAmount `json:"amount"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	BalanceAfter   flexAmount `json:"balanceAfter"`
	RelatedBooking string     `json:"relatedBooking"`
	BookingID      string     `json:"bookingId"`
	CreatedAt      flexTime   `json:"createdAt"`
}

// NormalizeTransactions maps a credit transaction list payload.
func NormalizeTransactions(raw json.RawMessage) ([]entity.CreditTransaction, error) {
	payload := unwrapData(raw)

	var wires []wireTransaction
	if err := json.Unmarshal(payload, &wires); err != nil {
		var nested struct {
			Transactions []wireTransaction `json:"transactions"`
		}
		if err2 := json.Unmarshal(payload, &nested); err2 != nil {
			return nil, fmt.Errorf("decode transactions payload: %w", err)
		}
		wires = nested.Transactions
	}

	txs := make([]entity.CreditTransaction, 0, len(wires))
	for _, w := range wires {
		related := w.RelatedBooking
		if related == "" {
			related = w.BookingID
		}
		txs = append(txs, entity.CreditTransaction{
			ID:             w.ID,
			Amount:         float64(w.Amount),
			Type:           entity.TransactionType(w.Type),
			Status:         entity.TransactionStatus(w.Status),
			BalanceAfter:   float64(w.BalanceAfter),
			RelatedBooking: related,
			CreatedAt:      w.CreatedAt.Time(),
		})
	}
	return txs, nil
}

// NormalizeStats maps a credit stats payload.
func NormalizeStats(raw json.RawMessage) (*entity.CreditStats, error) {
	var w struct {
		Balance        flexAmount `json:"balance"`
		MinimumBalance flexAmount `json:"minimumBalance"`
		Threshold      flexAmount `json:"threshold"`
		NeedsRecharge  bool       `json:"needsRecharge"`
		TotalPurchased flexAmount `json:"totalPurchased"`
		TotalSpent     flexAmount `json:"totalSpent"`
	}
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, fmt.Errorf("decode credit stats payload: %w", err)
	}

	minimum := float64(w.MinimumBalance)
	if minimum == 0 {
		minimum = float64(w.Threshold)
	}

	return &entity.CreditStats{
		Balance:        float64(w.Balance),
		MinimumBalance: minimum,
		NeedsRecharge:  w.NeedsRecharge,
		TotalPurchased: float64(w.TotalPurchased),
		TotalSpent:     float64(w.TotalSpent),
	}, nil
}
