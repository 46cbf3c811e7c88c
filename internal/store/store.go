// Package store holds the engine's ephemeral snapshots of backend state.
// Everything here is reconstructable by re-fetching; nothing is persisted.
package store

import (
	"sync"

	"fieldpro/internal/data/entity"
)

// Change describes one snapshot mutation delivered to subscribers.
type Change struct {
	Kind      string // "booking", "charges", "session", "balance"
	BookingID string
}

// Store is the injected snapshot container. The engine depends on this
// interface, never on a concrete cache, so tests inject the in-memory
// implementation directly.
type Store interface {
	Booking(bookingID string) (*entity.Booking, bool)
	SetBooking(b *entity.Booking)
	Bookings() []*entity.Booking

	Charges(bookingID string) (*entity.ChargeSheet, bool)
	SetCharges(cs *entity.ChargeSheet)

	Session(bookingID string) (*entity.PaymentSession, bool)
	SetSession(s *entity.PaymentSession)
	DeleteSession(bookingID string)

	Balance() (float64, bool)
	SetBalance(balance float64)
	InvalidateBalance()

	Subscribe(fn func(Change)) (unsubscribe func())
}

type memoryStore struct {
	mu         sync.RWMutex
	bookings   map[string]entity.Booking
	charges    map[string]entity.ChargeSheet
	sessions   map[string]entity.PaymentSession
	balance    float64
	balanceSet bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

func NewMemoryStore() Store {
	return &memoryStore{
		bookings: make(map[string]entity.Booking),
		charges:  make(map[string]entity.ChargeSheet),
		sessions: make(map[string]entity.PaymentSession),
		subs:     make(map[int]func(Change)),
	}
}

func (m *memoryStore) Booking(bookingID string) (*entity.Booking, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, false
	}
	snap := b
	return &snap, true
}

func (m *memoryStore) SetBooking(b *entity.Booking) {
	if b == nil || b.ID == "" {
		return
	}
	m.mu.Lock()
	m.bookings[b.ID] = *b
	m.mu.Unlock()
	m.notify(Change{Kind: "booking", BookingID: b.ID})
}

func (m *memoryStore) Bookings() []*entity.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entity.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		snap := b
		out = append(out, &snap)
	}
	return out
}

func (m *memoryStore) Charges(bookingID string) (*entity.ChargeSheet, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cs, ok := m.charges[bookingID]
	if !ok {
		return nil, false
	}
	snap := cs
	snap.Pending = append([]entity.Charge(nil), cs.Pending...)
	snap.Approved = append([]entity.Charge(nil), cs.Approved...)
	return &snap, true
}

func (m *memoryStore) SetCharges(cs *entity.ChargeSheet) {
	if cs == nil || cs.BookingID == "" {
		return
	}
	stored := *cs
	stored.Pending = append([]entity.Charge(nil), cs.Pending...)
	stored.Approved = append([]entity.Charge(nil), cs.Approved...)
	m.mu.Lock()
	m.charges[cs.BookingID] = stored
	m.mu.Unlock()
	m.notify(Change{Kind: "charges", BookingID: cs.BookingID})
}

func (m *memoryStore) Session(bookingID string) (*entity.PaymentSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[bookingID]
	if !ok {
		return nil, false
	}
	snap := s
	return &snap, true
}

func (m *memoryStore) SetSession(s *entity.PaymentSession) {
	if s == nil || s.BookingID == "" {
		return
	}
	m.mu.Lock()
	m.sessions[s.BookingID] = *s
	m.mu.Unlock()
	m.notify(Change{Kind: "session", BookingID: s.BookingID})
}

func (m *memoryStore) DeleteSession(bookingID string) {
	m.mu.Lock()
	delete(m.sessions, bookingID)
	m.mu.Unlock()
	m.notify(Change{Kind: "session", BookingID: bookingID})
}

func (m *memoryStore) Balance() (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance, m.balanceSet
}

func (m *memoryStore) SetBalance(balance float64) {
	m.mu.Lock()
	m.balance = balance
	m.balanceSet = true
	m.mu.Unlock()
	m.notify(Change{Kind: "balance"})
}

func (m *memoryStore) InvalidateBalance() {
	m.mu.Lock()
	m.balance = 0
	m.balanceSet = false
	m.mu.Unlock()
	m.notify(Change{Kind: "balance"})
}

func (m *memoryStore) Subscribe(fn func(Change)) func() {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *memoryStore) notify(c Change) {
	m.subMu.Lock()
	fns := make([]func(Change), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
