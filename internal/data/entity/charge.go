package entity

import "time"

type ChargeCategory string

const (
	ChargeCategoryMaterials ChargeCategory = "materials"
	ChargeCategoryExtraWork ChargeCategory = "extra_work"
	ChargeCategoryTransport ChargeCategory = "transport"
	ChargeCategoryOther     ChargeCategory = "other"
)

func (c ChargeCategory) Valid() bool {
	switch c {
	case ChargeCategoryMaterials, ChargeCategoryExtraWork, ChargeCategoryTransport, ChargeCategoryOther:
		return true
	}
	return false
}

type ChargeApproval string

const (
	ChargeApprovalPending  ChargeApproval = "pending"
	ChargeApprovalApproved ChargeApproval = "approved"
	ChargeApprovalRejected ChargeApproval = "rejected"
)

// Charge is an additional line-item cost raised during a job. Approval is
// decided by the customer out-of-band; amount is immutable once approved.
type Charge struct {
	ID          string         `json:"id"`
	BookingID   string         `json:"booking_id"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Category    ChargeCategory `json:"category"`
	Approval    ChargeApproval `json:"approval"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ChargeSheet is the per-booking charge snapshot returned by the backend.
// Total sums approved amounts only.
type ChargeSheet struct {
	BookingID string
	Pending   []Charge
	Approved  []Charge
	Total     float64
}

func (cs *ChargeSheet) Count() int {
	if cs == nil {
		return 0
	}
	return len(cs.Pending) + len(cs.Approved)
}

// Find returns a charge by ID from either bucket.
func (cs *ChargeSheet) Find(chargeID string) (*Charge, bool) {
	if cs == nil {
		return nil, false
	}
	for i := range cs.Pending {
		if cs.Pending[i].ID == chargeID {
			return &cs.Pending[i], true
		}
	}
	for i := range cs.Approved {
		if cs.Approved[i].ID == chargeID {
			return &cs.Approved[i], true
		}
	}
	return nil, false
}
