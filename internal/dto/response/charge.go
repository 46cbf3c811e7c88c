package response

import (
	"time"

	"fieldpro/internal/data/entity"
)

type ChargeResponse struct {
	ID          string                `json:"id"`
	Description string                `json:"description"`
	Amount      float64               `json:"amount"`
	Category    entity.ChargeCategory `json:"category"`
	Approval    entity.ChargeApproval `json:"approval"`
	CreatedAt   time.Time             `json:"created_at"`
}

type ChargeSheetResponse struct {
	BookingID string           `json:"booking_id"`
	Pending   []ChargeResponse `json:"pending"`
	Approved  []ChargeResponse `json:"approved"`
	Total     float64          `json:"total"`
}

func ChargeToResponse(c *entity.Charge) ChargeResponse {
	return ChargeResponse{
		ID:          c.ID,
		Description: c.Description,
		Amount:      c.Amount,
		Category:    c.Category,
		Approval:    c.Approval,
		CreatedAt:   c.CreatedAt,
	}
}

func ChargeSheetToResponse(cs *entity.ChargeSheet) *ChargeSheetResponse {
	resp := &ChargeSheetResponse{
		BookingID: cs.BookingID,
		Pending:   make([]ChargeResponse, len(cs.Pending)),
		Approved:  make([]ChargeResponse, len(cs.Approved)),
		Total:     cs.Total,
	}
	for i := range cs.Pending {
		resp.Pending[i] = ChargeToResponse(&cs.Pending[i])
	}
	for i := range cs.Approved {
		resp.Approved[i] = ChargeToResponse(&cs.Approved[i])
	}
	return resp
}
