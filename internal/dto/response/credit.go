package response

import (
	"time"

	"fieldpro/internal/data/entity"
)

type CreditBalanceResponse struct {
	Balance float64 `json:"balance"`
}

type CreditStatsResponse struct {
	Balance        float64 `json:"balance"`
	MinimumBalance float64 `json:"minimum_balance"`
	NeedsRecharge  bool    `json:"needs_recharge"`
	TotalPurchased float64 `json:"total_purchased"`
	TotalSpent     float64 `json:"total_spent"`
}

type CreditTransactionResponse struct {
	ID             string                   `json:"id"`
	Amount         float64                  `json:"amount"`
	Type           entity.TransactionType   `json:"type"`
	Status         entity.TransactionStatus `json:"status"`
	BalanceAfter   float64                  `json:"balance_after"`
	RelatedBooking string                   `json:"related_booking,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

type PurchaseIntentResponse struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          float64 `json:"amount"`
}

func StatsToResponse(s *entity.CreditStats) *CreditStatsResponse {
	return &CreditStatsResponse{
		Balance:        s.Balance,
		MinimumBalance: s.MinimumBalance,
		NeedsRecharge:  s.NeedsRecharge,
		TotalPurchased: s.TotalPurchased,
		TotalSpent:     s.TotalSpent,
	}
}

func TransactionToResponse(t *entity.CreditTransaction) CreditTransactionResponse {
	return CreditTransactionResponse{
		ID:             t.ID,
		Amount:         t.Amount,
		Type:           t.Type,
		Status:         t.Status,
		BalanceAfter:   t.BalanceAfter,
		RelatedBooking: t.RelatedBooking,
		CreatedAt:      t.CreatedAt,
	}
}
