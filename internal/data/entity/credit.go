package entity

import "time"

type TransactionType string

const (
	TransactionTypePurchase     TransactionType = "purchase"
	TransactionTypeJobDeduction TransactionType = "job_deduction"
	TransactionTypePenalty      TransactionType = "penalty"
	TransactionTypeRefund       TransactionType = "refund"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// CreditTransaction is one entry in the professional's prepaid ledger. The
// backend creates these; the engine only reads them.
type CreditTransaction struct {
	ID             string            `json:"id"`
	Amount         float64           `json:"amount"` // signed
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	BalanceAfter   float64           `json:"balance_after"`
	RelatedBooking string            `json:"related_booking,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// CreditStats is the backend-computed ledger summary. NeedsRecharge gates
// new job assignment upstream but never cancels in-flight jobs.
type CreditStats struct {
	Balance        float64 `json:"balance"`
	MinimumBalance float64 `json:"minimum_balance"`
	NeedsRecharge  bool    `json:"needs_recharge"`
	TotalPurchased float64 `json:"total_purchased"`
	TotalSpent     float64 `json:"total_spent"`
}

// ReconcileTransactions replays completed transactions in creation order and
// reports whether the running balance lines up with each recorded
// BalanceAfter. Pending and failed entries do not move the balance.
func ReconcileTransactions(txs []CreditTransaction) bool {
	for i := range txs {
		if txs[i].Status != TransactionStatusCompleted {
			continue
		}
		if i+1 < len(txs) {
			// entries are newest-first on the wire; compare against the
			// previous completed entry when one exists
			for j := i + 1; j < len(txs); j++ {
				if txs[j].Status != TransactionStatusCompleted {
					continue
				}
				want := txs[j].BalanceAfter + txs[i].Amount
				if diff := want - txs[i].BalanceAfter; diff > 0.01 || diff < -0.01 {
					return false
				}
				break
			}
		}
	}
	return true
}
