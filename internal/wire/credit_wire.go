package wire

import (
	"fieldpro/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCredit(r chi.Router, creditHandler *adaptor.CreditHandler) {
	r.Route("/api/credits", func(r chi.Router) {
		// Ledger reads; balance is a read-through cache of the backend
		r.Get("/balance", creditHandler.GetBalance)
		r.Get("/stats", creditHandler.GetStats)
		r.Get("/transactions", creditHandler.GetTransactions)

		// Two-phase purchase
		r.Post("/purchase-intent", creditHandler.CreatePurchaseIntent)
		r.Post("/confirm-purchase", creditHandler.ConfirmPurchase)
	})
}
