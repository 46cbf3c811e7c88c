package wire

import (
	"fieldpro/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCharge(r chi.Router, chargeHandler *adaptor.ChargeHandler) {
	r.Route("/api/bookings/{id}/charges", func(r chi.Router) {
		// POST /api/bookings/{id}/charges - bulk add, pending until approved
		r.Post("/", chargeHandler.AddCharges)

		// GET /api/bookings/{id}/charges - {pending, approved, total}
		r.Get("/", chargeHandler.GetCharges)

		// DELETE /api/bookings/{id}/charges/{chargeId} - pending only
		r.Delete("/{chargeId}", chargeHandler.RemoveCharge)
	})
}
