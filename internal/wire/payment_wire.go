package wire

import (
	"fieldpro/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Route("/api/bookings/{id}/payment-session", func(r chi.Router) {
		// POST /api/bookings/{id}/payment-session - start a QR session
		r.Post("/", paymentHandler.GenerateSession)

		// GET /api/bookings/{id}/payment-session - status + time left
		r.Get("/", paymentHandler.GetSession)

		// POST /api/bookings/{id}/payment-session/regenerate - from expired only
		r.Post("/regenerate", paymentHandler.RegenerateSession)

		// DELETE /api/bookings/{id}/payment-session - view dismissed
		r.Delete("/", paymentHandler.DismissSession)
	})
}
