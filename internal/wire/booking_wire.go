package wire

import (
	"fieldpro/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// GET /api/bookings - assigned bookings
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - booking detail with charges and session
		r.Get("/{id}", bookingHandler.GetBooking)

		// POST /api/bookings/{id}/start - confirmed -> in_progress, OTP gated
		r.Post("/{id}/start", bookingHandler.StartJob)

		// POST /api/bookings/{id}/complete - in_progress -> completed
		r.Post("/{id}/complete", bookingHandler.CompleteJob)

		// POST /api/bookings/{id}/cancel - confirmed -> cancellation_pending
		r.Post("/{id}/cancel", bookingHandler.RequestCancellation)
	})
}
