package wire

import (
	"transgo-ticketing/internal/adaptor"
	"transgo-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(log))

		// POST /api/booking - Create new pending ticket
		r.Post("/api/booking", bookingHandler.CreateBooking)

		// GET /api/user/tickets - View own ticket history
		r.Get("/api/user/tickets", bookingHandler.GetUserTickets)

		// GET /api/tickets/{id} - View own ticket detail
		r.Get("/api/tickets/{id}", bookingHandler.GetTicketByID)
	})
}
