package wire

import (
	"transgo-ticketing/internal/adaptor"
	"transgo-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/tickets", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Auth(log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/tickets - List all tickets (filter by status)
		r.Get("/", ticketHandler.ListTickets)

		// GET /api/admin/tickets/{id} - Ticket detail with payment history
		r.Get("/{id}", bookingHandler.GetTicketDetail)

		// PUT /api/admin/tickets/{id}/status - Apply lifecycle event
		r.Put("/{id}/status", ticketHandler.Transition)

		// POST /api/admin/tickets/expire-overdue - Expire past travel dates
		r.Post("/expire-overdue", ticketHandler.ExpireOverdue)
	})
}
