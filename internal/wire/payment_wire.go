package wire

import (
	"transgo-ticketing/internal/adaptor"
	"transgo-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(log))

		// POST /api/pay - Settle payment for a pending ticket
		r.Post("/api/pay", paymentHandler.Settle)

		// GET /api/tickets/{id}/payments - Settlement attempt history
		r.Get("/api/tickets/{id}/payments", paymentHandler.GetPaymentHistory)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/payment-methods - List available payment methods
	r.Get("/api/payment-methods", paymentHandler.GetPaymentMethods)
}
