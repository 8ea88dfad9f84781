package adaptor

import (
	"encoding/json"
	"net/http"

	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/usecase"
	"transgo-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Settle handles POST /api/pay (protected). A declined payment is a 402 with
// a user-facing message; retrying is always safe.
func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Settle(r.Context(), userID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "settle payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetPaymentHistory handles GET /api/tickets/{id}/payments (protected, owner only)
func (h *PaymentHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	payments, err := h.service.GetPaymentHistory(r.Context(), userID.String(), ticketID)
	if err != nil {
		respondServiceError(w, h.log, err, "get payment history")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetPaymentMethods handles GET /api/payment-methods (public)
func (h *PaymentHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.PaymentMethods())
}
