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

// TicketHandler exposes the administrative lifecycle operations.
type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// Transition handles PUT /api/admin/tickets/{id}/status (admin only).
// Body: {"event": "validate" | "cancel" | "expire"}
func (h *TicketHandler) Transition(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	var req request.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.Transition(r.Context(), ticketID, usecase.TicketEvent(req.Event))
	if err != nil {
		respondServiceError(w, h.log, err, "transition ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// ExpireOverdue handles POST /api/admin/tickets/expire-overdue (admin only)
func (h *TicketHandler) ExpireOverdue(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ExpireOverdue(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "expire overdue tickets")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int64{"expired": count})
}

// ListTickets handles GET /api/admin/tickets (admin only)
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.ListTickets(r.Context(), query.Get("status"), req)
	if err != nil {
		respondServiceError(w, h.log, err, "list tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}
