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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/booking (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", ticket)
}

// GetUserTickets handles GET /api/user/tickets (protected)
func (h *BookingHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.GetUserTickets(r.Context(), userID.String(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetTicketByID handles GET /api/tickets/{id} (protected, owner only)
func (h *BookingHandler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
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

	ticket, err := h.service.GetUserTicketByID(r.Context(), userID.String(), ticketID)
	if err != nil {
		respondServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// ==================== ADMIN METHODS ====================

// GetTicketDetail handles GET /api/admin/tickets/{id} (admin only): ticket,
// passenger profile and full payment history.
func (h *BookingHandler) GetTicketDetail(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetTicketByID(r.Context(), ticketID)
	if err != nil {
		respondServiceError(w, h.log, err, "get ticket detail")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}
