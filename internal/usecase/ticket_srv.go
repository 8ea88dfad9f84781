package usecase

import (
	"context"
	"fmt"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/data/repository"
	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketEvent is an administrative lifecycle event. Activation is not an
// event here: only a successful settlement may activate a ticket, and that
// path lives in the payment service.
type TicketEvent string

const (
	EventValidate TicketEvent = "validate"
	EventCancel   TicketEvent = "cancel"
	EventExpire   TicketEvent = "expire"
)

type transitionRule struct {
	To   entity.TicketStatus
	From []entity.TicketStatus
}

// transitions is the full table of legal administrative transitions. Any
// status/event pair not listed here is rejected; used, expired and cancelled
// are terminal.
var transitions = map[TicketEvent]transitionRule{
	EventValidate: {
		To:   entity.TicketStatusUsed,
		From: []entity.TicketStatus{entity.TicketStatusActive},
	},
	EventCancel: {
		To:   entity.TicketStatusCancelled,
		From: []entity.TicketStatus{entity.TicketStatusPending, entity.TicketStatusActive},
	},
	EventExpire: {
		To:   entity.TicketStatusExpired,
		From: []entity.TicketStatus{entity.TicketStatusPending, entity.TicketStatusActive},
	},
}

type TicketService interface {
	Transition(ctx context.Context, ticketID string, event TicketEvent) (*response.TicketResponse, error)
	ExpireOverdue(ctx context.Context) (int64, error)
	ListTickets(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

// Transition applies an administrative lifecycle event. The status check and
// the write are one conditional update, so two concurrent transitions for the
// same ticket cannot both land.
func (s *ticketService) Transition(ctx context.Context, ticketID string, event TicketEvent) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, err)
	}

	rule, ok := transitions[event]
	if !ok {
		return nil, &IllegalTransitionError{Event: event}
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}

	if !statusIn(ticket.Status, rule.From) {
		return nil, &IllegalTransitionError{Status: ticket.Status, Event: event}
	}

	rows, err := s.repo.Ticket.UpdateStatusGuarded(ctx, id, rule.To, rule.From)
	if err != nil {
		return nil, fmt.Errorf("transition ticket %s: %w", ticketID, err)
	}

	if rows == 0 {
		// The pre-check passed but the guard did not land: a concurrent
		// writer moved the ticket first. Report against the live status.
		current, lookupErr := s.repo.Ticket.FindByID(ctx, id)
		if lookupErr != nil {
			return nil, fmt.Errorf("transition ticket %s: %w", ticketID, lookupErr)
		}
		if current == nil {
			return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
		}
		return nil, &IllegalTransitionError{Status: current.Status, Event: event}
	}

	s.log.Info("Ticket transitioned",
		zap.String("ticket_id", ticketID),
		zap.String("event", string(event)),
		zap.String("from", string(ticket.Status)),
		zap.String("to", string(rule.To)),
	)

	ticket.Status = rule.To
	route, _ := s.repo.Route.FindByID(ctx, ticket.RouteID)

	resp := response.TicketToResponse(ticket, route)
	return &resp, nil
}

// ExpireOverdue bulk-expires pending and active tickets whose travel date has
// passed. Returns the number of tickets expired.
func (s *ticketService) ExpireOverdue(ctx context.Context) (int64, error) {
	today := time.Now().Truncate(24 * time.Hour)

	count, err := s.repo.Ticket.ExpireOverdue(ctx, today)
	if err != nil {
		s.log.Error("Failed to expire overdue tickets", zap.Error(err))
		return 0, fmt.Errorf("expire overdue tickets: %w", err)
	}

	if count > 0 {
		s.log.Info("Overdue tickets expired", zap.Int64("count", count))
	}

	return count, nil
}

func (s *ticketService) ListTickets(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	filter := entity.TicketStatus(status)
	if status != "" && !validStatusFilter(filter) {
		return nil, &ValidationError{Fields: map[string]string{"status": "Must be one of: pending, active, used, expired, cancelled"}}
	}

	tickets, err := s.repo.Ticket.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list tickets", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	total, err := s.repo.Ticket.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count tickets", zap.Error(err))
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		route, _ := s.repo.Route.FindByID(ctx, ticket.RouteID)
		ticketResponses[i] = response.TicketToResponse(ticket, route)
	}

	return response.NewPaginatedResponse(ticketResponses, req.Page, req.PerPage, total), nil
}

func statusIn(status entity.TicketStatus, set []entity.TicketStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func validStatusFilter(status entity.TicketStatus) bool {
	switch status {
	case entity.TicketStatusPending, entity.TicketStatusActive, entity.TicketStatusUsed,
		entity.TicketStatusExpired, entity.TicketStatusCancelled:
		return true
	}
	return false
}
