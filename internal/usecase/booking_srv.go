package usecase

import (
	"context"
	"fmt"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/data/repository"
	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/dto/response"
	"transgo-ticketing/pkg/qrtoken"
	"transgo-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.TicketResponse, error)
	GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetUserTicketByID(ctx context.Context, userID string, ticketID string) (*response.TicketDetailResponse, error)
	GetTicketByID(ctx context.Context, ticketID string) (*response.TicketDetailResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBooking inserts a new pending ticket. The fare is captured here as
// route fare x passenger count and is never recomputed afterwards. No payment
// row is created and the ticket is never activated from this path.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.TicketResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", req.RouteID, err)
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"TravelDate": "Must be a valid date (YYYY-MM-DD)"}}
	}

	// Travel date must be today or later
	today := time.Now().Truncate(24 * time.Hour)
	if travelDate.Before(today) {
		return nil, &ValidationError{Fields: map[string]string{"TravelDate": "Cannot book for a past date"}}
	}

	// Validate route exists
	route, err := s.repo.Route.FindByID(ctx, routeID)
	if err != nil {
		s.log.Error("Failed to look up route", zap.Error(err), zap.String("route_id", req.RouteID))
		return nil, fmt.Errorf("look up route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", req.RouteID, ErrRouteNotFound)
	}

	// Fare captured at booking time
	totalFare := route.Fare * int64(req.PassengerCount)

	now := time.Now()
	ticketID := utils.GenerateUUID()

	qrCode := qrtoken.Encode(qrtoken.Payload{
		TicketID:       ticketID,
		RouteID:        routeID,
		UserID:         userUUID,
		TravelDate:     travelDate,
		PassengerCount: req.PassengerCount,
		CreatedAt:      now,
	})

	ticket := &entity.Ticket{
		Base: entity.Base{
			ID:        ticketID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		RouteID:        routeID,
		UserID:         userUUID,
		StartPoint:     req.StartPoint,
		EndPoint:       req.EndPoint,
		PassengerCount: req.PassengerCount,
		TravelDate:     travelDate,
		TotalFare:      totalFare,
		QRCode:         qrCode,
		Status:         entity.TicketStatusPending,
		PaymentStatus:  entity.PaymentStatusPending,
	}

	// Single insert; on store failure the caller retries the whole booking
	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		s.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("route_id", req.RouteID),
		)
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket booked",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("route_code", route.RouteCode),
		zap.String("user_id", userID),
		zap.Int("passenger_count", req.PassengerCount),
		zap.Int64("total_fare", totalFare),
	)

	resp := response.TicketToResponse(ticket, route)
	return &resp, nil
}

func (s *bookingService) GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	tickets, err := s.repo.Ticket.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user tickets",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user tickets: %w", err)
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user tickets", zap.Error(err))
		return nil, fmt.Errorf("count user tickets: %w", err)
	}

	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		route, _ := s.repo.Route.FindByID(ctx, ticket.RouteID)
		ticketResponses[i] = response.TicketToResponse(ticket, route)
	}

	return response.NewPaginatedResponse(ticketResponses, req.Page, req.PerPage, total), nil
}

// GetUserTicketByID is the customer-facing detail lookup; the ticket must
// belong to the requesting user.
func (s *bookingService) GetUserTicketByID(ctx context.Context, userID string, ticketID string) (*response.TicketDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	detail, ticket, err := s.ticketDetail(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != userUUID {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrNotTicketOwner)
	}

	return detail, nil
}

// GetTicketByID is the admin detail lookup: ticket, passenger profile, and
// full payment history.
func (s *bookingService) GetTicketByID(ctx context.Context, ticketID string) (*response.TicketDetailResponse, error) {
	detail, _, err := s.ticketDetail(ctx, ticketID)
	return detail, err
}

func (s *bookingService) ticketDetail(ctx context.Context, ticketID string) (*response.TicketDetailResponse, *entity.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, err)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, nil, fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}

	route, _ := s.repo.Route.FindByID(ctx, ticket.RouteID)

	var passenger response.PassengerInfo
	profile, _ := s.repo.Profile.FindByUserID(ctx, ticket.UserID)
	if profile != nil {
		passenger.FullName = profile.FullName
		passenger.Phone = profile.Phone
	}

	payments, err := s.repo.Payment.FindByTicketID(ctx, ticket.ID)
	if err != nil {
		s.log.Error("Failed to get ticket payments",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return nil, nil, fmt.Errorf("get ticket payments: %w", err)
	}

	paymentResponses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		paymentResponses[i] = response.PaymentToResponse(payment)
	}

	return &response.TicketDetailResponse{
		TicketResponse: response.TicketToResponse(ticket, route),
		Passenger:      passenger,
		Payments:       paymentResponses,
	}, ticket, nil
}
