package usecase

import (
	"transgo-ticketing/internal/data/repository"
	"transgo-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Route   RouteService
	Booking BookingService
	Payment PaymentService
	Ticket  TicketService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	gateway := NewSimulatedGateway(config.Gateway)

	return &Service{
		Route:   NewRouteService(repo, log),
		Booking: NewBookingService(repo, log),
		Payment: NewPaymentService(repo, gateway, config.Gateway.Timeout, log),
		Ticket:  NewTicketService(repo, log),
	}
}
