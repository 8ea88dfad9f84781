package repository

import (
	"transgo-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Route     RouteRepository
	RouteStop RouteStopRepository
	Ticket    TicketRepository
	Payment   PaymentRepository
	Profile   ProfileRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Route:     NewRouteRepository(db, log),
		RouteStop: NewRouteStopRepository(db, log),
		Ticket:    NewTicketRepository(db, log),
		Payment:   NewPaymentRepository(db, log),
		Profile:   NewProfileRepository(db, log),
	}
}
