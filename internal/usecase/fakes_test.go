package usecase

import (
	"context"
	"sync"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. The ticket fake applies its guarded updates
// under a lock, mirroring the store's single-row conditional update
// semantics, so the concurrency tests exercise the same at-most-once
// behavior the SQL guard provides.

type fakeRouteRepo struct {
	mu     sync.Mutex
	routes map[uuid.UUID]*entity.Route
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{routes: make(map[uuid.UUID]*entity.Route)}
}

func (f *fakeRouteRepo) Create(_ context.Context, route *entity.Route) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *route
	f.routes[route.ID] = &cp
	return nil
}

func (f *fakeRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	route, ok := f.routes[id]
	if !ok {
		return nil, nil
	}
	cp := *route
	return &cp, nil
}

func (f *fakeRouteRepo) FindByCode(_ context.Context, code string) (*entity.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, route := range f.routes {
		if route.RouteCode == code {
			cp := *route
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRouteRepo) FindAll(_ context.Context) ([]*entity.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var routes []*entity.Route
	for _, route := range f.routes {
		cp := *route
		routes = append(routes, &cp)
	}
	return routes, nil
}

func (f *fakeRouteRepo) Update(_ context.Context, route *entity.Route) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *route
	f.routes[route.ID] = &cp
	return nil
}

func (f *fakeRouteRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.routes, id)
	return nil
}

type fakeTicketRepo struct {
	mu          sync.Mutex
	tickets     map[uuid.UUID]*entity.Ticket
	activations int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*entity.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ticket
	f.tickets[ticket.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *ticket
	return &cp, nil
}

func (f *fakeTicketRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tickets []*entity.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			cp := *ticket
			tickets = append(tickets, &cp)
		}
	}
	return tickets, nil
}

func (f *fakeTicketRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) FindAll(_ context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tickets []*entity.Ticket
	for _, ticket := range f.tickets {
		if status == "" || ticket.Status == status {
			cp := *ticket
			tickets = append(tickets, &cp)
		}
	}
	return tickets, nil
}

func (f *fakeTicketRepo) Count(_ context.Context, status entity.TicketStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if status == "" || ticket.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) Activate(_ context.Context, ticketID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok || ticket.PaymentStatus == entity.PaymentStatusSuccess {
		return 0, nil
	}
	ticket.PaymentStatus = entity.PaymentStatusSuccess
	ticket.Status = entity.TicketStatusActive
	ticket.UpdatedAt = time.Now()
	f.activations++
	return 1, nil
}

func (f *fakeTicketRepo) MarkPaymentFailed(_ context.Context, ticketID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok || ticket.PaymentStatus != entity.PaymentStatusPending {
		return 0, nil
	}
	ticket.PaymentStatus = entity.PaymentStatusFailed
	ticket.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeTicketRepo) UpdateStatusGuarded(_ context.Context, ticketID uuid.UUID, to entity.TicketStatus, from []entity.TicketStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return 0, nil
	}
	for _, s := range from {
		if ticket.Status == s {
			ticket.Status = to
			ticket.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTicketRepo) ExpireOverdue(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if ticket.TravelDate.Before(before) &&
			(ticket.Status == entity.TicketStatusPending || ticket.Status == entity.TicketStatusActive) {
			ticket.Status = entity.TicketStatusExpired
			count++
		}
	}
	return count, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *payment
	f.payments = append(f.payments, &cp)
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, payment := range f.payments {
		if payment.ID == id {
			cp := *payment
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByTicketID(_ context.Context, ticketID uuid.UUID) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payments []*entity.Payment
	for _, payment := range f.payments {
		if payment.TicketID == ticketID {
			cp := *payment
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}

func (f *fakePaymentRepo) byTicket(ticketID uuid.UUID, status entity.PaymentStatus) []*entity.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payments []*entity.Payment
	for _, payment := range f.payments {
		if payment.TicketID == ticketID && payment.PaymentStatus == status {
			payments = append(payments, payment)
		}
	}
	return payments
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return profile, nil
}

type fakeRouteStopRepo struct{}

func (fakeRouteStopRepo) FindByRouteID(_ context.Context, _ uuid.UUID) ([]*entity.RouteStop, error) {
	return nil, nil
}

func (fakeRouteStopRepo) ReplaceForRoute(_ context.Context, _ uuid.UUID, _ []*entity.RouteStop) error {
	return nil
}

type testRepos struct {
	repo     *repository.Repository
	routes   *fakeRouteRepo
	tickets  *fakeTicketRepo
	payments *fakePaymentRepo
	profiles *fakeProfileRepo
}

func newTestRepos() *testRepos {
	routes := newFakeRouteRepo()
	tickets := newFakeTicketRepo()
	payments := newFakePaymentRepo()
	profiles := newFakeProfileRepo()

	return &testRepos{
		repo: &repository.Repository{
			Route:     routes,
			RouteStop: fakeRouteStopRepo{},
			Ticket:    tickets,
			Payment:   payments,
			Profile:   profiles,
		},
		routes:   routes,
		tickets:  tickets,
		payments: payments,
		profiles: profiles,
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

// stubGateway returns a scripted outcome, optionally after a short delay.
type stubGateway struct {
	err   error
	delay time.Duration
}

func (g *stubGateway) Charge(ctx context.Context, amount int64, method string) error {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.err
}
