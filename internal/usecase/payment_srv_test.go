package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/pkg/utils"

	"github.com/google/uuid"
)

func seedRoute(repos *testRepos, fare int64) *entity.Route {
	route := &entity.Route{
		BaseSimple: entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now()},
		RouteCode:  "T01",
		Name:       "Terminal - Pasar",
		StartPoint: "Terminal",
		EndPoint:   "Pasar",
		Fare:       fare,
	}
	repos.routes.Create(context.Background(), route)
	return route
}

func seedTicket(repos *testRepos, route *entity.Route, userID uuid.UUID, totalFare int64) *entity.Ticket {
	now := time.Now()
	ticket := &entity.Ticket{
		Base:           entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		RouteID:        route.ID,
		UserID:         userID,
		StartPoint:     route.StartPoint,
		EndPoint:       route.EndPoint,
		PassengerCount: 2,
		TravelDate:     now.Add(48 * time.Hour),
		TotalFare:      totalFare,
		Status:         entity.TicketStatusPending,
		PaymentStatus:  entity.PaymentStatusPending,
	}
	repos.tickets.Create(context.Background(), ticket)
	return ticket
}

func TestSettleSuccess(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	resp, err := svc.Settle(context.Background(), userID.String(), &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	})
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected settlement success")
	}
	if resp.Payment == nil {
		t.Fatal("expected payment in response")
	}
	if !strings.HasPrefix(resp.Payment.TransactionID, "TXN-") ||
		strings.HasPrefix(resp.Payment.TransactionID, "TXN-FAIL-") {
		t.Errorf("unexpected transaction ID %q", resp.Payment.TransactionID)
	}
	if resp.Payment.PaidAt == nil {
		t.Error("expected paid_at on successful payment")
	}

	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusActive {
		t.Errorf("ticket status = %s, want active", got.Status)
	}
	if got.PaymentStatus != entity.PaymentStatusSuccess {
		t.Errorf("ticket payment status = %s, want success", got.PaymentStatus)
	}

	if n := len(repos.payments.byTicket(ticket.ID, entity.PaymentStatusSuccess)); n != 1 {
		t.Errorf("success payment rows = %d, want 1", n)
	}
}

func TestSettleDeclinedLeavesTicketPending(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{err: ErrGatewayDeclined}, time.Second, nopLogger())

	_, err := svc.Settle(context.Background(), userID.String(), &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "ovo",
	})

	var declined *SettlementDeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected SettlementDeclinedError, got %v", err)
	}
	if declined.Message == "" {
		t.Error("expected a user-facing decline message")
	}

	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusPending {
		t.Errorf("ticket status = %s, want pending", got.Status)
	}
	if got.PaymentStatus != entity.PaymentStatusFailed {
		t.Errorf("ticket payment status = %s, want failed", got.PaymentStatus)
	}

	failed := repos.payments.byTicket(ticket.ID, entity.PaymentStatusFailed)
	if len(failed) != 1 {
		t.Fatalf("failed payment rows = %d, want 1", len(failed))
	}
	if !strings.HasPrefix(failed[0].TransactionID, "TXN-FAIL-") {
		t.Errorf("failed transaction ID = %q, want TXN-FAIL- prefix", failed[0].TransactionID)
	}
	if failed[0].PaidAt != nil {
		t.Error("failed payment must not carry paid_at")
	}
}

func TestSettleDeclinedTicketRemainsSettleable(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	req := &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "dana",
	}

	declinedSvc := NewPaymentService(repos.repo, &stubGateway{err: ErrGatewayDeclined}, time.Second, nopLogger())
	if _, err := declinedSvc.Settle(context.Background(), userID.String(), req); err == nil {
		t.Fatal("expected declined settlement to fail")
	}

	// Retry against an approving gateway succeeds and activates the ticket.
	okSvc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())
	resp, err := okSvc.Settle(context.Background(), userID.String(), req)
	if err != nil {
		t.Fatalf("retry settle returned error: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected retry settlement success")
	}

	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusActive || got.PaymentStatus != entity.PaymentStatusSuccess {
		t.Errorf("ticket = %s/%s, want active/success", got.Status, got.PaymentStatus)
	}

	if n := len(repos.payments.byTicket(ticket.ID, entity.PaymentStatusSuccess)); n != 1 {
		t.Errorf("success payment rows = %d, want 1", n)
	}
	if n := len(repos.payments.byTicket(ticket.ID, entity.PaymentStatusFailed)); n != 1 {
		t.Errorf("failed payment rows = %d, want 1", n)
	}
}

func TestSettleAlreadySettled(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())
	req := &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	}

	if _, err := svc.Settle(context.Background(), userID.String(), req); err != nil {
		t.Fatalf("first settle returned error: %v", err)
	}

	_, err := svc.Settle(context.Background(), userID.String(), req)
	if !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}

	if n := len(repos.payments.byTicket(ticket.ID, entity.PaymentStatusSuccess)); n != 1 {
		t.Errorf("success payment rows = %d, want 1", n)
	}
}

func TestSettleAmountMismatch(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	_, err := svc.Settle(context.Background(), userID.String(), &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        9999,
		PaymentMethod: "gopay",
	})
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}

	// Rejected before the gateway: no attempt row, ticket untouched.
	if n := len(repos.payments.payments); n != 0 {
		t.Errorf("payment rows = %d, want 0", n)
	}
	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusPending || got.PaymentStatus != entity.PaymentStatusPending {
		t.Errorf("ticket = %s/%s, want pending/pending", got.Status, got.PaymentStatus)
	}
}

func TestSettleNotOwner(t *testing.T) {
	repos := newTestRepos()
	owner := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, owner, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	_, err := svc.Settle(context.Background(), utils.GenerateUUID().String(), &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	})
	if !errors.Is(err, ErrNotTicketOwner) {
		t.Fatalf("expected ErrNotTicketOwner, got %v", err)
	}
}

func TestSettleTicketNotFound(t *testing.T) {
	repos := newTestRepos()
	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	_, err := svc.Settle(context.Background(), utils.GenerateUUID().String(), &request.SettleRequest{
		TicketID:      utils.GenerateUUID().String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	})
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestSettleTerminalTicket(t *testing.T) {
	for _, status := range []entity.TicketStatus{
		entity.TicketStatusUsed,
		entity.TicketStatusExpired,
		entity.TicketStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repos := newTestRepos()
			userID := utils.GenerateUUID()
			route := seedRoute(repos, 5000)
			ticket := seedTicket(repos, route, userID, 10000)
			ticket.Status = status
			repos.tickets.Create(context.Background(), ticket)

			svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

			_, err := svc.Settle(context.Background(), userID.String(), &request.SettleRequest{
				TicketID:      ticket.ID.String(),
				Amount:        10000,
				PaymentMethod: "gopay",
			})
			if !errors.Is(err, ErrTicketNotPayable) {
				t.Fatalf("expected ErrTicketNotPayable, got %v", err)
			}
		})
	}
}

func TestSettleValidation(t *testing.T) {
	repos := newTestRepos()
	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	_, err := svc.Settle(context.Background(), utils.GenerateUUID().String(), &request.SettleRequest{
		TicketID:      utils.GenerateUUID().String(),
		Amount:        10000,
		PaymentMethod: "cash",
	})

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for unknown payment method, got %v", err)
	}
}

func TestSettleGatewayFailureRecordsAttempt(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	// Gateway slower than the settlement timeout.
	svc := NewPaymentService(repos.repo, &stubGateway{delay: 200 * time.Millisecond}, 10*time.Millisecond, nopLogger())

	_, err := svc.Settle(context.Background(), userID.String(), &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "bca_va",
	})

	var system *SettlementSystemError
	if !errors.As(err, &system) {
		t.Fatalf("expected SettlementSystemError, got %v", err)
	}

	// The timed-out attempt still leaves a failed payment row behind.
	if n := len(repos.payments.byTicket(ticket.ID, entity.PaymentStatusFailed)); n != 1 {
		t.Errorf("failed payment rows = %d, want 1", n)
	}
	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusPending {
		t.Errorf("ticket status = %s, want pending", got.Status)
	}
}

func TestConcurrentSettleActivatesOnce(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{delay: 5 * time.Millisecond}, time.Second, nopLogger())
	req := &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Settle(context.Background(), userID.String(), req)
		}(i)
	}
	wg.Wait()

	// Both attempts may pass the pre-check before either activates; the
	// guarded update still lets exactly one activation through.
	if repos.tickets.activations != 1 {
		t.Fatalf("activations = %d, want exactly 1", repos.tickets.activations)
	}

	got, _ := repos.tickets.FindByID(context.Background(), ticket.ID)
	if got.Status != entity.TicketStatusActive || got.PaymentStatus != entity.PaymentStatusSuccess {
		t.Errorf("ticket = %s/%s, want active/success", got.Status, got.PaymentStatus)
	}

	// At least one caller won; a loser either lost the race after its own
	// gateway approval (reported success) or was rejected up front.
	var wins int
	for _, err := range results {
		if err == nil {
			wins++
		} else if !errors.Is(err, ErrAlreadySettled) {
			t.Errorf("unexpected settle error: %v", err)
		}
	}
	if wins < 1 {
		t.Error("expected at least one successful settle call")
	}
}

func TestPaymentHistoryOwnership(t *testing.T) {
	repos := newTestRepos()
	userID := utils.GenerateUUID()
	route := seedRoute(repos, 5000)
	ticket := seedTicket(repos, route, userID, 10000)

	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())
	req := &request.SettleRequest{
		TicketID:      ticket.ID.String(),
		Amount:        10000,
		PaymentMethod: "gopay",
	}
	if _, err := svc.Settle(context.Background(), userID.String(), req); err != nil {
		t.Fatalf("settle returned error: %v", err)
	}

	history, err := svc.GetPaymentHistory(context.Background(), userID.String(), ticket.ID.String())
	if err != nil {
		t.Fatalf("GetPaymentHistory returned error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history))
	}

	_, err = svc.GetPaymentHistory(context.Background(), utils.GenerateUUID().String(), ticket.ID.String())
	if !errors.Is(err, ErrNotTicketOwner) {
		t.Fatalf("expected ErrNotTicketOwner, got %v", err)
	}
}

func TestPaymentMethods(t *testing.T) {
	repos := newTestRepos()
	svc := NewPaymentService(repos.repo, &stubGateway{}, time.Second, nopLogger())

	methods := svc.PaymentMethods()
	if len(methods) != 5 {
		t.Fatalf("payment methods = %d, want 5", len(methods))
	}
	if methods[0].ID != "gopay" {
		t.Errorf("first method = %s, want gopay", methods[0].ID)
	}
}
