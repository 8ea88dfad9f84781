package repository

import (
	"context"
	"testing"
	"time"

	"transgo-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

func newPaymentRepoMock(t *testing.T) (pgxmock.PgxPoolIface, PaymentRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewPaymentRepository(mock, zap.NewNop())
}

func TestCreatePaymentInsertsAttemptRow(t *testing.T) {
	mock, repo := newPaymentRepoMock(t)

	now := time.Now()
	payment := &entity.Payment{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TicketID:      uuid.New(),
		UserID:        uuid.New(),
		Amount:        10000,
		PaymentMethod: "gopay",
		PaymentStatus: entity.PaymentStatusSuccess,
		TransactionID: "TXN-1756425600000-ABC1234",
		PaidAt:        &now,
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(
			payment.ID,
			payment.TicketID,
			payment.UserID,
			payment.Amount,
			payment.PaymentMethod,
			payment.PaymentStatus,
			payment.TransactionID,
			payment.PaidAt,
			payment.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), payment); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindByTicketIDScansHistory(t *testing.T) {
	mock, repo := newPaymentRepoMock(t)

	ticketID := uuid.New()
	userID := uuid.New()
	now := time.Now()
	earlier := now.Add(-time.Minute)

	columns := []string{
		"id", "ticket_id", "user_id", "amount", "payment_method",
		"payment_status", "transaction_id", "paid_at", "created_at",
	}

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE ticket_id").
		WithArgs(ticketID).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(uuid.New(), ticketID, userID, int64(10000), "gopay",
				entity.PaymentStatusSuccess, "TXN-1756425600000-ABC1234", &now, now).
			AddRow(uuid.New(), ticketID, userID, int64(10000), "ovo",
				entity.PaymentStatusFailed, "TXN-FAIL-1756425500000", (*time.Time)(nil), earlier))

	payments, err := repo.FindByTicketID(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("FindByTicketID returned error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(payments))
	}
	if payments[0].PaymentStatus != entity.PaymentStatusSuccess {
		t.Errorf("first payment status = %s, want success", payments[0].PaymentStatus)
	}
	if payments[1].PaidAt != nil {
		t.Error("failed payment must have nil paid_at")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindPaymentByIDMissingReturnsNil(t *testing.T) {
	mock, repo := newPaymentRepoMock(t)
	paymentID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").
		WithArgs(paymentID).
		WillReturnError(pgx.ErrNoRows)

	payment, err := repo.FindByID(context.Background(), paymentID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if payment != nil {
		t.Errorf("expected nil payment for missing row, got %+v", payment)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
