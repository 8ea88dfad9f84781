package repository

import (
	"context"
	"fmt"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentRepository is append-only: settlement attempts are inserted, never
// updated or deleted. Each attempt is its own row.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, ticket_id, user_id, amount, payment_method, payment_status, transaction_id, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.TicketID,
		payment.UserID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.TransactionID,
		payment.PaidAt,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("ticket_id", payment.TicketID.String()),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for ticket %s: %w", payment.TicketID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, ticket_id, user_id, amount, payment_method, payment_status, transaction_id, paid_at, created_at
		FROM payments
		WHERE id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.TicketID,
		&payment.UserID,
		&payment.Amount,
		&payment.PaymentMethod,
		&payment.PaymentStatus,
		&payment.TransactionID,
		&payment.PaidAt,
		&payment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return &payment, nil
}

func (r *paymentRepository) FindByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, ticket_id, user_id, amount, payment_method, payment_status, transaction_id, paid_at, created_at
		FROM payments
		WHERE ticket_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to find payments by ticket ID",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return nil, fmt.Errorf("find payments by ticket ID %s: %w", ticketID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.TicketID,
			&payment.UserID,
			&payment.Amount,
			&payment.PaymentMethod,
			&payment.PaymentStatus,
			&payment.TransactionID,
			&payment.PaidAt,
			&payment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}
