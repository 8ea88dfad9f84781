package repository

import (
	"context"
	"fmt"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error)
	Count(ctx context.Context, status entity.TicketStatus) (int64, error)

	// Conditional single-row updates. Each returns the number of rows the
	// guard let through; 0 means the guard did not match, not that the
	// ticket is missing.
	Activate(ctx context.Context, ticketID uuid.UUID) (int64, error)
	MarkPaymentFailed(ctx context.Context, ticketID uuid.UUID) (int64, error)
	UpdateStatusGuarded(ctx context.Context, ticketID uuid.UUID, to entity.TicketStatus, from []entity.TicketStatus) (int64, error)
	ExpireOverdue(ctx context.Context, before time.Time) (int64, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, route_id, user_id, start_point, end_point, passenger_count, travel_date, total_fare, qr_code, status, payment_status, created_at, updated_at`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.RouteID,
		&ticket.UserID,
		&ticket.StartPoint,
		&ticket.EndPoint,
		&ticket.PassengerCount,
		&ticket.TravelDate,
		&ticket.TotalFare,
		&ticket.QRCode,
		&ticket.Status,
		&ticket.PaymentStatus,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.RouteID,
		ticket.UserID,
		ticket.StartPoint,
		ticket.EndPoint,
		ticket.PassengerCount,
		ticket.TravelDate,
		ticket.TotalFare,
		ticket.QRCode,
		ticket.Status,
		ticket.PaymentStatus,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("user_id", ticket.UserID.String()),
		)
		return fmt.Errorf("create ticket %s: %w", ticket.ID.String(), err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find tickets by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectTickets(rows, r.log)
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// FindAll lists tickets for the admin screen, optionally filtered by status.
// Pass an empty status to list everything.
func (r *ticketRepository) FindAll(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows, r.log)
}

func (r *ticketRepository) Count(ctx context.Context, status entity.TicketStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE ($1 = '' OR status = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, string(status)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", err)
	}

	return count, nil
}

// Activate flips a ticket to active/success in a single guarded update.
// The guard on payment_status makes activation at-most-once: under
// concurrent settlement only one caller sees 1 row affected, the rest see 0.
func (r *ticketRepository) Activate(ctx context.Context, ticketID uuid.UUID) (int64, error) {
	query := `
		UPDATE tickets
		SET payment_status = 'success', status = 'active', updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'success'
	`

	result, err := r.db.Exec(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to activate ticket",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return 0, fmt.Errorf("activate ticket %s: %w", ticketID.String(), err)
	}

	return result.RowsAffected(), nil
}

// MarkPaymentFailed records a declined attempt on the ticket for visibility.
// Only flips pending -> failed; a ticket that already settled is untouched.
func (r *ticketRepository) MarkPaymentFailed(ctx context.Context, ticketID uuid.UUID) (int64, error) {
	query := `
		UPDATE tickets
		SET payment_status = 'failed', updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to mark ticket payment failed",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return 0, fmt.Errorf("mark ticket %s payment failed: %w", ticketID.String(), err)
	}

	return result.RowsAffected(), nil
}

// UpdateStatusGuarded applies a lifecycle transition as one conditional
// update: the write only lands if the current status is in the allowed set.
func (r *ticketRepository) UpdateStatusGuarded(ctx context.Context, ticketID uuid.UUID, to entity.TicketStatus, from []entity.TicketStatus) (int64, error) {
	query := `
		UPDATE tickets
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	fromStates := make([]string, len(from))
	for i, s := range from {
		fromStates[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, ticketID, to, fromStates)
	if err != nil {
		r.log.Error("Failed to update ticket status",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
			zap.String("status", string(to)),
		)
		return 0, fmt.Errorf("update ticket %s status to %s: %w", ticketID.String(), string(to), err)
	}

	return result.RowsAffected(), nil
}

// ExpireOverdue marks every non-terminal ticket whose travel date has passed
// as expired. Used tickets are never touched.
func (r *ticketRepository) ExpireOverdue(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE tickets
		SET status = 'expired', updated_at = NOW()
		WHERE travel_date < $1 AND status IN ('pending', 'active')
	`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to expire overdue tickets", zap.Error(err))
		return 0, fmt.Errorf("expire overdue tickets: %w", err)
	}

	return result.RowsAffected(), nil
}

func collectTickets(rows pgx.Rows, log *zap.Logger) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, nil
}
