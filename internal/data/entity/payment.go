package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one settlement attempt against a ticket. Rows are append-only:
// every attempt inserts a new row and no row is ever updated or deleted.
type Payment struct {
	BaseSimple
	TicketID      uuid.UUID     `db:"ticket_id"`
	UserID        uuid.UUID     `db:"user_id"`
	Amount        int64         `db:"amount"`
	PaymentMethod string        `db:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	TransactionID string        `db:"transaction_id"`
	PaidAt        *time.Time    `db:"paid_at"`
}
