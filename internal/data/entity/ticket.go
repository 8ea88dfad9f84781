package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusActive    TicketStatus = "active"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusExpired   TicketStatus = "expired"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// IsTerminal reports whether no further status transition is allowed.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusUsed || s == TicketStatusExpired || s == TicketStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Ticket is one booked trip. TotalFare is captured at booking time
// (route fare x passenger count) and never recomputed. A ticket may only be
// active while its payment status is success.
type Ticket struct {
	Base
	RouteID        uuid.UUID     `db:"route_id"`
	UserID         uuid.UUID     `db:"user_id"`
	StartPoint     string        `db:"start_point"`
	EndPoint       string        `db:"end_point"`
	PassengerCount int           `db:"passenger_count"`
	TravelDate     time.Time     `db:"travel_date"`
	TotalFare      int64         `db:"total_fare"`
	QRCode         string        `db:"qr_code"`
	Status         TicketStatus  `db:"status"`
	PaymentStatus  PaymentStatus `db:"payment_status"`
}
