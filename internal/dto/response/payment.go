package response

import (
	"time"

	"transgo-ticketing/internal/data/entity"
)

type PaymentMethodResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PaymentResponse struct {
	ID            string     `json:"id"`
	TicketID      string     `json:"ticket_id"`
	Amount        int64      `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SettlementResponse is the outcome of one settle call. Message is only set
// for declined attempts and is safe to show to the user.
type SettlementResponse struct {
	Success bool             `json:"success"`
	Payment *PaymentResponse `json:"payment,omitempty"`
	Message string           `json:"message,omitempty"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		TicketID:      payment.TicketID.String(),
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		PaymentStatus: string(payment.PaymentStatus),
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
		CreatedAt:     payment.CreatedAt,
	}
}
