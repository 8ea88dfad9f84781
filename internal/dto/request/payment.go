package request

type SettleRequest struct {
	TicketID      string `json:"ticket_id" validate:"required,uuid4"`
	Amount        int64  `json:"amount" validate:"required,min=1"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=gopay ovo dana bca_va credit_card"`
}
