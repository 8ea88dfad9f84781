package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/data/repository"
	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/dto/response"
	"transgo-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// declinedMessage is shown to the user when the gateway refuses the charge.
const declinedMessage = "Pembayaran gagal. Silakan coba lagi atau gunakan metode pembayaran lain."

type PaymentService interface {
	Settle(ctx context.Context, userID string, req *request.SettleRequest) (*response.SettlementResponse, error)
	GetPaymentHistory(ctx context.Context, userID string, ticketID string) ([]response.PaymentResponse, error)
	PaymentMethods() []response.PaymentMethodResponse
}

type paymentService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	timeout time.Duration
	log     *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gateway PaymentGateway, timeout time.Duration, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gateway,
		timeout: timeout,
		log:     log.With(zap.String("service", "payment")),
	}
}

// Settle runs one settlement attempt for a ticket. Every attempt appends
// exactly one payment row, success or failure. Activation happens through a
// single guarded update so that concurrent attempts for the same ticket can
// never activate it twice. A failed attempt never touches the ticket status.
func (s *paymentService) Settle(ctx context.Context, userID string, req *request.SettleRequest) (*response.SettlementResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Settle validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", req.TicketID, err)
	}

	// Get ticket
	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, &SettlementSystemError{Err: err}
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", req.TicketID, ErrTicketNotFound)
	}

	// Check ticket belongs to user
	if ticket.UserID != userUUID {
		return nil, fmt.Errorf("ticket %s: %w", req.TicketID, ErrNotTicketOwner)
	}

	// A settled ticket is never re-attempted
	if ticket.PaymentStatus == entity.PaymentStatusSuccess {
		return nil, fmt.Errorf("ticket %s: %w", req.TicketID, ErrAlreadySettled)
	}

	// Terminal tickets cannot be paid
	if ticket.Status.IsTerminal() {
		return nil, fmt.Errorf("ticket status is %s: %w", ticket.Status, ErrTicketNotPayable)
	}

	// Amount must match the fare captured at booking time
	if req.Amount != ticket.TotalFare {
		return nil, fmt.Errorf("amount %d, ticket total %d: %w", req.Amount, ticket.TotalFare, ErrAmountMismatch)
	}

	// External gateway call. Bounded: an attempt that outlives the timeout is
	// recorded as failed rather than left dangling with no payment row.
	gwCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gwErr := s.gateway.Charge(gwCtx, req.Amount, req.PaymentMethod)

	switch {
	case gwErr == nil:
		return s.settleSuccess(ctx, ticket, req)

	case errors.Is(gwErr, ErrGatewayDeclined):
		return s.settleDeclined(ctx, ticket, req)

	default:
		// Gateway unreachable or timed out. Record the failed attempt, then
		// surface a retryable system error.
		if _, recErr := s.recordAttempt(ctx, ticket, req, entity.PaymentStatusFailed); recErr != nil {
			s.log.Error("Failed to record timed-out settlement attempt",
				zap.Error(recErr),
				zap.String("ticket_id", req.TicketID),
			)
		}
		s.log.Error("Gateway call failed",
			zap.Error(gwErr),
			zap.String("ticket_id", req.TicketID),
			zap.String("payment_method", req.PaymentMethod),
		)
		return nil, &SettlementSystemError{Err: gwErr}
	}
}

func (s *paymentService) settleSuccess(ctx context.Context, ticket *entity.Ticket, req *request.SettleRequest) (*response.SettlementResponse, error) {
	payment, err := s.recordAttempt(ctx, ticket, req, entity.PaymentStatusSuccess)
	if err != nil {
		// No payment row, no activation: the whole attempt failed and the
		// ticket is untouched. Safe to retry.
		return nil, &SettlementSystemError{Err: err}
	}

	// Guarded activation: at most one attempt per ticket ever sees 1 row.
	rows, err := s.repo.Ticket.Activate(ctx, ticket.ID)
	if err != nil {
		// The payment row is authoritative history and is not rolled back;
		// only the activation is left for operator follow-up.
		s.log.Error("Inconsistent state: payment recorded but activation failed",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("transaction_id", payment.TransactionID),
		)
	} else if rows == 0 {
		current, lookupErr := s.repo.Ticket.FindByID(ctx, ticket.ID)
		if lookupErr == nil && current != nil &&
			current.Status == entity.TicketStatusActive &&
			current.PaymentStatus == entity.PaymentStatusSuccess {
			// Lost the race: a concurrent attempt already activated it.
			s.log.Info("Ticket already activated by concurrent settlement",
				zap.String("ticket_id", ticket.ID.String()),
				zap.String("transaction_id", payment.TransactionID),
			)
		} else {
			s.log.Error("Inconsistent state: payment recorded but ticket not active",
				zap.String("ticket_id", ticket.ID.String()),
				zap.String("transaction_id", payment.TransactionID),
			)
		}
	} else {
		s.log.Info("Payment settled",
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("transaction_id", payment.TransactionID),
			zap.Int64("amount", payment.Amount),
			zap.String("payment_method", payment.PaymentMethod),
		)
	}

	paymentResp := response.PaymentToResponse(payment)
	return &response.SettlementResponse{
		Success: true,
		Payment: &paymentResp,
	}, nil
}

func (s *paymentService) settleDeclined(ctx context.Context, ticket *entity.Ticket, req *request.SettleRequest) (*response.SettlementResponse, error) {
	if _, err := s.recordAttempt(ctx, ticket, req, entity.PaymentStatusFailed); err != nil {
		return nil, &SettlementSystemError{Err: err}
	}

	// Visibility only: flips pending -> failed, never regresses an active
	// ticket, never changes the ticket status.
	if _, err := s.repo.Ticket.MarkPaymentFailed(ctx, ticket.ID); err != nil {
		s.log.Error("Failed to mark ticket payment failed",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
	}

	s.log.Info("Payment declined",
		zap.String("ticket_id", ticket.ID.String()),
		zap.Int64("amount", req.Amount),
		zap.String("payment_method", req.PaymentMethod),
	)

	return nil, &SettlementDeclinedError{Message: declinedMessage}
}

// recordAttempt appends one immutable payment row for this attempt.
func (s *paymentService) recordAttempt(ctx context.Context, ticket *entity.Ticket, req *request.SettleRequest, status entity.PaymentStatus) (*entity.Payment, error) {
	now := time.Now()

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		TicketID:      ticket.ID,
		UserID:        ticket.UserID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: status,
	}

	if status == entity.PaymentStatusSuccess {
		payment.TransactionID = utils.GenerateTransactionID()
		payment.PaidAt = &now
	} else {
		payment.TransactionID = utils.GenerateFailedTransactionID()
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment attempt: %w", err)
	}

	return payment, nil
}

// GetPaymentHistory returns all settlement attempts for a ticket, newest
// first. The ticket must belong to the requesting user.
func (s *paymentService) GetPaymentHistory(ctx context.Context, userID string, ticketID string) ([]response.PaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, err)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}
	if ticket.UserID != userUUID {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrNotTicketOwner)
	}

	payments, err := s.repo.Payment.FindByTicketID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get payment history",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return nil, fmt.Errorf("get payment history: %w", err)
	}

	paymentResponses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		paymentResponses[i] = response.PaymentToResponse(payment)
	}

	return paymentResponses, nil
}

// PaymentMethods lists the supported methods. Static: method onboarding is
// an app release, not data entry.
func (s *paymentService) PaymentMethods() []response.PaymentMethodResponse {
	return []response.PaymentMethodResponse{
		{ID: "gopay", Name: "GoPay", Description: "Scan QR Code"},
		{ID: "ovo", Name: "OVO", Description: "Push Notification"},
		{ID: "dana", Name: "DANA", Description: "Redirect to App"},
		{ID: "bca_va", Name: "BCA Virtual Account", Description: "Manual Transfer"},
		{ID: "credit_card", Name: "Kartu Kredit/Debit", Description: "Visa/Mastercard"},
	}
}
