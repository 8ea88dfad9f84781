package adaptor

import (
	"errors"
	"net/http"

	"transgo-ticketing/internal/usecase"
	"transgo-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Route   *RouteHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Ticket  *TicketHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Route:   NewRouteHandler(service.Route, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Ticket:  NewTicketHandler(service.Ticket, log),
	}
}

// respondServiceError maps domain errors to HTTP responses. One mapping for
// every handler: the services return typed errors, so no string sniffing.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	var declinedErr *usecase.SettlementDeclinedError
	var systemErr *usecase.SettlementSystemError
	var transitionErr *usecase.IllegalTransitionError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrRouteNotFound),
		errors.Is(err, usecase.ErrTicketNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotTicketOwner):
		log.Warn(operation+" failed - not owner", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrRouteCodeExists),
		errors.Is(err, usecase.ErrAlreadySettled):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrAmountMismatch),
		errors.Is(err, usecase.ErrTicketNotPayable):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &transitionErr):
		log.Warn(operation+" failed - illegal transition", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &declinedErr):
		log.Info(operation+" declined", zap.Error(err))
		utils.ResponsePaymentDeclined(w, declinedErr.Message)

	case errors.As(err, &systemErr):
		log.Error(operation+" failed - settlement system error", zap.Error(err))
		utils.ResponseBadGateway(w, "Terjadi kesalahan sistem saat memproses pembayaran.")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
