package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"transgo-ticketing/pkg/utils"
)

// ErrGatewayDeclined is the gateway refusing the charge. Any other non-nil
// error from Charge is an infrastructure failure.
var ErrGatewayDeclined = errors.New("payment declined by gateway")

// PaymentGateway is the external settlement call. The simulated
// implementation stands in for a real integration; swapping it out must not
// touch the activation logic in the payment service.
type PaymentGateway interface {
	Charge(ctx context.Context, amount int64, method string) error
}

type simulatedGateway struct {
	cfg utils.GatewayConfig
}

// NewSimulatedGateway builds a gateway that waits a bounded random delay and
// approves with the configured success rate. The sentinel amount always
// declines, which keeps the failure path deterministic for demos and tests.
func NewSimulatedGateway(cfg utils.GatewayConfig) PaymentGateway {
	return &simulatedGateway{cfg: cfg}
}

func (g *simulatedGateway) Charge(ctx context.Context, amount int64, method string) error {
	delay := g.cfg.MinDelay
	if g.cfg.MaxDelay > g.cfg.MinDelay {
		delay += time.Duration(rand.Int63n(int64(g.cfg.MaxDelay - g.cfg.MinDelay)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}

	if amount == g.cfg.SentinelAmount {
		return ErrGatewayDeclined
	}

	if rand.Float64() >= g.cfg.SuccessRate {
		return ErrGatewayDeclined
	}

	return nil
}
