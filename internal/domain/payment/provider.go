// internal/domain/payment/provider.go
package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
)

// PushRequest asks the mobile-money provider to prompt the customer's
// phone for payment authorization
type PushRequest struct {
	Ref      string // attempt reference, unique per push
	Phone    string // canonical international format
	Amount   int64  // minor units
	Currency string
}

// PushResult is the out-of-band outcome of a push
type PushResult struct {
	Ref       string
	Confirmed bool
	Reason    string // provider message on failure
}

// PushProvider sends a payment push and delivers its confirmation
// asynchronously. SendPush returns once the provider acknowledged the
// request; the channel delivers exactly one result (the customer's
// confirmation, a decline, or a provider-side failure). A webhook or
// polling integration against a real provider implements the same
// contract, so the orchestrator's state machine does not change shape
// when the simulator is replaced.
type PushProvider interface {
	SendPush(ctx context.Context, req PushRequest) (<-chan PushResult, error)
}

// SimulatedProvider stands in for a real mobile-money provider: it
// acknowledges after a short delay and confirms (or fails) after a
// longer one.
type SimulatedProvider struct {
	ackDelay     time.Duration
	confirmDelay time.Duration
	failureRate  float64
	logger       *logrus.Logger
}

// NewSimulatedProvider creates a simulator from app configuration
func NewSimulatedProvider(cfg *config.Config, logger *logrus.Logger) *SimulatedProvider {
	return &SimulatedProvider{
		ackDelay:     cfg.MobileMoney.PushAckDelay,
		confirmDelay: cfg.MobileMoney.PushConfirmDelay,
		failureRate:  cfg.MobileMoney.PushFailureRate,
		logger:       logger,
	}
}

// SendPush acknowledges after the configured delay, then delivers the
// simulated confirmation on the returned channel
func (p *SimulatedProvider) SendPush(ctx context.Context, req PushRequest) (<-chan PushResult, error) {
	select {
	case <-time.After(p.ackDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.logger.WithFields(logrus.Fields{
		"ref":    req.Ref,
		"phone":  req.Phone,
		"amount": req.Amount,
	}).Info("mobile payment push sent")

	results := make(chan PushResult, 1)
	go func() {
		time.Sleep(p.confirmDelay)

		result := PushResult{Ref: req.Ref, Confirmed: true}
		if p.failureRate > 0 && rand.Float64() < p.failureRate {
			result.Confirmed = false
			result.Reason = "customer did not authorize the payment"
		}

		p.logger.WithFields(logrus.Fields{
			"ref":       req.Ref,
			"confirmed": result.Confirmed,
		}).Info("mobile payment push resolved")

		results <- result
	}()

	return results, nil
}
