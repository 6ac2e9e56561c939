// internal/domain/payment/orchestrator.go
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
)

// Method identifies how the customer pays
type Method string

const (
	MethodCash   Method = "cash"
	MethodMobile Method = "mobile"
	MethodCard   Method = "card"
)

// ValidMethod reports whether m is a supported payment method
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodMobile, MethodCard:
		return true
	}
	return false
}

// PushState is the lifecycle of a mobile payment push
type PushState string

const (
	PushIdle      PushState = "idle"
	PushSending   PushState = "sending"
	PushSent      PushState = "sent"
	PushConfirmed PushState = "confirmed"
	PushFailed    PushState = "failed"
)

// Attempt is the in-flight payment for one terminal. All state is held
// in memory; an attempt that is not finalized is simply discarded when
// the terminal starts a new one.
type Attempt struct {
	mu sync.Mutex

	terminalID string
	method     Method
	total      int64 // minor units
	currency   string

	// cash
	amountTendered int64
	tenderedSet    bool

	// mobile
	phone       string
	pushState   PushState
	pushReason  string
	pushSeq     int // invalidates in-flight pushes after Reset or re-entry
	provider    PushProvider
	pushTimeout time.Duration
	logger      *logrus.Logger
}

// Status is a point-in-time snapshot of an attempt, safe to serialize
type Status struct {
	TerminalID     string    `json:"terminal_id"`
	Method         Method    `json:"method"`
	Total          int64     `json:"total"`
	Currency       string    `json:"currency"`
	AmountTendered int64     `json:"amount_tendered,omitempty"`
	Change         int64     `json:"change"`
	Phone          string    `json:"phone,omitempty"`
	PushState      PushState `json:"push_state,omitempty"`
	PushReason     string    `json:"push_reason,omitempty"`
	Completable    bool      `json:"completable"`
}

// Manager tracks at most one payment attempt per terminal
type Manager struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt

	provider    PushProvider
	profile     CountryProfile
	currency    string
	pushTimeout time.Duration
	logger      *logrus.Logger
}

// NewManager creates a payment manager wired to the push provider
func NewManager(cfg *config.Config, provider PushProvider, logger *logrus.Logger) *Manager {
	return &Manager{
		attempts:    make(map[string]*Attempt),
		provider:    provider,
		profile:     ProfileFromConfig(cfg),
		currency:    cfg.Org.Currency,
		pushTimeout: cfg.MobileMoney.PushTimeout,
		logger:      logger,
	}
}

// Begin starts a fresh attempt for the terminal, discarding any prior
// one. Switching method mid-payment goes through here so stale cash or
// push state can never leak into the new method.
func (m *Manager) Begin(terminalID string, method Method, total int64) (*Attempt, error) {
	if !ValidMethod(method) {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
	if total < 0 {
		return nil, fmt.Errorf("negative payment total: %d", total)
	}

	attempt := &Attempt{
		terminalID:  terminalID,
		method:      method,
		total:       total,
		currency:    m.currency,
		pushState:   PushIdle,
		provider:    m.provider,
		pushTimeout: m.pushTimeout,
		logger:      m.logger,
	}

	m.mu.Lock()
	m.attempts[terminalID] = attempt
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"terminal_id": terminalID,
		"method":      method,
		"total":       total,
	}).Info("payment attempt started")

	return attempt, nil
}

// Get returns the terminal's current attempt, or nil if none exists
func (m *Manager) Get(terminalID string) *Attempt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attempts[terminalID]
}

// Clear drops the terminal's attempt, typically after finalization
func (m *Manager) Clear(terminalID string) {
	m.mu.Lock()
	delete(m.attempts, terminalID)
	m.mu.Unlock()
}

// Profile exposes the phone normalization profile in use
func (m *Manager) Profile() CountryProfile {
	return m.profile
}

// Method returns the attempt's payment method
func (a *Attempt) Method() Method {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.method
}

// Total returns the amount the attempt must cover
func (a *Attempt) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// SetAmountTendered records the cash the customer handed over
func (a *Attempt) SetAmountTendered(amount int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.method != MethodCash {
		return &StateError{Op: "record tendered cash", State: string(a.method) + " payment"}
	}
	if amount < 0 {
		return fmt.Errorf("negative tendered amount: %d", amount)
	}

	a.amountTendered = amount
	a.tenderedSet = true
	return nil
}

// Change is the cash owed back to the customer, never negative
func (a *Attempt) Change() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.changeLocked()
}

func (a *Attempt) changeLocked() int64 {
	if a.method != MethodCash || !a.tenderedSet {
		return 0
	}
	if change := a.amountTendered - a.total; change > 0 {
		return change
	}
	return 0
}

// SetPhoneNumber normalizes and records the customer's mobile number.
// Only allowed before a push is in flight.
func (a *Attempt) SetPhoneNumber(profile CountryProfile, raw string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.method != MethodMobile {
		return &StateError{Op: "set phone number", State: string(a.method) + " payment"}
	}
	switch a.pushState {
	case PushIdle, PushFailed:
	default:
		return &StateError{Op: "set phone number", State: string(a.pushState)}
	}

	normalized, err := profile.Normalize(raw)
	if err != nil {
		return err
	}

	a.phone = normalized
	return nil
}

// SendPush asks the provider to prompt the customer's phone. Moves the
// attempt to sending, then sent once the provider acknowledges; the
// confirmation (or timeout) resolves it to confirmed or failed in the
// background.
func (a *Attempt) SendPush(ctx context.Context) error {
	a.mu.Lock()

	if a.method != MethodMobile {
		a.mu.Unlock()
		return &StateError{Op: "send push", State: string(a.method) + " payment"}
	}
	if a.phone == "" {
		a.mu.Unlock()
		return &NotReadyError{Method: MethodMobile, Reason: "no phone number entered"}
	}
	switch a.pushState {
	case PushIdle, PushFailed:
	default:
		a.mu.Unlock()
		return &StateError{Op: "send push", State: string(a.pushState)}
	}

	a.pushSeq++
	seq := a.pushSeq
	a.pushState = PushSending
	a.pushReason = ""
	req := PushRequest{
		Ref:      uuid.New().String(),
		Phone:    a.phone,
		Amount:   a.total,
		Currency: a.currency,
	}
	a.mu.Unlock()

	results, err := a.provider.SendPush(ctx, req)
	if err != nil {
		a.resolve(seq, PushFailed, fmt.Sprintf("push could not be sent: %v", err))
		return fmt.Errorf("send payment push: %w", err)
	}

	a.transition(seq, PushSending, PushSent, "")

	go a.awaitResult(seq, results)
	return nil
}

// Resend retries a push that was sent but never confirmed, or failed.
// It resets to idle and sends again with the same phone number.
func (a *Attempt) Resend(ctx context.Context) error {
	a.mu.Lock()
	switch a.pushState {
	case PushSent, PushFailed:
		a.pushSeq++
		a.pushState = PushIdle
		a.pushReason = ""
	default:
		state := a.pushState
		a.mu.Unlock()
		return &StateError{Op: "resend push", State: string(state)}
	}
	a.mu.Unlock()

	return a.SendPush(ctx)
}

// Reset abandons the mobile flow entirely so the cashier can re-enter
// the number. In-flight pushes are ignored when they resolve.
func (a *Attempt) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.method != MethodMobile {
		return &StateError{Op: "reset push", State: string(a.method) + " payment"}
	}
	if a.pushState == PushConfirmed {
		return &StateError{Op: "reset push", State: string(PushConfirmed)}
	}

	a.pushSeq++
	a.pushState = PushIdle
	a.pushReason = ""
	a.phone = ""
	return nil
}

// awaitResult resolves the push from the provider's answer or the
// timeout, whichever comes first
func (a *Attempt) awaitResult(seq int, results <-chan PushResult) {
	timer := time.NewTimer(a.pushTimeout)
	defer timer.Stop()

	select {
	case result := <-results:
		if result.Confirmed {
			a.resolve(seq, PushConfirmed, "")
		} else {
			reason := result.Reason
			if reason == "" {
				reason = "payment was not confirmed"
			}
			a.resolve(seq, PushFailed, reason)
		}
	case <-timer.C:
		a.resolve(seq, PushFailed, "confirmation timed out")
	}
}

// transition moves from one push state to another if the attempt is
// still on the same push generation
func (a *Attempt) transition(seq int, from, to PushState, reason string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pushSeq != seq || a.pushState != from {
		return
	}
	a.pushState = to
	a.pushReason = reason
}

// resolve forces a terminal push state for the given generation
func (a *Attempt) resolve(seq int, to PushState, reason string) {
	a.mu.Lock()
	if a.pushSeq != seq {
		a.mu.Unlock()
		return
	}
	a.pushState = to
	a.pushReason = reason
	terminalID := a.terminalID
	logger := a.logger
	a.mu.Unlock()

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"terminal_id": terminalID,
			"push_state":  to,
			"reason":      reason,
		}).Info("mobile payment push state changed")
	}
}

// PushState returns the current push lifecycle state
func (a *Attempt) PushState() PushState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pushState
}

// Completable reports whether the attempt may finalize as paid. A nil
// error means yes; otherwise the NotReadyError names what is missing.
func (a *Attempt) Completable() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.method {
	case MethodCash:
		if !a.tenderedSet {
			return &NotReadyError{Method: MethodCash, Reason: "no amount tendered"}
		}
		if a.amountTendered < a.total {
			return &NotReadyError{Method: MethodCash, Reason: "amount tendered is less than the total"}
		}
	case MethodMobile:
		if a.pushState != PushConfirmed {
			return &NotReadyError{Method: MethodMobile, Reason: "payment not confirmed (state: " + string(a.pushState) + ")"}
		}
	case MethodCard:
		// card-present payments settle at the physical terminal
	}
	return nil
}

// Status snapshots the attempt for API responses
func (a *Attempt) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := Status{
		TerminalID:     a.terminalID,
		Method:         a.method,
		Total:          a.total,
		Currency:       a.currency,
		AmountTendered: a.amountTendered,
		Change:         a.changeLocked(),
		Phone:          a.phone,
	}
	if a.method == MethodMobile {
		status.PushState = a.pushState
		status.PushReason = a.pushReason
	}
	status.Completable = a.completableLocked() == nil
	return status
}

func (a *Attempt) completableLocked() error {
	switch a.method {
	case MethodCash:
		if !a.tenderedSet || a.amountTendered < a.total {
			return &NotReadyError{Method: MethodCash, Reason: "insufficient cash"}
		}
	case MethodMobile:
		if a.pushState != PushConfirmed {
			return &NotReadyError{Method: MethodMobile, Reason: "not confirmed"}
		}
	}
	return nil
}
