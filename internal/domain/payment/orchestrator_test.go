// internal/domain/payment/orchestrator_test.go
package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider hands back a channel the test resolves itself
type fakeProvider struct {
	results chan PushResult
	err     error
	lastReq PushRequest
}

func (f *fakeProvider) SendPush(_ context.Context, req PushRequest) (<-chan PushResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newTestManager(provider PushProvider) *Manager {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Manager{
		attempts:    make(map[string]*Attempt),
		provider:    provider,
		profile:     kenyaProfile,
		currency:    "KES",
		pushTimeout: 200 * time.Millisecond,
		logger:      logger,
	}
}

func waitForPushState(t *testing.T, a *Attempt, want PushState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return a.PushState() == want
	}, time.Second, 5*time.Millisecond, "push never reached %s (got %s)", want, a.PushState())
}

func TestCashPaymentGatesOnTenderedAmount(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	attempt, err := m.Begin("till-1", MethodCash, 1850)
	require.NoError(t, err)

	var notReady *NotReadyError
	require.ErrorAs(t, attempt.Completable(), &notReady)

	require.NoError(t, attempt.SetAmountTendered(1000))
	require.ErrorAs(t, attempt.Completable(), &notReady)
	assert.Equal(t, int64(0), attempt.Change())

	require.NoError(t, attempt.SetAmountTendered(2000))
	assert.NoError(t, attempt.Completable())
	assert.Equal(t, int64(150), attempt.Change())

	// exact payment, no change
	require.NoError(t, attempt.SetAmountTendered(1850))
	assert.NoError(t, attempt.Completable())
	assert.Equal(t, int64(0), attempt.Change())
}

func TestCashOperationsRejectedOnOtherMethods(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	attempt, err := m.Begin("till-1", MethodCard, 500)
	require.NoError(t, err)

	var stateErr *StateError
	require.ErrorAs(t, attempt.SetAmountTendered(500), &stateErr)
}

func TestCardPaymentAlwaysCompletable(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	attempt, err := m.Begin("till-1", MethodCard, 500)
	require.NoError(t, err)
	assert.NoError(t, attempt.Completable())
}

func TestMobilePaymentConfirmFlow(t *testing.T) {
	provider := &fakeProvider{results: make(chan PushResult, 1)}
	m := newTestManager(provider)

	attempt, err := m.Begin("till-1", MethodMobile, 1850)
	require.NoError(t, err)

	var notReady *NotReadyError
	require.ErrorAs(t, attempt.Completable(), &notReady)

	// push requires a phone number first
	require.ErrorAs(t, attempt.SendPush(context.Background()), &notReady)

	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712 345 678"))
	require.NoError(t, attempt.SendPush(context.Background()))
	assert.Equal(t, PushSent, attempt.PushState())
	assert.Equal(t, "+254712345678", provider.lastReq.Phone)
	assert.Equal(t, int64(1850), provider.lastReq.Amount)

	// still gated while awaiting confirmation
	require.ErrorAs(t, attempt.Completable(), &notReady)

	provider.results <- PushResult{Ref: provider.lastReq.Ref, Confirmed: true}
	waitForPushState(t, attempt, PushConfirmed)
	assert.NoError(t, attempt.Completable())
}

func TestMobilePaymentDeclineAndResend(t *testing.T) {
	provider := &fakeProvider{results: make(chan PushResult, 1)}
	m := newTestManager(provider)

	attempt, err := m.Begin("till-1", MethodMobile, 900)
	require.NoError(t, err)
	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712345678"))
	require.NoError(t, attempt.SendPush(context.Background()))

	provider.results <- PushResult{Confirmed: false, Reason: "declined"}
	waitForPushState(t, attempt, PushFailed)

	var notReady *NotReadyError
	require.ErrorAs(t, attempt.Completable(), &notReady)

	// resend reuses the phone number and goes out again
	provider.results = make(chan PushResult, 1)
	require.NoError(t, attempt.Resend(context.Background()))
	assert.Equal(t, PushSent, attempt.PushState())

	provider.results <- PushResult{Confirmed: true}
	waitForPushState(t, attempt, PushConfirmed)
	assert.NoError(t, attempt.Completable())
}

func TestMobilePaymentTimeout(t *testing.T) {
	provider := &fakeProvider{results: make(chan PushResult)}
	m := newTestManager(provider)
	m.pushTimeout = 20 * time.Millisecond

	attempt, err := m.Begin("till-1", MethodMobile, 900)
	require.NoError(t, err)
	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712345678"))
	require.NoError(t, attempt.SendPush(context.Background()))

	waitForPushState(t, attempt, PushFailed)
	assert.Equal(t, "confirmation timed out", attempt.Status().PushReason)
}

func TestMobileResetDiscardsInFlightPush(t *testing.T) {
	provider := &fakeProvider{results: make(chan PushResult, 1)}
	m := newTestManager(provider)

	attempt, err := m.Begin("till-1", MethodMobile, 900)
	require.NoError(t, err)
	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712345678"))
	require.NoError(t, attempt.SendPush(context.Background()))

	require.NoError(t, attempt.Reset())
	assert.Equal(t, PushIdle, attempt.PushState())

	// the stale confirmation must not resurrect the attempt
	provider.results <- PushResult{Confirmed: true}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, PushIdle, attempt.PushState())

	var notReady *NotReadyError
	require.ErrorAs(t, attempt.Completable(), &notReady)
}

func TestMobileConfirmedAttemptCannotBeReset(t *testing.T) {
	provider := &fakeProvider{results: make(chan PushResult, 1)}
	m := newTestManager(provider)

	attempt, err := m.Begin("till-1", MethodMobile, 900)
	require.NoError(t, err)
	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712345678"))
	require.NoError(t, attempt.SendPush(context.Background()))

	provider.results <- PushResult{Confirmed: true}
	waitForPushState(t, attempt, PushConfirmed)

	var stateErr *StateError
	require.ErrorAs(t, attempt.Reset(), &stateErr)
}

func TestMobileProviderSendErrorFailsAttempt(t *testing.T) {
	provider := &fakeProvider{err: errors.New("gateway unreachable")}
	m := newTestManager(provider)

	attempt, err := m.Begin("till-1", MethodMobile, 900)
	require.NoError(t, err)
	require.NoError(t, attempt.SetPhoneNumber(m.Profile(), "0712345678"))

	require.Error(t, attempt.SendPush(context.Background()))
	assert.Equal(t, PushFailed, attempt.PushState())
}

func TestSwitchingMethodDiscardsPriorState(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	cash, err := m.Begin("till-1", MethodCash, 1000)
	require.NoError(t, err)
	require.NoError(t, cash.SetAmountTendered(1500))
	require.NoError(t, cash.Completable())

	// switching to mobile starts clean
	mobile, err := m.Begin("till-1", MethodMobile, 1000)
	require.NoError(t, err)
	assert.Same(t, mobile, m.Get("till-1"))
	assert.Equal(t, int64(0), mobile.Status().AmountTendered)

	var notReady *NotReadyError
	require.ErrorAs(t, mobile.Completable(), &notReady)
}

func TestManagerRejectsUnknownMethod(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	_, err := m.Begin("till-1", Method("crypto"), 100)
	require.Error(t, err)
}

func TestClearDropsAttempt(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	_, err := m.Begin("till-1", MethodCash, 100)
	require.NoError(t, err)

	m.Clear("till-1")
	assert.Nil(t, m.Get("till-1"))
}

func TestStatusSnapshot(t *testing.T) {
	m := newTestManager(&fakeProvider{})

	attempt, err := m.Begin("till-1", MethodCash, 1850)
	require.NoError(t, err)
	require.NoError(t, attempt.SetAmountTendered(2000))

	status := attempt.Status()
	assert.Equal(t, "till-1", status.TerminalID)
	assert.Equal(t, MethodCash, status.Method)
	assert.Equal(t, int64(1850), status.Total)
	assert.Equal(t, int64(2000), status.AmountTendered)
	assert.Equal(t, int64(150), status.Change)
	assert.True(t, status.Completable)
	assert.Empty(t, status.PushState)
}
