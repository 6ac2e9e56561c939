// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		number := NewOrderNumber(now)
		assert.Regexp(t, regexp.MustCompile(`^0831\d{4}$`), number)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPendingPayment, StatusCompleted, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusOnCooking, false},
		{StatusCompleted, StatusOnCooking, true},
		{StatusCompleted, StatusCancelled, true},
		{StatusCompleted, StatusPendingPayment, false},
		{StatusOnCooking, StatusReadyToServe, true},
		{StatusOnCooking, StatusCompleted, false},
		{StatusReadyToServe, StatusCompleted, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		o := &Order{Status: tt.from}
		assert.Equalf(t, tt.allowed, o.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusPendingPayment))
	assert.False(t, ValidStatus(Status("shipped")))
}

func TestIsSettled(t *testing.T) {
	paid := &Order{Status: StatusCompleted, PaymentMethod: "cash"}
	assert.True(t, paid.IsSettled())

	pending := &Order{Status: StatusPendingPayment, PaymentMethod: "pending"}
	assert.False(t, pending.IsSettled())
	assert.True(t, pending.IsPending())

	cancelled := &Order{Status: StatusCancelled, PaymentMethod: "cash"}
	assert.False(t, cancelled.IsSettled())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		EmptyCart:     true,
		MissingFields: []string{"customer_name"},
	}
	assert.Contains(t, err.Error(), "cart is empty")
	assert.Contains(t, err.Error(), "customer_name")

	assert.False(t, err.empty())
	assert.True(t, (&ValidationError{}).empty())
}
