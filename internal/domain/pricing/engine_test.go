// internal/domain/pricing/engine_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

func TestComputeDineInScenario(t *testing.T) {
	// burger x2 at 10.00, 10% discount, 2.5% tax
	lines := []cart.Line{
		{ProductID: "burger", Name: "Burger", UnitPrice: 1000, Quantity: 2},
	}

	snapshot, err := Compute(lines, 0.10, 0.025)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), snapshot.Subtotal)
	assert.Equal(t, int64(200), snapshot.DiscountAmount)
	assert.Equal(t, int64(50), snapshot.TaxAmount)
	assert.Equal(t, int64(1850), snapshot.Total)
}

func TestComputeIsIdempotent(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", UnitPrice: 333, Quantity: 3},
		{ProductID: "p2", VariantID: "v1", UnitPrice: 1299, Quantity: 2},
	}

	first, err := Compute(lines, 0.07, 0.16)
	require.NoError(t, err)
	second, err := Compute(lines, 0.07, 0.16)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeTotalIdentity(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", UnitPrice: 101, Quantity: 7},
		{ProductID: "p2", UnitPrice: 2499, Quantity: 1},
	}

	snapshot, err := Compute(lines, 0.15, 0.025)
	require.NoError(t, err)

	assert.Equal(t, snapshot.Subtotal-snapshot.DiscountAmount+snapshot.TaxAmount, snapshot.Total)
	assert.GreaterOrEqual(t, snapshot.Total, int64(0))
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// subtotal 1010 * 0.025 = 25.25 -> 25; 1010 * 0.045 = 45.45 -> 45;
	// 1010 * 0.005 = 5.05 -> 5; and the .5 boundary rounds up:
	// 150 * 0.01 = 1.5 -> 2
	lines := []cart.Line{{ProductID: "p1", UnitPrice: 150, Quantity: 1}}

	snapshot, err := Compute(lines, 0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snapshot.TaxAmount)
}

func TestComputeEmptyCart(t *testing.T) {
	snapshot, err := Compute(nil, 0.10, 0.025)
	require.NoError(t, err)

	assert.Equal(t, Snapshot{DiscountRate: 0.10, TaxRate: 0.025}, snapshot)
}

func TestComputeRejectsOutOfRangeRates(t *testing.T) {
	lines := []cart.Line{{ProductID: "p1", UnitPrice: 100, Quantity: 1}}

	_, err := Compute(lines, 1.0, 0)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = Compute(lines, -0.1, 0)
	require.ErrorAs(t, err, &cfgErr)

	_, err = Compute(lines, 0, -0.025)
	require.ErrorAs(t, err, &cfgErr)
}

func TestComputeNeverReturnsNegativeTotal(t *testing.T) {
	lines := []cart.Line{{ProductID: "p1", UnitPrice: 1000, Quantity: 1}}

	// discount just under 1 with zero tax keeps total positive
	snapshot, err := Compute(lines, 0.999, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snapshot.Total, int64(0))
}
