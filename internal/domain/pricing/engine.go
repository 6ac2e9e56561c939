// internal/domain/pricing/engine.go
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

// Snapshot is the derived pricing of a cart under a rule set. It is
// recomputed on every cart or config change, never stored.
type Snapshot struct {
	Subtotal       int64   `json:"subtotal"`        // minor units
	DiscountAmount int64   `json:"discount_amount"`
	TaxAmount      int64   `json:"tax_amount"`
	Total          int64   `json:"total"`
	DiscountRate   float64 `json:"discount_rate"`
	TaxRate        float64 `json:"tax_rate"`
}

// ConfigError flags a rate combination that produced an invalid total.
// The snapshot it accompanies is clamped, never negative.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pricing configuration error: %s", e.Reason)
}

// Compute derives the pricing snapshot for the cart lines. Pure and
// deterministic: the same inputs always produce the same snapshot.
//
//	subtotal = Σ unitPrice * quantity
//	discount = round(subtotal * discountRate)
//	tax      = round(subtotal * taxRate)
//	total    = subtotal - discount + tax
//
// Amounts are int64 minor units; rounding is half-up to the minor unit.
func Compute(lines []cart.Line, discountRate, taxRate float64) (Snapshot, error) {
	snapshot := Snapshot{
		DiscountRate: discountRate,
		TaxRate:      taxRate,
	}

	if discountRate < 0 || discountRate >= 1 {
		return snapshot, &ConfigError{Reason: fmt.Sprintf("discount rate %v outside [0, 1)", discountRate)}
	}
	if taxRate < 0 {
		return snapshot, &ConfigError{Reason: fmt.Sprintf("negative tax rate %v", taxRate)}
	}

	for _, line := range lines {
		snapshot.Subtotal += line.UnitPrice * int64(line.Quantity)
	}

	if snapshot.Subtotal == 0 {
		return snapshot, nil
	}

	subtotal := decimal.NewFromInt(snapshot.Subtotal)
	// decimal.Round is half away from zero, which is half-up for the
	// non-negative amounts handled here
	snapshot.DiscountAmount = subtotal.Mul(decimal.NewFromFloat(discountRate)).Round(0).IntPart()
	snapshot.TaxAmount = subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(0).IntPart()
	snapshot.Total = snapshot.Subtotal - snapshot.DiscountAmount + snapshot.TaxAmount

	if snapshot.Total < 0 {
		snapshot.Total = 0
		return snapshot, &ConfigError{
			Reason: fmt.Sprintf("discount %v and tax %v rates drive the total negative", discountRate, taxRate),
		}
	}

	return snapshot, nil
}
