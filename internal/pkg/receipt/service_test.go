// internal/pkg/receipt/service_test.go
package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/order"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "18.50", formatMoney(1850))
	assert.Equal(t, "0.05", formatMoney(5))
	assert.Equal(t, "0.00", formatMoney(0))
	assert.Equal(t, "-2.00", formatMoney(-200))
}

func TestGenerateHTML(t *testing.T) {
	cfg := &config.Config{}
	cfg.Org.Name = "Corner Cafe"
	cfg.Org.TaxLabel = "VAT"

	s := NewService(cfg)
	o := &order.Order{
		OrderNumber:    "08311234",
		OrderType:      "Dine in",
		LocationName:   "Table 3",
		SubtotalAmount: 2000,
		DiscountAmount: 200,
		TaxAmount:      50,
		TotalAmount:    1850,
		Currency:       "KES",
		PaymentMethod:  "cash",
		AmountPaid:     2000,
		ChangeAmount:   150,
		CreatedAt:      time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC),
		Items: []order.Item{
			{Name: "Burger", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
		},
	}

	html, err := s.generateHTML(receiptData{
		Order:    o,
		Org:      orgInfo{Name: cfg.Org.Name},
		Currency: o.Currency,
		TaxLabel: cfg.Org.TaxLabel,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "08311234")
	assert.Contains(t, html, "Corner Cafe")
	assert.Contains(t, html, "Table 3")
	assert.Contains(t, html, "18.50")
	assert.Contains(t, html, "VAT")
	assert.Contains(t, html, "Change")
}
