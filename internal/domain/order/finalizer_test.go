// internal/domain/order/finalizer_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

func diningConfig() *businessrule.BusinessConfig {
	return &businessrule.BusinessConfig{
		BusinessType:     "restaurant",
		Name:             "Restaurant",
		OrderTypes:       []businessrule.OrderType{businessrule.OrderTypeInStore, businessrule.OrderTypeShipToHome},
		RequiresLocation: true,
		Locations:        []businessrule.LocationOption{{ID: "t1", Label: "Table 1"}},
	}
}

func cartWithOneLine() *cart.TerminalCart {
	return &cart.TerminalCart{
		TerminalID: "till-1",
		Lines: []cart.Line{
			{ProductID: "p1", Name: "Latte", UnitPrice: 350, Quantity: 2},
		},
	}
}

func TestValidateDraftEmptyCart(t *testing.T) {
	cfg := diningConfig()
	sel := &businessrule.Selection{OrderType: businessrule.OrderTypeInStore}

	validation := validateDraft(cfg, sel, &cart.TerminalCart{TerminalID: "till-1"}, nil)

	require.NotNil(t, validation)
	assert.True(t, validation.EmptyCart)
	assert.True(t, validation.MissingLocation)
}

func TestValidateDraftRequiresCustomer(t *testing.T) {
	cfg := diningConfig()
	cfg.RequiresCustomer = true
	sel := &businessrule.Selection{OrderType: businessrule.OrderTypeInStore, LocationID: "t1"}

	validation := validateDraft(cfg, sel, cartWithOneLine(), nil)
	require.NotNil(t, validation)
	assert.True(t, validation.MissingCustomer)

	empty := ""
	validation = validateDraft(cfg, sel, cartWithOneLine(), &FinalizeRequest{CustomerID: &empty})
	require.NotNil(t, validation)
	assert.True(t, validation.MissingCustomer)

	customerID := "c-1"
	validation = validateDraft(cfg, sel, cartWithOneLine(), &FinalizeRequest{CustomerID: &customerID})
	assert.Nil(t, validation)
}

func TestValidateDraftLocationExemption(t *testing.T) {
	cfg := diningConfig()

	// in-store needs a table
	sel := &businessrule.Selection{OrderType: businessrule.OrderTypeInStore}
	validation := validateDraft(cfg, sel, cartWithOneLine(), nil)
	require.NotNil(t, validation)
	assert.True(t, validation.MissingLocation)

	// shipping does not
	sel = &businessrule.Selection{OrderType: businessrule.OrderTypeShipToHome}
	assert.Nil(t, validateDraft(cfg, sel, cartWithOneLine(), nil))
}

func TestValidateDraftRequiredCustomFields(t *testing.T) {
	cfg := diningConfig()
	cfg.CustomFields = []businessrule.CustomField{
		{ID: "prescription_no", Label: "Prescription No.", Type: businessrule.FieldTypeText, Required: true},
		{ID: "remarks", Label: "Remarks", Type: businessrule.FieldTypeText},
	}
	sel := &businessrule.Selection{OrderType: businessrule.OrderTypeInStore, LocationID: "t1"}

	validation := validateDraft(cfg, sel, cartWithOneLine(), nil)
	require.NotNil(t, validation)
	assert.Equal(t, []string{"prescription_no"}, validation.MissingFields)

	sel.CustomFieldValues = map[string]string{"prescription_no": "RX-100"}
	assert.Nil(t, validateDraft(cfg, sel, cartWithOneLine(), nil))
}

func TestValidateDraftReportsEverythingAtOnce(t *testing.T) {
	cfg := diningConfig()
	cfg.RequiresCustomer = true
	cfg.CustomFields = []businessrule.CustomField{
		{ID: "guests", Label: "Guests", Type: businessrule.FieldTypeNumber, Required: true},
	}
	sel := &businessrule.Selection{OrderType: businessrule.OrderTypeInStore}

	validation := validateDraft(cfg, sel, &cart.TerminalCart{}, nil)

	require.NotNil(t, validation)
	assert.True(t, validation.EmptyCart)
	assert.True(t, validation.MissingCustomer)
	assert.True(t, validation.MissingLocation)
	assert.Equal(t, []string{"guests"}, validation.MissingFields)
}
