// internal/domain/businessrule/config_test.go
package businessrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasAllBusinessTypes(t *testing.T) {
	registry := NewRegistry()

	types := []BusinessType{
		BusinessTypeRestaurant,
		BusinessTypeBookshop,
		BusinessTypeHardware,
		BusinessTypeSupermarket,
		BusinessTypePharmacy,
		BusinessTypeElectronics,
		BusinessTypeClothing,
		BusinessTypeCafe,
		BusinessTypeRetail,
	}

	for _, businessType := range types {
		cfg, err := registry.Get(businessType)
		require.NoError(t, err, "missing config for %s", businessType)
		assert.Equal(t, businessType, cfg.BusinessType)
		assert.NotEmpty(t, cfg.OrderTypes, "%s must allow at least one order type", businessType)
		assert.GreaterOrEqual(t, cfg.DefaultDiscountRate, 0.0)
		assert.Less(t, cfg.DefaultDiscountRate, 1.0)
	}
}

func TestRegistryUnknownType(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("laundromat")
	assert.Error(t, err)
}

func TestIsOrderTypeAllowed(t *testing.T) {
	registry := NewRegistry()
	restaurant, err := registry.Get(BusinessTypeRestaurant)
	require.NoError(t, err)

	assert.True(t, IsOrderTypeAllowed(restaurant, OrderTypeDineIn))
	assert.True(t, IsOrderTypeAllowed(restaurant, OrderTypeDelivery))
	assert.False(t, IsOrderTypeAllowed(restaurant, OrderTypeShipToHome))
}

func TestRequiresLocationFor(t *testing.T) {
	registry := NewRegistry()

	restaurant, err := registry.Get(BusinessTypeRestaurant)
	require.NoError(t, err)
	assert.True(t, RequiresLocationFor(restaurant, OrderTypeDineIn))

	// Bookshop never requires a location
	bookshop, err := registry.Get(BusinessTypeBookshop)
	require.NoError(t, err)
	assert.False(t, RequiresLocationFor(bookshop, OrderTypeInStore))

	// Ship to home is exempt even when the business requires locations
	supermarket, err := registry.Get(BusinessTypeSupermarket)
	require.NoError(t, err)
	assert.True(t, RequiresLocationFor(supermarket, OrderTypeCurbside))
	assert.False(t, RequiresLocationFor(supermarket, OrderTypeShipToHome))
	assert.False(t, RequiresLocationFor(supermarket, OrderTypeOnline))
}

func TestMissingRequiredFields(t *testing.T) {
	registry := NewRegistry()
	cafe, err := registry.Get(BusinessTypeCafe)
	require.NoError(t, err)

	missing := MissingRequiredFields(cafe, map[string]string{})
	assert.Equal(t, []string{"customer_name"}, missing)

	missing = MissingRequiredFields(cafe, map[string]string{"customer_name": "Ana"})
	assert.Empty(t, missing)

	// Optional fields never show up as missing
	bookshop, err := registry.Get(BusinessTypeBookshop)
	require.NoError(t, err)
	assert.Empty(t, MissingRequiredFields(bookshop, map[string]string{}))
}

func TestApplyBusinessTypeResetsSelections(t *testing.T) {
	registry := NewRegistry()

	restaurant, err := registry.Get(BusinessTypeRestaurant)
	require.NoError(t, err)

	sel := &Selection{}
	sel.ApplyBusinessType(restaurant)
	sel.OrderType = OrderTypeDelivery
	sel.LocationID = "table_2a"
	sel.CustomFieldValues = map[string]string{"customer_name": "Ana"}

	// Switching to bookshop must reset order type to its first allowed
	// type and clear config-dependent selections
	bookshop, err := registry.Get(BusinessTypeBookshop)
	require.NoError(t, err)
	sel.ApplyBusinessType(bookshop)

	assert.Equal(t, BusinessTypeBookshop, sel.BusinessType)
	assert.Equal(t, OrderTypeInStore, sel.OrderType)
	assert.Empty(t, sel.LocationID)
	assert.Empty(t, sel.CustomFieldValues)
}
