// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCart() *TerminalCart {
	return &TerminalCart{TerminalID: "term-1", Lines: []Line{}}
}

func TestAddMergesByIdentity(t *testing.T) {
	tc := newCart()

	tc.add(Line{ProductID: "p1", VariantID: "v1", Name: "Burger", UnitPrice: 1000, Quantity: 2})
	tc.add(Line{ProductID: "p1", VariantID: "v1", Name: "Burger", UnitPrice: 1000, Quantity: 3})

	require.Len(t, tc.Lines, 1, "same identity must merge, never duplicate rows")
	assert.Equal(t, 5, tc.Lines[0].Quantity)
}

func TestAddDistinctVariantsStaySeparate(t *testing.T) {
	tc := newCart()

	tc.add(Line{ProductID: "p1", VariantID: "v1", Quantity: 1})
	tc.add(Line{ProductID: "p1", VariantID: "v2", Quantity: 1})
	tc.add(Line{ProductID: "p1", Quantity: 1})

	assert.Len(t, tc.Lines, 3)
}

func TestAddZeroQuantityIsNoOp(t *testing.T) {
	tc := newCart()

	tc.add(Line{ProductID: "p1", Quantity: 0})
	tc.add(Line{ProductID: "p1", Quantity: -2})

	assert.Empty(t, tc.Lines)
}

func TestAddRefreshesUnitPrice(t *testing.T) {
	tc := newCart()

	tc.add(Line{ProductID: "p1", UnitPrice: 1000, Quantity: 1})
	tc.add(Line{ProductID: "p1", UnitPrice: 1200, Quantity: 1})

	require.Len(t, tc.Lines, 1)
	assert.Equal(t, int64(1200), tc.Lines[0].UnitPrice)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	tc := newCart()
	tc.add(Line{ProductID: "p1", Quantity: 2})

	ok := tc.setQuantity(LineKey("p1", ""), 0)

	assert.True(t, ok)
	assert.Empty(t, tc.Lines)
}

func TestSetQuantityIsNotAdditive(t *testing.T) {
	tc := newCart()
	tc.add(Line{ProductID: "p1", Quantity: 2})

	ok := tc.setQuantity(LineKey("p1", ""), 7)

	assert.True(t, ok)
	require.Len(t, tc.Lines, 1)
	assert.Equal(t, 7, tc.Lines[0].Quantity)
}

func TestSetQuantityUnknownKey(t *testing.T) {
	tc := newCart()

	assert.False(t, tc.setQuantity("missing", 1))
}

func TestRemoveIsIdempotent(t *testing.T) {
	tc := newCart()
	tc.add(Line{ProductID: "p1", Quantity: 1})

	tc.remove(LineKey("p1", ""))
	tc.remove(LineKey("p1", ""))

	assert.Empty(t, tc.Lines)
}

func TestClear(t *testing.T) {
	tc := newCart()
	tc.add(Line{ProductID: "p1", Quantity: 1})
	tc.add(Line{ProductID: "p2", Quantity: 4})

	tc.clear()

	assert.True(t, tc.IsEmpty())
	assert.Equal(t, 0, tc.TotalQuantity())
}
