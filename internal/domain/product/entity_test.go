// internal/domain/product/entity_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFor(t *testing.T) {
	p := &Product{
		ID:    "espresso",
		Price: 350,
		Variants: []Variant{
			{ID: "double", Name: "Double", Price: 450},
			{ID: "single", Name: "Single"}, // no override, base price applies
		},
	}

	assert.Equal(t, int64(350), p.PriceFor(""))
	assert.Equal(t, int64(450), p.PriceFor("double"))
	assert.Equal(t, int64(350), p.PriceFor("single"))
	assert.Equal(t, int64(350), p.PriceFor("unknown"))
}
