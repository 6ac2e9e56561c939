// internal/domain/customer/service_test.go
package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsForSale(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		want  int
	}{
		{"one point per major unit", 1850, 18},
		{"below one major unit earns nothing", 99, 0},
		{"exact major unit", 100, 1},
		{"zero total", 0, 0},
		{"negative total", -500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsForSale(tt.total))
		})
	}
}
