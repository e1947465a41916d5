package purchasing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfarias/backoffice-api/internal/domain/purchasing"
)

// precio = costo + costo * margen/100, a 2 decimales.
func TestSalePrice(t *testing.T) {
	cases := []struct {
		cost, margin, want string
	}{
		{"4.00", "20", "4.80"},
		{"4.70", "20", "5.64"},
		{"10", "0", "10.00"},
		{"3.333", "33", "4.43"},
	}
	for _, tc := range cases {
		got := purchasing.SalePrice(dec(tc.cost), dec(tc.margin))
		assert.True(t, got.Equal(dec(tc.want)), "SalePrice(%s, %s) = %s, esperado %s", tc.cost, tc.margin, got, tc.want)
	}
}

func TestRoundUnitCost(t *testing.T) {
	assert.True(t, purchasing.RoundUnitCost(dec("4.6999")).Equal(dec("4.700")))
	assert.True(t, purchasing.RoundUnitCost(dec("1.23456")).Equal(dec("1.235")))
}

func TestRoundAmount(t *testing.T) {
	assert.True(t, purchasing.RoundAmount(dec("50.005")).Equal(dec("50.01")))
	assert.True(t, purchasing.RoundAmount(dec("50")).Equal(dec("50.00")))
}
