package purchasing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/purchasing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Caso de referencia: línea {10, 5.00}, descuento 10%, cargos 2.00 →
// descuento unitario 0.50, cargo unitario 0.20, costo final 4.70, subtotal 50.00.
func TestAllocateCosts_FacturaDeReferencia(t *testing.T) {
	lines := []purchasing.CostLine{
		{ProductID: "p1", Quantity: dec("10"), BaseUnitCost: dec("5.00")},
	}
	adj := purchasing.InvoiceAdjustments{
		DiscountPercent: dec("10"),
		FixedDiscount:   decimal.Zero,
		Charges:         dec("2.00"),
	}

	out, err := purchasing.AllocateCosts(lines, adj)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)

	l := out.Lines[0]
	assert.True(t, l.UnitDiscount.Equal(dec("0.50")), "descuento unitario: %s", l.UnitDiscount)
	assert.True(t, l.UnitCharge.Equal(dec("0.20")), "cargo unitario: %s", l.UnitCharge)
	assert.True(t, l.LandedUnitCost.Equal(dec("4.70")), "costo final: %s", l.LandedUnitCost)
	assert.True(t, l.Subtotal.Equal(dec("50.00")), "subtotal de línea: %s", l.Subtotal)
	assert.True(t, out.Subtotal.Equal(dec("50.00")), "subtotal factura: %s", out.Subtotal)
	// total = 50 - 10% - 0 + 2.00
	assert.True(t, out.Total.Equal(dec("47.00")), "total factura: %s", out.Total)
}

// La suma de subtotales de línea debe igualar el subtotal de la factura (2 decimales).
func TestAllocateCosts_SumaDeSubtotales(t *testing.T) {
	lines := []purchasing.CostLine{
		{ProductID: "p1", Quantity: dec("3"), BaseUnitCost: dec("12.335")},
		{ProductID: "p2", Quantity: dec("7"), BaseUnitCost: dec("1.99")},
		{ProductID: "p3", Quantity: dec("2"), BaseUnitCost: dec("250")},
	}
	out, err := purchasing.AllocateCosts(lines, purchasing.InvoiceAdjustments{})
	require.NoError(t, err)

	var sum decimal.Decimal
	for _, l := range out.Lines {
		sum = sum.Add(l.Subtotal)
	}
	assert.True(t, sum.Equal(out.Subtotal), "Σ subtotales %s != subtotal %s", sum, out.Subtotal)
}

// Los cargos se reparten por unidad física, no por valor de línea.
func TestAllocateCosts_CargoPorUnidadFisica(t *testing.T) {
	lines := []purchasing.CostLine{
		{ProductID: "barato", Quantity: dec("8"), BaseUnitCost: dec("1.00")},
		{ProductID: "caro", Quantity: dec("2"), BaseUnitCost: dec("100.00")},
	}
	adj := purchasing.InvoiceAdjustments{Charges: dec("5.00")}
	out, err := purchasing.AllocateCosts(lines, adj)
	require.NoError(t, err)

	// 5.00 / 10 unidades = 0.50 por unidad en ambas líneas
	assert.True(t, out.Lines[0].UnitCharge.Equal(dec("0.5")))
	assert.True(t, out.Lines[1].UnitCharge.Equal(dec("0.5")))
	assert.True(t, out.Lines[0].LandedUnitCost.Equal(dec("1.50")))
	assert.True(t, out.Lines[1].LandedUnitCost.Equal(dec("100.50")))
}

// El cálculo es idempotente: dos ejecuciones con la misma entrada dan la misma salida.
func TestAllocateCosts_EsDeterminista(t *testing.T) {
	lines := []purchasing.CostLine{
		{ProductID: "p1", Quantity: dec("7"), BaseUnitCost: dec("3.333")},
		{ProductID: "p2", Quantity: dec("11"), BaseUnitCost: dec("0.07")},
	}
	adj := purchasing.InvoiceAdjustments{
		DiscountPercent: dec("2.5"),
		FixedDiscount:   dec("1.10"),
		Charges:         dec("9.99"),
	}

	a, err := purchasing.AllocateCosts(lines, adj)
	require.NoError(t, err)
	b, err := purchasing.AllocateCosts(lines, adj)
	require.NoError(t, err)

	require.Equal(t, len(a.Lines), len(b.Lines))
	for i := range a.Lines {
		assert.True(t, a.Lines[i].LandedUnitCost.Equal(b.Lines[i].LandedUnitCost))
		assert.True(t, a.Lines[i].Subtotal.Equal(b.Lines[i].Subtotal))
	}
	assert.True(t, a.Total.Equal(b.Total))
}

// Entradas inválidas rechazan el cálculo completo, sin resultado parcial.
func TestAllocateCosts_RechazaEntradasInvalidas(t *testing.T) {
	valid := purchasing.CostLine{ProductID: "p1", Quantity: dec("1"), BaseUnitCost: dec("1")}

	cases := []struct {
		name  string
		lines []purchasing.CostLine
		adj   purchasing.InvoiceAdjustments
	}{
		{"sin líneas", nil, purchasing.InvoiceAdjustments{}},
		{"cantidad cero", []purchasing.CostLine{{ProductID: "p1", Quantity: decimal.Zero, BaseUnitCost: dec("1")}}, purchasing.InvoiceAdjustments{}},
		{"cantidad negativa", []purchasing.CostLine{{ProductID: "p1", Quantity: dec("-2"), BaseUnitCost: dec("1")}}, purchasing.InvoiceAdjustments{}},
		{"costo cero", []purchasing.CostLine{{ProductID: "p1", Quantity: dec("1"), BaseUnitCost: decimal.Zero}}, purchasing.InvoiceAdjustments{}},
		{"descuento mayor a 100", []purchasing.CostLine{valid}, purchasing.InvoiceAdjustments{DiscountPercent: dec("101")}},
		{"descuento negativo", []purchasing.CostLine{valid}, purchasing.InvoiceAdjustments{DiscountPercent: dec("-1")}},
		{"cargos negativos", []purchasing.CostLine{valid}, purchasing.InvoiceAdjustments{Charges: dec("-0.01")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := purchasing.AllocateCosts(tc.lines, tc.adj)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe ser error de validación: %v", err)
		})
	}
}

// Una línea inválida entre varias rechaza toda la factura.
func TestAllocateCosts_LineaInvalidaRechazaTodo(t *testing.T) {
	lines := []purchasing.CostLine{
		{ProductID: "p1", Quantity: dec("5"), BaseUnitCost: dec("2.00")},
		{ProductID: "p2", Quantity: dec("0"), BaseUnitCost: dec("3.00")},
	}
	out, err := purchasing.AllocateCosts(lines, purchasing.InvoiceAdjustments{})
	assert.Nil(t, out)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[1].Cant", vErr.Field)
}
