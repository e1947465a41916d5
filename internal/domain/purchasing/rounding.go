package purchasing

import "github.com/shopspring/decimal"

// Política de redondeo única para todo el cálculo de compras e inventario:
// costos unitarios a 3 decimales, montos/totales a 2. Evita deriva entre
// componentes por redondeos ad hoc.
const (
	unitCostPlaces = 3
	amountPlaces   = 2
)

// RoundUnitCost redondea un costo unitario (3 decimales).
func RoundUnitCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(unitCostPlaces)
}

// RoundAmount redondea un monto o total (2 decimales).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(amountPlaces)
}

// SalePrice calcula el precio de venta a partir de costo y margen %:
// precio = costo + costo * margen/100, redondeado a 2 decimales.
func SalePrice(cost, marginPercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return RoundAmount(cost.Add(cost.Mul(marginPercent).Div(hundred)))
}
