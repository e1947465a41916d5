package purchasing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain"
)

// CostLine es la entrada mínima por línea para el prorrateo de costos.
type CostLine struct {
	ProductID    string
	Quantity     decimal.Decimal
	BaseUnitCost decimal.Decimal
}

// InvoiceAdjustments son los ajustes a nivel de factura: descuento global %,
// descuento fijo y cargos (fletes, seguros, etc.).
type InvoiceAdjustments struct {
	DiscountPercent decimal.Decimal
	FixedDiscount   decimal.Decimal
	Charges         decimal.Decimal
}

// AllocatedLine es una línea con costos prorrateados.
type AllocatedLine struct {
	ProductID      string
	Quantity       decimal.Decimal
	BaseUnitCost   decimal.Decimal
	UnitDiscount   decimal.Decimal // BaseUnitCost * descuento% / 100
	UnitCharge     decimal.Decimal // cargos / Σ cantidades
	LandedUnitCost decimal.Decimal // (base - descuento) + cargo, 3 decimales
	Subtotal       decimal.Decimal // Quantity * BaseUnitCost, 2 decimales
}

// CostAllocation es el resultado completo del prorrateo.
type CostAllocation struct {
	Lines    []AllocatedLine
	Subtotal decimal.Decimal // Σ subtotales de línea, 2 decimales
	Total    decimal.Decimal // subtotal - descuentos + cargos, 2 decimales
}

// AllocateCosts calcula el costo final por unidad de cada línea a partir de los
// ajustes de la factura. Es una función pura y determinista: la misma entrada
// produce siempre la misma salida redondeada.
//
// El descuento porcentual es proporcional por unidad (no lo afecta el descuento
// fijo); los cargos se reparten por unidad física entre todas las líneas.
// Cualquier línea inválida rechaza el cálculo completo antes de producir nada.
func AllocateCosts(lines []CostLine, adj InvoiceAdjustments) (*CostAllocation, error) {
	if len(lines) == 0 {
		return nil, domain.Validation("items", "la compra debe tener al menos una línea")
	}
	hundred := decimal.NewFromInt(100)
	if adj.DiscountPercent.LessThan(decimal.Zero) || adj.DiscountPercent.GreaterThan(hundred) {
		return nil, domain.Validation("porcentaje_descuento_global", "debe estar entre 0 y 100")
	}
	if adj.FixedDiscount.LessThan(decimal.Zero) {
		return nil, domain.Validation("monto_descuento_fijo", "no puede ser negativo")
	}
	if adj.Charges.LessThan(decimal.Zero) {
		return nil, domain.Validation("cargos_monto", "no puede ser negativo")
	}

	var subtotal, totalQty decimal.Decimal
	for i, l := range lines {
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.Validation(fmt.Sprintf("items[%d].Cant", i), "la cantidad debe ser mayor a cero")
		}
		if !l.BaseUnitCost.GreaterThan(decimal.Zero) {
			return nil, domain.Validation(fmt.Sprintf("items[%d].Costo_Base", i), "el costo unitario debe ser mayor a cero")
		}
		subtotal = subtotal.Add(l.Quantity.Mul(l.BaseUnitCost))
		totalQty = totalQty.Add(l.Quantity)
	}
	// Σ cantidades == 0 es error de validación, nunca división por cero.
	if !totalQty.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("items", "la cantidad total debe ser mayor a cero")
	}

	chargePerUnit := adj.Charges.Div(totalQty)

	out := &CostAllocation{Lines: make([]AllocatedLine, 0, len(lines))}
	for _, l := range lines {
		unitDiscount := l.BaseUnitCost.Mul(adj.DiscountPercent).Div(hundred)
		landed := RoundUnitCost(l.BaseUnitCost.Sub(unitDiscount).Add(chargePerUnit))
		out.Lines = append(out.Lines, AllocatedLine{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			BaseUnitCost:   l.BaseUnitCost,
			UnitDiscount:   unitDiscount,
			UnitCharge:     chargePerUnit,
			LandedUnitCost: landed,
			Subtotal:       RoundAmount(l.Quantity.Mul(l.BaseUnitCost)),
		})
	}

	globalDiscount := subtotal.Mul(adj.DiscountPercent).Div(hundred)
	out.Subtotal = RoundAmount(subtotal)
	out.Total = RoundAmount(subtotal.Sub(globalDiscount).Sub(adj.FixedDiscount).Add(adj.Charges))
	return out, nil
}
