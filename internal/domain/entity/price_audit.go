package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceAudit registra cada cambio de costo/margen/precio de un producto.
// Los registros son inmutables: nunca se eliminan ni modifican. La existencia de
// al menos un registro bloquea el borrado físico del producto.
type PriceAudit struct {
	ID        string
	ProductID string
	UserID    string
	OldCost   decimal.Decimal
	NewCost   decimal.Decimal
	OldMargin decimal.Decimal
	NewMargin decimal.Decimal
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	CreatedAt time.Time
}
