package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositExistence es la existencia actual de un producto por depósito y lote.
// Quantity es derivada: solo la mutan los movimientos del ledger, nunca ediciones
// directas de la UI.
type DepositExistence struct {
	ProductID string
	DepositID string
	LotNumber string
	Quantity  decimal.Decimal
	MinStock  decimal.Decimal // umbral de stock mínimo
	UpdatedAt time.Time
}

// BelowMinimum indica si la existencia está por debajo del umbral configurado.
func (e *DepositExistence) BelowMinimum() bool {
	return e.MinStock.GreaterThan(decimal.Zero) && e.Quantity.LessThan(e.MinStock)
}
