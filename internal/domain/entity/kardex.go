package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypePurchase   = "PURCHASE"
	MovementTypeSale       = "SALE"
	MovementTypeAdjustment = "ADJUSTMENT"
)

// KardexEntry es una fila del ledger de movimientos, solo-inserción (append-only).
// Existe en dos alcances: general (por producto, DepositID vacío) y local
// (por producto y depósito).
// Invariantes: Closing == Opening + Entry - Exit, y el Opening de cada fila
// es igual al Closing de la fila inmediatamente anterior del mismo alcance.
type KardexEntry struct {
	ID           string
	ProductID    string
	DepositID    string // vacío en el kardex general
	MovementType string
	Document     string // referencia al documento (nro de factura de compra)
	Opening      decimal.Decimal
	Entry        decimal.Decimal
	Exit         decimal.Decimal
	Closing      decimal.Decimal
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
	Date         time.Time
	CreatedAt    time.Time
	CreatedBy    string
}
