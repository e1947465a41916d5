package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot es una subdivisión fechada de una línea de compra, atada a un depósito.
// La fecha de vencimiento debe ser estrictamente posterior a la fecha de emisión
// de la compra al momento de crearse.
type Lot struct {
	ID             string
	PurchaseLineID string
	ProductID      string
	DepositID      string
	LotNumber      string
	Expiration     time.Time
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal // costo final por unidad de la línea
}
