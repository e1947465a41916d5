package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Cost es el costo de ficha vigente; Price = Cost + Cost * Margin/100.
// El stock no vive aquí: se maneja por depósito/lote en DepositExistence.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Cost        decimal.Decimal // costo de ficha vigente
	Margin      decimal.Decimal // margen %
	Price       decimal.Decimal // precio de venta
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
