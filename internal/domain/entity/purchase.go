package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. COMMITTED es terminal: las correcciones se hacen con
// compras/ajustes compensatorios, nunca mutando la historia.
const (
	PurchaseStatusCommitted = "COMMITTED"
)

// Purchase representa una factura de compra a proveedor ya confirmada.
// Inmutable una vez confirmada, salvo monto abonado y saldo pendiente.
// Nunca se elimina físicamente (registro financiero).
type Purchase struct {
	ID              string
	SupplierID      string
	InvoiceNumber   string // único por proveedor
	IssueDate       time.Time
	TermDays        int
	DueDate         time.Time
	DepositID       string // depósito destino por defecto de los lotes
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal // descuento global %
	FixedDiscount   decimal.Decimal
	ExtraDiscount   decimal.Decimal
	Charges         decimal.Decimal
	AmountPaid      decimal.Decimal
	Total           decimal.Decimal
	Balance         decimal.Decimal // saldo pendiente
	Status          string
	CreatedAt       time.Time
	CreatedBy       string
}

// PurchaseLine es una línea de compra: cantidad y costos de un producto.
// Invariante: Quantity * BaseUnitCost == Subtotal (antes de ajustes).
type PurchaseLine struct {
	ID             string
	PurchaseID     string
	ProductID      string
	Quantity       decimal.Decimal
	BaseUnitCost   decimal.Decimal
	UnitDiscount   decimal.Decimal // descuento proporcional por unidad
	UnitCharge     decimal.Decimal // cargo prorrateado por unidad
	LandedUnitCost decimal.Decimal // costo final por unidad (3 decimales)
	Subtotal       decimal.Decimal // Quantity * BaseUnitCost (2 decimales)
}
