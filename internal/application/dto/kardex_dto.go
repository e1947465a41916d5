package dto

import "github.com/shopspring/decimal"

// KardexEntryDTO fila del kardex para consultas.
type KardexEntryDTO struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"id_producto"`
	DepositID    string          `json:"id_deposito,omitempty"`
	MovementType string          `json:"tipo_movimiento"`
	Document     string          `json:"documento"`
	Opening      decimal.Decimal `json:"saldo_inicial"`
	Entry        decimal.Decimal `json:"entrada"`
	Exit         decimal.Decimal `json:"salida"`
	Closing      decimal.Decimal `json:"saldo_final"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	Date         string          `json:"fecha"`
}

// ExistenceDTO existencia por producto, depósito y lote.
type ExistenceDTO struct {
	ProductID    string          `json:"id_producto"`
	DepositID    string          `json:"id_deposito"`
	LotNumber    string          `json:"nro_lote"`
	Quantity     decimal.Decimal `json:"cantidad"`
	MinStock     decimal.Decimal `json:"stock_minimo"`
	BelowMinimum bool            `json:"bajo_minimo"`
}

// PriceAuditDTO registro de auditoría de precios.
type PriceAuditDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"id_producto"`
	UserID    string          `json:"id_usuario"`
	OldCost   decimal.Decimal `json:"costo_anterior"`
	NewCost   decimal.Decimal `json:"costo_nuevo"`
	OldMargin decimal.Decimal `json:"margen_anterior"`
	NewMargin decimal.Decimal `json:"margen_nuevo"`
	OldPrice  decimal.Decimal `json:"precio_anterior"`
	NewPrice  decimal.Decimal `json:"precio_nuevo"`
	CreatedAt string          `json:"fecha"`
}
