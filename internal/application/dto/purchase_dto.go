package dto

import "github.com/shopspring/decimal"

// RegisterPurchaseRequest body para POST /compras. Los nombres de campo siguen
// el contrato del asistente de compras de la UI.
//
// Los campos calculados que manda el cliente (Descuento_Unitario, Costo_Ficha,
// Subtotal_Linea y el bloque totales_cargos salvo los parámetros de entrada) son
// informativos: el servidor recalcula todo y nunca confía en valores de la UI.
type RegisterPurchaseRequest struct {
	SupplierID      string            `json:"id_proveedor"`
	InvoiceNumber   string            `json:"nro_factura"`
	IssueDate       string            `json:"fecha_emision"` // YYYY-MM-DD
	TermDays        int               `json:"dias_plazo"`
	DueDate         string            `json:"fecha_vencimiento"`
	DepositID       string            `json:"id_deposito_destino"`
	UserID          string            `json:"id_usuario"`
	Totals          PurchaseTotalsDTO `json:"totales_cargos"`
	Items           []PurchaseItemDTO `json:"items"`
	Lots            []PurchaseLotDTO  `json:"detalle_lotes"`
	ConfirmPartials bool              `json:"confirmar_lotes_parciales"`
}

// PurchaseTotalsDTO totales y cargos a nivel de factura.
type PurchaseTotalsDTO struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"porcentaje_descuento_global"`
	FixedDiscount   decimal.Decimal `json:"monto_descuento_fijo"`
	ExtraDiscount   decimal.Decimal `json:"monto_descuento_extra"`
	Charges         decimal.Decimal `json:"cargos_monto"`
	AmountPaid      decimal.Decimal `json:"monto_abonado"`
	Total           decimal.Decimal `json:"total"`
	Balance         decimal.Decimal `json:"saldo_pendiente"`
}

// PurchaseItemDTO una línea de la compra.
type PurchaseItemDTO struct {
	ProductID    string           `json:"id_producto"`
	Quantity     decimal.Decimal  `json:"Cant"`
	BaseUnitCost decimal.Decimal  `json:"Costo_Base"`
	UnitDiscount decimal.Decimal  `json:"Descuento_Unitario"`
	UnitCharge   decimal.Decimal  `json:"Cargo_Unitario"`
	CardCost     decimal.Decimal  `json:"Costo_Ficha"`
	LineSubtotal decimal.Decimal  `json:"Subtotal_Linea"`
	NewMargin    *decimal.Decimal `json:"margen_nuevo,omitempty"` // si viene, recalcula el precio de venta
}

// PurchaseLotDTO un lote declarado para un producto de la compra.
// Si id_deposito viene vacío se usa el depósito destino de la cabecera.
type PurchaseLotDTO struct {
	ProductID  string          `json:"id_producto"`
	LotNumber  string          `json:"nro_lote"`
	DepositID  string          `json:"id_deposito,omitempty"`
	Expiration string          `json:"fecha_vencimiento"` // YYYY-MM-DD
	Quantity   decimal.Decimal `json:"cantidad"`
	LotCost    decimal.Decimal `json:"costo_lote"`
}

// PurchaseRegisteredDTO data de respuesta al confirmar una compra.
type PurchaseRegisteredDTO struct {
	ID       string          `json:"id"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
	Balance  decimal.Decimal `json:"saldo_pendiente"`
	Warnings []string        `json:"advertencias,omitempty"`
}

// PurchaseResponse cabecera de compra para consultas.
type PurchaseResponse struct {
	ID              string                 `json:"id"`
	SupplierID      string                 `json:"id_proveedor"`
	InvoiceNumber   string                 `json:"nro_factura"`
	IssueDate       string                 `json:"fecha_emision"`
	DueDate         string                 `json:"fecha_vencimiento"`
	TermDays        int                    `json:"dias_plazo"`
	DepositID       string                 `json:"id_deposito_destino"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	DiscountPercent decimal.Decimal        `json:"porcentaje_descuento_global"`
	FixedDiscount   decimal.Decimal        `json:"monto_descuento_fijo"`
	ExtraDiscount   decimal.Decimal        `json:"monto_descuento_extra"`
	Charges         decimal.Decimal        `json:"cargos_monto"`
	AmountPaid      decimal.Decimal        `json:"monto_abonado"`
	Total           decimal.Decimal        `json:"total"`
	Balance         decimal.Decimal        `json:"saldo_pendiente"`
	Status          string                 `json:"estado"`
	Lines           []PurchaseLineResponse `json:"items,omitempty"`
	Lots            []PurchaseLotResponse  `json:"detalle_lotes,omitempty"`
}

// PurchaseLineResponse línea de compra persistida.
type PurchaseLineResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"id_producto"`
	Quantity       decimal.Decimal `json:"Cant"`
	BaseUnitCost   decimal.Decimal `json:"Costo_Base"`
	UnitDiscount   decimal.Decimal `json:"Descuento_Unitario"`
	UnitCharge     decimal.Decimal `json:"Cargo_Unitario"`
	LandedUnitCost decimal.Decimal `json:"Costo_Ficha"`
	Subtotal       decimal.Decimal `json:"Subtotal_Linea"`
}

// PurchaseLotResponse lote persistido.
type PurchaseLotResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"id_producto"`
	DepositID  string          `json:"id_deposito"`
	LotNumber  string          `json:"nro_lote"`
	Expiration string          `json:"fecha_vencimiento"`
	Quantity   decimal.Decimal `json:"cantidad"`
	UnitCost   decimal.Decimal `json:"costo_lote"`
}

// UpdatePaymentRequest body para PUT /compras/:id/pago. Única mutación permitida
// sobre una compra confirmada.
type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"monto"`
}
