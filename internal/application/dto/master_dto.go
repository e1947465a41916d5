package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /productos.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Cost        decimal.Decimal `json:"costo"`
	Margin      decimal.Decimal `json:"margen"`
}

// UpdateProductRequest body para PUT /productos/:id. Costo/margen/precio no se
// editan por acá: cambian vía compras y quedan auditados.
type UpdateProductRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// ProductResponse producto para consultas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Cost        decimal.Decimal `json:"costo"`
	Margin      decimal.Decimal `json:"margen"`
	Price       decimal.Decimal `json:"precio"`
}

// CreateDepositRequest body para POST /depositos.
type CreateDepositRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}

// CreateSupplierRequest body para POST /proveedores.
type CreateSupplierRequest struct {
	Name  string `json:"nombre"`
	TaxID string `json:"ruc"`
	Phone string `json:"telefono"`
	Email string `json:"email"`
}

// RegisterUserRequest body para POST /auth/register.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Role     string `json:"rol"`
}

// LoginRequest body para POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"rol"`
}

// DepositResponse depósito para consultas.
type DepositResponse struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}

// SupplierResponse proveedor para consultas.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	TaxID string `json:"ruc"`
	Phone string `json:"telefono"`
	Email string `json:"email"`
}
