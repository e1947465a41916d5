package entity

import "time"

// Supplier representa un proveedor al que se le registran compras.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // RUC/NIT
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
