package entity

import "time"

// Deposit representa un depósito o bodega física donde se almacena inventario.
type Deposit struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
