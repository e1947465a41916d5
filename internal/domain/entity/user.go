package entity

import "time"

// User representa un usuario del back office. El ID del usuario autenticado se
// inyecta en cada compra y auditoría de precios como actor.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "compras" | "consulta"
	CreatedAt    time.Time
}
