package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetForUpdate bloquea la fila del producto: serializa la cadena del kardex
// general y la actualización de costo/precio frente a compras concurrentes.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdatePricing(productID string, cost, margin, price decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
