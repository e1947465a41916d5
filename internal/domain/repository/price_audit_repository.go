package repository

import "github.com/mfarias/backoffice-api/internal/domain/entity"

// PriceAuditRepository define el puerto de la auditoría de precios (solo-inserción).
type PriceAuditRepository interface {
	Create(audit *entity.PriceAudit) error
	ListByProduct(productID string, limit, offset int) ([]*entity.PriceAudit, error)
	ExistsForProduct(productID string) (bool, error)
}
