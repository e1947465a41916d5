package purchasing

import (
	"context"

	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el registro de una compra
// (cabecera, líneas, lotes, existencias, kardex y auditoría de precios)
// se confirme completo o no se confirme nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		existenceRepo repository.ExistenceRepository,
		kardexRepo repository.KardexRepository,
		auditRepo repository.PriceAuditRepository,
	) error) error
}
