package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
	domainpurch "github.com/mfarias/backoffice-api/internal/domain/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// applyPriceAudit compara el costo final de la compra (y el margen nuevo, si la
// compra lo trae) contra los valores vigentes del producto. Si costo, margen o
// precio resultante cambian, escribe el registro de auditoría antes/después y
// actualiza la ficha del producto. Devuelve nil si nada cambió.
//
// Debe ejecutarse dentro de la transacción de la compra, con la fila del
// producto bloqueada.
func applyPriceAudit(
	auditRepo repository.PriceAuditRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	landedCost decimal.Decimal,
	newMargin *decimal.Decimal,
	userID string,
	now time.Time,
) (*entity.PriceAudit, error) {
	margin := product.Margin
	if newMargin != nil {
		margin = *newMargin
	}
	newPrice := domainpurch.SalePrice(landedCost, margin)

	if landedCost.Equal(product.Cost) && margin.Equal(product.Margin) && newPrice.Equal(product.Price) {
		return nil, nil
	}

	audit := &entity.PriceAudit{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    userID,
		OldCost:   product.Cost,
		NewCost:   landedCost,
		OldMargin: product.Margin,
		NewMargin: margin,
		OldPrice:  product.Price,
		NewPrice:  newPrice,
		CreatedAt: now,
	}
	if err := auditRepo.Create(audit); err != nil {
		return nil, err
	}
	if err := productRepo.UpdatePricing(product.ID, landedCost, margin, newPrice); err != nil {
		return nil, err
	}

	// Mantener la entidad en memoria alineada con lo persistido.
	product.Cost = landedCost
	product.Margin = margin
	product.Price = newPrice
	product.UpdatedAt = now
	return audit, nil
}
