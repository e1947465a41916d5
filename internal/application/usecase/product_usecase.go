package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	domainpurch "github.com/mfarias/backoffice-api/internal/domain/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El borrado físico está bloqueado para
// productos con historial de precios: la auditoría es inmutable.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	auditRepo   repository.PriceAuditRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, auditRepo repository.PriceAuditRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, auditRepo: auditRepo}
}

// Create registra un producto nuevo. El precio inicial sale de costo y margen.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" {
		return nil, domain.Validation("sku", "el SKU es obligatorio")
	}
	if in.Name == "" {
		return nil, domain.Validation("nombre", "el nombre es obligatorio")
	}
	if in.Cost.IsNegative() || in.Margin.IsNegative() {
		return nil, domain.Validation("costo", "costo y margen no pueden ser negativos")
	}

	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Margin:      in.Margin,
		Price:       domainpurch.SalePrice(in.Cost, in.Margin),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza datos descriptivos. Costo, margen y precio cambian solo vía
// compras (quedan auditados), no por esta vía.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	p.Description = in.Description
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina físicamente un producto, salvo que tenga historial de precios:
// en ese caso devuelve un error de dominio, no una falla genérica.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	locked, err := uc.auditRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if locked {
		return domain.ErrPriceAuditLock
	}
	return uc.productRepo.Delete(id)
}

// PriceHistory lista la auditoría de precios del producto.
func (uc *ProductUseCase) PriceHistory(ctx context.Context, productID string, limit, offset int) ([]dto.PriceAuditDTO, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	audits, err := uc.auditRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceAuditDTO, 0, len(audits))
	for _, a := range audits {
		out = append(out, dto.PriceAuditDTO{
			ID:        a.ID,
			ProductID: a.ProductID,
			UserID:    a.UserID,
			OldCost:   a.OldCost,
			NewCost:   a.NewCost,
			OldMargin: a.OldMargin,
			NewMargin: a.NewMargin,
			OldPrice:  a.OldPrice,
			NewPrice:  a.NewPrice,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Cost:        p.Cost,
		Margin:      p.Margin,
		Price:       p.Price,
	}
}
