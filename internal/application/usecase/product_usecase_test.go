package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/application/usecase"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.products[p.ID] = p
	return nil
}
func (r *memProductRepo) GetByID(id string) (*entity.Product, error)      { return r.products[id], nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error)    { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error                  { return nil }
func (r *memProductRepo) UpdatePricing(productID string, cost, margin, price decimal.Decimal) error {
	return nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Delete(id string) error                            { delete(r.products, id); return nil }

type memAuditRepo struct {
	audits []*entity.PriceAudit
}

func (r *memAuditRepo) Create(a *entity.PriceAudit) error { r.audits = append(r.audits, a); return nil }
func (r *memAuditRepo) ListByProduct(productID string, limit, offset int) ([]*entity.PriceAudit, error) {
	return r.audits, nil
}
func (r *memAuditRepo) ExistsForProduct(productID string) (bool, error) {
	for _, a := range r.audits {
		if a.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func TestCrearProducto_PrecioDesdeCostoYMargen(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProductRepo{products: map[string]*entity.Product{}}, &memAuditRepo{})

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:    "SKU-001",
		Name:   "Ibuprofeno 400mg",
		Cost:   dec("4.00"),
		Margin: dec("20"),
	})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(dec("4.80")), "precio: %s", out.Price)
}

func TestEliminarProducto_SinHistorialDePrecios(t *testing.T) {
	repo := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "SKU-001", Name: "Ibuprofeno 400mg"},
	}}
	uc := usecase.NewProductUseCase(repo, &memAuditRepo{})

	require.NoError(t, uc.Delete(context.Background(), "p1"))
	assert.Empty(t, repo.products)
}

func TestEliminarProducto_BloqueadoPorAuditoria(t *testing.T) {
	repo := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "SKU-001", Name: "Ibuprofeno 400mg"},
	}}
	audits := &memAuditRepo{audits: []*entity.PriceAudit{{ID: "a1", ProductID: "p1"}}}
	uc := usecase.NewProductUseCase(repo, audits)

	err := uc.Delete(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPriceAuditLock),
		"el producto con historial de precios no puede eliminarse")
	assert.Len(t, repo.products, 1, "el producto debe seguir existiendo")
}

func TestEliminarProducto_NoExiste(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProductRepo{products: map[string]*entity.Product{}}, &memAuditRepo{})

	err := uc.Delete(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
