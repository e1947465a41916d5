package postgres

import (
	"context"
	"fmt"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ repository.PriceAuditRepository = (*PriceAuditRepo)(nil)

// PriceAuditRepo implementación de PriceAuditRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es solo-inserción: no hay Update ni Delete.
type PriceAuditRepo struct {
	q Querier
}

// NewPriceAuditRepository construye el adaptador de auditoría de precios. Pasar pool o tx (Querier).
func NewPriceAuditRepository(q Querier) *PriceAuditRepo {
	return &PriceAuditRepo{q: q}
}

// Create persiste un registro de auditoría de cambio de precios.
func (r *PriceAuditRepo) Create(audit *entity.PriceAudit) error {
	query := `
		INSERT INTO price_audits (id, product_id, user_id, old_cost, new_cost, old_margin, new_margin, old_price, new_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.ProductID, audit.UserID,
		audit.OldCost, audit.NewCost, audit.OldMargin, audit.NewMargin,
		audit.OldPrice, audit.NewPrice, audit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price audit: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de precios de un producto, más reciente primero.
func (r *PriceAuditRepo) ListByProduct(productID string, limit, offset int) ([]*entity.PriceAudit, error) {
	query := `
		SELECT id, product_id, user_id, old_cost, new_cost, old_margin, new_margin, old_price, new_price, created_at
		FROM price_audits WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceAudit
	for rows.Next() {
		var a entity.PriceAudit
		if err := rows.Scan(&a.ID, &a.ProductID, &a.UserID,
			&a.OldCost, &a.NewCost, &a.OldMargin, &a.NewMargin,
			&a.OldPrice, &a.NewPrice, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ExistsForProduct indica si el producto tiene al menos un registro de auditoría.
// Usado para bloquear el borrado físico del producto.
func (r *PriceAuditRepo) ExistsForProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM price_audits WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("price audit exists: %w", err)
	}
	return exists, nil
}
