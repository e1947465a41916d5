package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfarias/backoffice-api/internal/application/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios de la compra atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Un timeout del contexto aborta y revierte igual que una falla de
// validación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	existenceRepo repository.ExistenceRepository,
	kardexRepo repository.KardexRepository,
	auditRepo repository.PriceAuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRepository(tx)
	productRepo := NewProductRepository(tx)
	existenceRepo := NewExistenceRepository(tx)
	kardexRepo := NewKardexRepository(tx)
	auditRepo := NewPriceAuditRepository(tx)

	if err := fn(purchaseRepo, productRepo, existenceRepo, kardexRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
