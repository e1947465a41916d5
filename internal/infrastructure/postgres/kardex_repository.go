package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación de KardexRepository sobre PostgreSQL (usable con pool o tx).
// Dos tablas solo-inserción: kardex_general (por producto) y kardex_deposito
// (por producto y depósito). La columna seq (BIGSERIAL) ordena la cadena.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador del kardex. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// AppendGeneral inserta un movimiento en el kardex general del producto.
func (r *KardexRepo) AppendGeneral(e *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex_general (id, product_id, movement_type, document, opening, entry, exit, closing, unit_cost, unit_price, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, e.MovementType, e.Document,
		e.Opening, e.Entry, e.Exit, e.Closing, e.UnitCost, e.UnitPrice,
		e.Date, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert kardex general: %w", err)
	}
	return nil
}

// AppendLocal inserta un movimiento en el kardex del producto en un depósito.
func (r *KardexRepo) AppendLocal(e *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex_deposito (id, product_id, deposit_id, movement_type, document, opening, entry, exit, closing, unit_cost, unit_price, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, e.DepositID, e.MovementType, e.Document,
		e.Opening, e.Entry, e.Exit, e.Closing, e.UnitCost, e.UnitPrice,
		e.Date, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert kardex deposito: %w", err)
	}
	return nil
}

// LastGeneralClosing devuelve el saldo de cierre del último movimiento general
// del producto. Cero si el producto no tiene movimientos.
func (r *KardexRepo) LastGeneralClosing(productID string) (decimal.Decimal, error) {
	query := `
		SELECT closing FROM kardex_general
		WHERE product_id = $1 ORDER BY seq DESC LIMIT 1`
	var closing decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&closing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("last general closing: %w", err)
	}
	return closing, nil
}

// LastLocalClosing devuelve el saldo de cierre del último movimiento del
// producto en el depósito. Cero si no hay movimientos en ese depósito.
func (r *KardexRepo) LastLocalClosing(productID, depositID string) (decimal.Decimal, error) {
	query := `
		SELECT closing FROM kardex_deposito
		WHERE product_id = $1 AND deposit_id = $2 ORDER BY seq DESC LIMIT 1`
	var closing decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, depositID).Scan(&closing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("last local closing: %w", err)
	}
	return closing, nil
}

// ListGeneral lista movimientos del kardex general de un producto, con rango de
// fechas opcional y paginación, en orden de cadena.
func (r *KardexRepo) ListGeneral(productID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `
		SELECT id, product_id, '', movement_type, document, opening, entry, exit, closing, unit_cost, unit_price, date, created_at, created_by
		FROM kardex_general
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY seq LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kardex general: %w", err)
	}
	defer rows.Close()
	return scanKardexEntries(rows)
}

// ListLocal lista movimientos del kardex de un producto en un depósito.
func (r *KardexRepo) ListLocal(productID, depositID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `
		SELECT id, product_id, deposit_id, movement_type, document, opening, entry, exit, closing, unit_cost, unit_price, date, created_at, created_by
		FROM kardex_deposito
		WHERE product_id = $1 AND deposit_id = $2
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY seq LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, productID, depositID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kardex deposito: %w", err)
	}
	defer rows.Close()
	return scanKardexEntries(rows)
}

func scanKardexEntries(rows pgx.Rows) ([]*entity.KardexEntry, error) {
	var list []*entity.KardexEntry
	for rows.Next() {
		var e entity.KardexEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.DepositID, &e.MovementType, &e.Document,
			&e.Opening, &e.Entry, &e.Exit, &e.Closing, &e.UnitCost, &e.UnitPrice,
			&e.Date, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan kardex entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
