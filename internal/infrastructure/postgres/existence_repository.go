package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ repository.ExistenceRepository = (*ExistenceRepo)(nil)

// ExistenceRepo implementación de ExistenceRepository sobre PostgreSQL (usable con pool o tx).
type ExistenceRepo struct {
	q Querier
}

// NewExistenceRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewExistenceRepository(q Querier) *ExistenceRepo {
	return &ExistenceRepo{q: q}
}

// Get obtiene la existencia de un producto por depósito y lote.
// Si la fila no existe devuelve una existencia en cero (lote nuevo).
func (r *ExistenceRepo) Get(productID, depositID, lotNumber string) (*entity.DepositExistence, error) {
	query := `
		SELECT product_id, deposit_id, lot_number, quantity, min_stock, updated_at
		FROM deposit_existences WHERE product_id = $1 AND deposit_id = $2 AND lot_number = $3`
	var e entity.DepositExistence
	err := r.q.QueryRow(context.Background(), query, productID, depositID, lotNumber).Scan(
		&e.ProductID, &e.DepositID, &e.LotNumber, &e.Quantity, &e.MinStock, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.DepositExistence{ProductID: productID, DepositID: depositID, LotNumber: lotNumber, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get existence: %w", err)
	}
	return &e, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE).
// Serializa la cadena del kardex local del producto en el depósito.
func (r *ExistenceRepo) GetForUpdate(productID, depositID, lotNumber string) (*entity.DepositExistence, error) {
	query := `
		SELECT product_id, deposit_id, lot_number, quantity, min_stock, updated_at
		FROM deposit_existences WHERE product_id = $1 AND deposit_id = $2 AND lot_number = $3
		FOR UPDATE`
	var e entity.DepositExistence
	err := r.q.QueryRow(context.Background(), query, productID, depositID, lotNumber).Scan(
		&e.ProductID, &e.DepositID, &e.LotNumber, &e.Quantity, &e.MinStock, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.DepositExistence{ProductID: productID, DepositID: depositID, LotNumber: lotNumber, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get existence for update: %w", err)
	}
	return &e, nil
}

// Upsert inserta o actualiza la cantidad en existencia (por producto, depósito y lote).
func (r *ExistenceRepo) Upsert(existence *entity.DepositExistence) error {
	query := `
		INSERT INTO deposit_existences (product_id, deposit_id, lot_number, quantity, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, deposit_id, lot_number)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		existence.ProductID, existence.DepositID, existence.LotNumber, existence.Quantity, existence.MinStock,
	)
	if err != nil {
		return fmt.Errorf("upsert existence: %w", err)
	}
	return nil
}

// ListByDeposit lista existencias de un depósito con paginación.
func (r *ExistenceRepo) ListByDeposit(depositID string, limit, offset int) ([]*entity.DepositExistence, error) {
	query := `
		SELECT product_id, deposit_id, lot_number, quantity, min_stock, updated_at
		FROM deposit_existences WHERE deposit_id = $1
		ORDER BY product_id, lot_number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, depositID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list existences by deposit: %w", err)
	}
	defer rows.Close()
	return scanExistences(rows)
}

// ListByProduct lista las existencias de un producto en todos los depósitos y lotes.
func (r *ExistenceRepo) ListByProduct(productID string) ([]*entity.DepositExistence, error) {
	query := `
		SELECT product_id, deposit_id, lot_number, quantity, min_stock, updated_at
		FROM deposit_existences WHERE product_id = $1
		ORDER BY deposit_id, lot_number`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list existences by product: %w", err)
	}
	defer rows.Close()
	return scanExistences(rows)
}

func scanExistences(rows pgx.Rows) ([]*entity.DepositExistence, error) {
	var list []*entity.DepositExistence
	for rows.Next() {
		var e entity.DepositExistence
		if err := rows.Scan(&e.ProductID, &e.DepositID, &e.LotNumber, &e.Quantity, &e.MinStock, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan existence: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
