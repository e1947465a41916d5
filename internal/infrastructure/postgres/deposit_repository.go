package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ repository.DepositRepository = (*DepositRepo)(nil)

// DepositRepo implementación de DepositRepository sobre PostgreSQL (usable con pool o tx).
type DepositRepo struct {
	q Querier
}

// NewDepositRepository construye el adaptador de depósitos. Pasar pool o tx (Querier).
func NewDepositRepository(q Querier) *DepositRepo {
	return &DepositRepo{q: q}
}

// Create persiste un nuevo depósito.
func (r *DepositRepo) Create(deposit *entity.Deposit) error {
	query := `
		INSERT INTO deposits (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		deposit.ID, deposit.Name, deposit.Address, deposit.CreatedAt, deposit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// GetByID obtiene un depósito por ID.
func (r *DepositRepo) GetByID(id string) (*entity.Deposit, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM deposits WHERE id = $1`
	var d entity.Deposit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	return &d, nil
}

// List lista depósitos con paginación.
func (r *DepositRepo) List(limit, offset int) ([]*entity.Deposit, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM deposits ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deposit
	for rows.Next() {
		var d entity.Deposit
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza un depósito existente.
func (r *DepositRepo) Update(deposit *entity.Deposit) error {
	query := `UPDATE deposits SET name = $2, address = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		deposit.ID, deposit.Name, deposit.Address, deposit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deposit: %w", err)
	}
	return nil
}
