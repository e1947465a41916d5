package repository

import "github.com/mfarias/backoffice-api/internal/domain/entity"

// DepositRepository define el puerto de persistencia para depósitos.
type DepositRepository interface {
	Create(deposit *entity.Deposit) error
	GetByID(id string) (*entity.Deposit, error)
	List(limit, offset int) ([]*entity.Deposit, error)
	Update(deposit *entity.Deposit) error
}
