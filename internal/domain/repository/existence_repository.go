package repository

import "github.com/mfarias/backoffice-api/internal/domain/entity"

// ExistenceRepository define el puerto para la existencia por producto, depósito
// y lote. Se usa dentro de transacciones; GetForUpdate bloquea la fila
// (SELECT FOR UPDATE) antes de calcular el nuevo saldo.
type ExistenceRepository interface {
	Get(productID, depositID, lotNumber string) (*entity.DepositExistence, error)
	GetForUpdate(productID, depositID, lotNumber string) (*entity.DepositExistence, error)
	Upsert(existence *entity.DepositExistence) error
	ListByDeposit(depositID string, limit, offset int) ([]*entity.DepositExistence, error)
	ListByProduct(productID string) ([]*entity.DepositExistence, error)
}
