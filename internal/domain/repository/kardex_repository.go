package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
)

// KardexRepository define el puerto del ledger de movimientos (solo-inserción).
// El alcance general es por producto; el local por producto y depósito. El saldo
// de apertura de cada fila nueva debe salir de LastGeneralClosing/LastLocalClosing
// dentro de la misma transacción que la inserta.
type KardexRepository interface {
	AppendGeneral(e *entity.KardexEntry) error
	AppendLocal(e *entity.KardexEntry) error
	LastGeneralClosing(productID string) (decimal.Decimal, error)
	LastLocalClosing(productID, depositID string) (decimal.Decimal, error)
	ListGeneral(productID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error)
	ListLocal(productID, depositID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error)
}
