package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// applyLotEntry aplica un aumento de stock por (producto, depósito, lote) y
// agrega las filas de kardex local y general del mismo movimiento. Debe
// ejecutarse dentro de la transacción de la compra, con la fila del producto ya
// bloqueada (el bloqueo del producto serializa la cadena general; el FOR UPDATE
// de la existencia serializa la local).
func applyLotEntry(
	existenceRepo repository.ExistenceRepository,
	kardexRepo repository.KardexRepository,
	lot *entity.Lot,
	salePrice decimal.Decimal,
	document, userID string,
	now time.Time,
) error {
	// Bloquea (o crea en cero) la existencia del lote y suma la cantidad recibida.
	existence, err := existenceRepo.GetForUpdate(lot.ProductID, lot.DepositID, lot.LotNumber)
	if err != nil {
		return err
	}
	existence.Quantity = existence.Quantity.Add(lot.Quantity)
	existence.UpdatedAt = now
	if err := existenceRepo.Upsert(existence); err != nil {
		return err
	}

	// Kardex local (producto + depósito): apertura = cierre de la fila anterior.
	localOpening, err := kardexRepo.LastLocalClosing(lot.ProductID, lot.DepositID)
	if err != nil {
		return err
	}
	local := &entity.KardexEntry{
		ID:           uuid.New().String(),
		ProductID:    lot.ProductID,
		DepositID:    lot.DepositID,
		MovementType: entity.MovementTypePurchase,
		Document:     document,
		Opening:      localOpening,
		Entry:        lot.Quantity,
		Exit:         decimal.Zero,
		Closing:      localOpening.Add(lot.Quantity),
		UnitCost:     lot.UnitCost,
		UnitPrice:    salePrice,
		Date:         now,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if err := kardexRepo.AppendLocal(local); err != nil {
		return err
	}

	// Kardex general (producto, sin depósito): mismo movimiento contra el saldo
	// total del producto en todos los depósitos.
	generalOpening, err := kardexRepo.LastGeneralClosing(lot.ProductID)
	if err != nil {
		return err
	}
	general := &entity.KardexEntry{
		ID:           uuid.New().String(),
		ProductID:    lot.ProductID,
		MovementType: entity.MovementTypePurchase,
		Document:     document,
		Opening:      generalOpening,
		Entry:        lot.Quantity,
		Exit:         decimal.Zero,
		Closing:      generalOpening.Add(lot.Quantity),
		UnitCost:     lot.UnitCost,
		UnitPrice:    salePrice,
		Date:         now,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	return kardexRepo.AppendGeneral(general)
}
