package inventory

import (
	"context"
	"time"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// KardexQueryUseCase consultas de solo lectura sobre el kardex y las existencias.
type KardexQueryUseCase struct {
	kardexRepo    repository.KardexRepository
	existenceRepo repository.ExistenceRepository
	productRepo   repository.ProductRepository
}

// NewKardexQueryUseCase construye el caso de uso.
func NewKardexQueryUseCase(
	kardexRepo repository.KardexRepository,
	existenceRepo repository.ExistenceRepository,
	productRepo repository.ProductRepository,
) *KardexQueryUseCase {
	return &KardexQueryUseCase{
		kardexRepo:    kardexRepo,
		existenceRepo: existenceRepo,
		productRepo:   productRepo,
	}
}

// GeneralKardex lista el kardex general de un producto (todos los depósitos).
func (uc *KardexQueryUseCase) GeneralKardex(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]dto.KardexEntryDTO, error) {
	if err := uc.checkProduct(productID); err != nil {
		return nil, err
	}
	entries, err := uc.kardexRepo.ListGeneral(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toKardexDTOs(entries), nil
}

// LocalKardex lista el kardex de un producto en un depósito.
func (uc *KardexQueryUseCase) LocalKardex(ctx context.Context, productID, depositID string, from, to *time.Time, limit, offset int) ([]dto.KardexEntryDTO, error) {
	if err := uc.checkProduct(productID); err != nil {
		return nil, err
	}
	entries, err := uc.kardexRepo.ListLocal(productID, depositID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toKardexDTOs(entries), nil
}

// ExistencesByDeposit lista existencias de un depósito con la marca de stock mínimo.
func (uc *KardexQueryUseCase) ExistencesByDeposit(ctx context.Context, depositID string, limit, offset int) ([]dto.ExistenceDTO, error) {
	list, err := uc.existenceRepo.ListByDeposit(depositID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toExistenceDTOs(list), nil
}

// ExistencesByProduct lista existencias de un producto en todos los depósitos.
func (uc *KardexQueryUseCase) ExistencesByProduct(ctx context.Context, productID string) ([]dto.ExistenceDTO, error) {
	if err := uc.checkProduct(productID); err != nil {
		return nil, err
	}
	list, err := uc.existenceRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toExistenceDTOs(list), nil
}

func (uc *KardexQueryUseCase) checkProduct(productID string) error {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toKardexDTOs(entries []*entity.KardexEntry) []dto.KardexEntryDTO {
	out := make([]dto.KardexEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.KardexEntryDTO{
			ID:           e.ID,
			ProductID:    e.ProductID,
			DepositID:    e.DepositID,
			MovementType: e.MovementType,
			Document:     e.Document,
			Opening:      e.Opening,
			Entry:        e.Entry,
			Exit:         e.Exit,
			Closing:      e.Closing,
			UnitCost:     e.UnitCost,
			UnitPrice:    e.UnitPrice,
			Date:         e.Date.Format("2006-01-02"),
		})
	}
	return out
}

func toExistenceDTOs(list []*entity.DepositExistence) []dto.ExistenceDTO {
	out := make([]dto.ExistenceDTO, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ExistenceDTO{
			ProductID:    e.ProductID,
			DepositID:    e.DepositID,
			LotNumber:    e.LotNumber,
			Quantity:     e.Quantity,
			MinStock:     e.MinStock,
			BelowMinimum: e.BelowMinimum(),
		})
	}
	return out
}
