package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// DepositUseCase CRUD de depósitos.
type DepositUseCase struct {
	depositRepo repository.DepositRepository
}

// NewDepositUseCase construye el caso de uso.
func NewDepositUseCase(depositRepo repository.DepositRepository) *DepositUseCase {
	return &DepositUseCase{depositRepo: depositRepo}
}

// Create registra un depósito.
func (uc *DepositUseCase) Create(ctx context.Context, in dto.CreateDepositRequest) (*entity.Deposit, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre", "el nombre es obligatorio")
	}
	now := time.Now()
	d := &entity.Deposit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.depositRepo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID obtiene un depósito.
func (uc *DepositUseCase) GetByID(ctx context.Context, id string) (*entity.Deposit, error) {
	d, err := uc.depositRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// List lista depósitos.
func (uc *DepositUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Deposit, error) {
	return uc.depositRepo.List(limit, offset)
}
