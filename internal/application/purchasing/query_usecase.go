package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

// PurchaseQueryUseCase consultas de compras y actualización de pagos.
type PurchaseQueryUseCase struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseQueryUseCase construye el caso de uso.
func NewPurchaseQueryUseCase(purchaseRepo repository.PurchaseRepository) *PurchaseQueryUseCase {
	return &PurchaseQueryUseCase{purchaseRepo: purchaseRepo}
}

// GetPurchase devuelve la cabecera con líneas y lotes.
func (uc *PurchaseQueryUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	lots, err := uc.purchaseRepo.GetLots(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p, lines, lots), nil
}

// ListPurchases lista cabeceras, opcionalmente filtradas por proveedor.
func (uc *PurchaseQueryUseCase) ListPurchases(ctx context.Context, supplierID string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	var (
		list []*entity.Purchase
		err  error
	)
	if supplierID != "" {
		list, err = uc.purchaseRepo.ListBySupplier(supplierID, limit, offset)
	} else {
		list, err = uc.purchaseRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, nil, nil))
	}
	return out, nil
}

// RegisterPayment suma un abono al monto pagado y recalcula el saldo pendiente.
// Es la única mutación permitida sobre una compra confirmada.
func (uc *PurchaseQueryUseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.PurchaseResponse, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("monto", "el abono debe ser mayor a cero")
	}
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if amount.GreaterThan(p.Balance) {
		return nil, domain.Validation("monto", "el abono excede el saldo pendiente")
	}

	newPaid := p.AmountPaid.Add(amount)
	newBalance := p.Total.Sub(newPaid)
	if err := uc.purchaseRepo.UpdatePayment(id, newPaid, newBalance); err != nil {
		return nil, err
	}
	p.AmountPaid = newPaid
	p.Balance = newBalance
	return toPurchaseResponse(p, nil, nil), nil
}

func toPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseLine, lots []*entity.Lot) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:              p.ID,
		SupplierID:      p.SupplierID,
		InvoiceNumber:   p.InvoiceNumber,
		IssueDate:       p.IssueDate.Format(dateLayout),
		DueDate:         p.DueDate.Format(dateLayout),
		TermDays:        p.TermDays,
		DepositID:       p.DepositID,
		Subtotal:        p.Subtotal,
		DiscountPercent: p.DiscountPercent,
		FixedDiscount:   p.FixedDiscount,
		ExtraDiscount:   p.ExtraDiscount,
		Charges:         p.Charges,
		AmountPaid:      p.AmountPaid,
		Total:           p.Total,
		Balance:         p.Balance,
		Status:          p.Status,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.PurchaseLineResponse{
			ID:             l.ID,
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			BaseUnitCost:   l.BaseUnitCost,
			UnitDiscount:   l.UnitDiscount,
			UnitCharge:     l.UnitCharge,
			LandedUnitCost: l.LandedUnitCost,
			Subtotal:       l.Subtotal,
		})
	}
	for _, l := range lots {
		resp.Lots = append(resp.Lots, dto.PurchaseLotResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			DepositID:  l.DepositID,
			LotNumber:  l.LotNumber,
			Expiration: l.Expiration.Format(dateLayout),
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
		})
	}
	return resp
}
