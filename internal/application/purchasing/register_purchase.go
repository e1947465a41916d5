package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	domainpurch "github.com/mfarias/backoffice-api/internal/domain/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// RegisterPurchaseUseCase convierte una factura de proveedor en una compra
// confirmada: prorratea costos, reparte cantidades en lotes, aplica el ledger de
// inventario y audita cambios de precio — todo dentro de una sola transacción.
// Cualquier falla antes del commit revierte todo; no hay estado intermedio visible.
type RegisterPurchaseUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	depositRepo  repository.DepositRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	depositRepo repository.DepositRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		depositRepo:  depositRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// lineAllocation agrupa el resultado de los dos asignadores para una línea.
type lineAllocation struct {
	item  dto.PurchaseItemDTO
	costs domainpurch.AllocatedLine
	lots  *domainpurch.BatchAllocation
}

// RegisterPurchase valida el payload, ejecuta los asignadores (puros, sin efectos)
// y recién entonces abre la transacción que persiste cabecera, líneas, lotes,
// existencias, kardex y auditoría de precios.
//
// La subasignación de lotes no es error: se devuelve como advertencia junto al
// commit exitoso, pero solo si el llamador la confirmó explícitamente.
func (uc *RegisterPurchaseUseCase) RegisterPurchase(ctx context.Context, userID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseRegisteredDTO, error) {
	if userID == "" {
		userID = in.UserID
	}
	issueDate, dueDate, err := uc.validateHeader(userID, in)
	if err != nil {
		return nil, err
	}

	// Validar claves foráneas (solo lectura, fuera de la tx).
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.Validation("id_proveedor", "proveedor no encontrado")
	}
	if dep, err := uc.depositRepo.GetByID(in.DepositID); err != nil {
		return nil, err
	} else if dep == nil {
		return nil, domain.Validation("id_deposito_destino", "depósito no encontrado")
	}

	seen := make(map[string]bool, len(in.Items))
	costLines := make([]domainpurch.CostLine, 0, len(in.Items))
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.Validation(fmt.Sprintf("items[%d].id_producto", i), "el producto es obligatorio")
		}
		if seen[item.ProductID] {
			return nil, domain.Validation(fmt.Sprintf("items[%d].id_producto", i), "producto repetido en la compra")
		}
		seen[item.ProductID] = true
		if p, err := uc.productRepo.GetByID(item.ProductID); err != nil {
			return nil, err
		} else if p == nil {
			return nil, domain.Validation(fmt.Sprintf("items[%d].id_producto", i), "producto no encontrado")
		}
		costLines = append(costLines, domainpurch.CostLine{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			BaseUnitCost: item.BaseUnitCost,
		})
	}

	// Factura única por proveedor. La constraint de BD respalda este chequeo
	// frente a carreras entre envíos concurrentes.
	if existing, err := uc.purchaseRepo.GetBySupplierAndInvoice(in.SupplierID, in.InvoiceNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Conflict(fmt.Sprintf("la factura %s ya fue registrada para este proveedor", in.InvoiceNumber))
	}

	// Prorrateo de costos (puro, determinista). El descuento extra se comporta
	// como descuento fijo adicional en el total.
	allocation, err := domainpurch.AllocateCosts(costLines, domainpurch.InvoiceAdjustments{
		DiscountPercent: in.Totals.DiscountPercent,
		FixedDiscount:   in.Totals.FixedDiscount.Add(in.Totals.ExtraDiscount),
		Charges:         in.Totals.Charges,
	})
	if err != nil {
		return nil, err
	}

	// Reparto en lotes por línea. Los lotes sin depósito usan el destino de la cabecera.
	lotsByProduct := make(map[string][]domainpurch.LotInput)
	for i, l := range in.Lots {
		if !seen[l.ProductID] {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].id_producto", i), "el lote no corresponde a ningún producto de la compra")
		}
		depositID := l.DepositID
		if depositID == "" {
			depositID = in.DepositID
		} else if dep, err := uc.depositRepo.GetByID(depositID); err != nil {
			return nil, err
		} else if dep == nil {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].id_deposito", i), "depósito no encontrado")
		}
		expiration, err := time.Parse(dateLayout, l.Expiration)
		if err != nil {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].fecha_vencimiento", i), "fecha inválida, formato esperado AAAA-MM-DD")
		}
		lotsByProduct[l.ProductID] = append(lotsByProduct[l.ProductID], domainpurch.LotInput{
			LotNumber:  l.LotNumber,
			DepositID:  depositID,
			Expiration: expiration,
			Quantity:   l.Quantity,
		})
	}

	var warnings []string
	lineAllocs := make([]lineAllocation, 0, len(in.Items))
	for i, item := range in.Items {
		batch, err := domainpurch.AllocateLots(item.Quantity, issueDate, lotsByProduct[item.ProductID])
		if err != nil {
			return nil, err
		}
		if batch.Underallocated() {
			warnings = append(warnings, fmt.Sprintf(
				"producto %s: %s unidades compradas sin asignar a lotes",
				item.ProductID, batch.Remaining.String()))
		}
		lineAllocs = append(lineAllocs, lineAllocation{
			item:  item,
			costs: allocation.Lines[i],
			lots:  batch,
		})
	}
	if len(warnings) > 0 && !in.ConfirmPartials {
		return nil, domain.Validation("detalle_lotes", "hay cantidades sin asignar a lotes; confirme el registro parcial para continuar")
	}

	if in.Totals.AmountPaid.LessThan(decimal.Zero) {
		return nil, domain.Validation("totales_cargos.monto_abonado", "no puede ser negativo")
	}
	if in.Totals.AmountPaid.GreaterThan(allocation.Total) {
		return nil, domain.Validation("totales_cargos.monto_abonado", "no puede exceder el total de la factura")
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:              uuid.New().String(),
		SupplierID:      in.SupplierID,
		InvoiceNumber:   in.InvoiceNumber,
		IssueDate:       issueDate,
		TermDays:        in.TermDays,
		DueDate:         dueDate,
		DepositID:       in.DepositID,
		Subtotal:        allocation.Subtotal,
		DiscountPercent: in.Totals.DiscountPercent,
		FixedDiscount:   in.Totals.FixedDiscount,
		ExtraDiscount:   in.Totals.ExtraDiscount,
		Charges:         in.Totals.Charges,
		AmountPaid:      in.Totals.AmountPaid,
		Total:           allocation.Total,
		Balance:         allocation.Total.Sub(in.Totals.AmountPaid),
		Status:          entity.PurchaseStatusCommitted,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	// Transacción única: o se persiste todo (compra, lotes, existencias, kardex,
	// auditoría) o nada. El TxRunner hace rollback ante cualquier error.
	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		existenceRepo repository.ExistenceRepository,
		kardexRepo repository.KardexRepository,
		auditRepo repository.PriceAuditRepository,
	) error {
		// Bloquear los productos en orden de ID para evitar deadlocks entre
		// compras concurrentes que comparten productos. El bloqueo serializa la
		// cadena del kardex general y el cambio de costo/precio.
		products, err := lockProducts(productRepo, lineAllocs)
		if err != nil {
			return err
		}

		if err := purchaseRepo.Create(purchase); err != nil {
			if err == domain.ErrDuplicate {
				return domain.Conflict(fmt.Sprintf("la factura %s ya fue registrada para este proveedor", in.InvoiceNumber))
			}
			return err
		}

		for _, la := range lineAllocs {
			product := products[la.item.ProductID]
			margin := product.Margin
			if la.item.NewMargin != nil {
				margin = *la.item.NewMargin
			}
			salePrice := domainpurch.SalePrice(la.costs.LandedUnitCost, margin)

			line := &entity.PurchaseLine{
				ID:             uuid.New().String(),
				PurchaseID:     purchase.ID,
				ProductID:      la.item.ProductID,
				Quantity:       la.costs.Quantity,
				BaseUnitCost:   la.costs.BaseUnitCost,
				UnitDiscount:   la.costs.UnitDiscount,
				UnitCharge:     la.costs.UnitCharge,
				LandedUnitCost: la.costs.LandedUnitCost,
				Subtotal:       la.costs.Subtotal,
			}
			if err := purchaseRepo.CreateLine(line); err != nil {
				return err
			}

			for _, al := range la.lots.Lots {
				lot := &entity.Lot{
					ID:             uuid.New().String(),
					PurchaseLineID: line.ID,
					ProductID:      la.item.ProductID,
					DepositID:      al.DepositID,
					LotNumber:      al.LotNumber,
					Expiration:     al.Expiration,
					Quantity:       al.Quantity,
					UnitCost:       la.costs.LandedUnitCost,
				}
				if err := purchaseRepo.CreateLot(lot); err != nil {
					return err
				}
				if err := applyLotEntry(existenceRepo, kardexRepo, lot, salePrice, in.InvoiceNumber, userID, now); err != nil {
					return err
				}
			}

			if _, err := applyPriceAudit(auditRepo, productRepo, product, la.costs.LandedUnitCost, la.item.NewMargin, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PurchaseRegisteredDTO{
		ID:       purchase.ID,
		Subtotal: purchase.Subtotal,
		Total:    purchase.Total,
		Balance:  purchase.Balance,
		Warnings: warnings,
	}, nil
}

// validateHeader valida los campos de cabecera y resuelve fechas de emisión y
// vencimiento (si no viene, emisión + días de plazo).
func (uc *RegisterPurchaseUseCase) validateHeader(userID string, in dto.RegisterPurchaseRequest) (issueDate, dueDate time.Time, err error) {
	if in.SupplierID == "" {
		return issueDate, dueDate, domain.Validation("id_proveedor", "el proveedor es obligatorio")
	}
	if in.InvoiceNumber == "" {
		return issueDate, dueDate, domain.Validation("nro_factura", "el número de factura es obligatorio")
	}
	if in.DepositID == "" {
		return issueDate, dueDate, domain.Validation("id_deposito_destino", "el depósito destino es obligatorio")
	}
	if userID == "" {
		return issueDate, dueDate, domain.Validation("id_usuario", "el usuario es obligatorio")
	}
	if len(in.Items) == 0 {
		return issueDate, dueDate, domain.Validation("items", "la compra debe tener al menos una línea")
	}
	if in.TermDays < 0 {
		return issueDate, dueDate, domain.Validation("dias_plazo", "no puede ser negativo")
	}

	issueDate, err = time.Parse(dateLayout, in.IssueDate)
	if err != nil {
		return issueDate, dueDate, domain.Validation("fecha_emision", "fecha inválida, formato esperado AAAA-MM-DD")
	}
	if in.DueDate != "" {
		dueDate, err = time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return issueDate, dueDate, domain.Validation("fecha_vencimiento", "fecha inválida, formato esperado AAAA-MM-DD")
		}
		if dueDate.Before(issueDate) {
			return issueDate, dueDate, domain.Validation("fecha_vencimiento", "no puede ser anterior a la emisión")
		}
	} else {
		dueDate = issueDate.AddDate(0, 0, in.TermDays)
	}
	return issueDate, dueDate, nil
}

// lockProducts relee y bloquea (FOR UPDATE) los productos de la compra en orden
// estable de ID.
func lockProducts(productRepo repository.ProductRepository, lineAllocs []lineAllocation) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lineAllocs))
	for _, la := range lineAllocs {
		ids = append(ids, la.item.ProductID)
	}
	sort.Strings(ids)

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[id] = p
	}
	return products, nil
}
