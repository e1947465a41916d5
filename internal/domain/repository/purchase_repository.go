package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras, sus líneas
// y los lotes creados desde ellas. Las compras confirmadas nunca se borran;
// la única mutación permitida es el par abonado/saldo.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateLine(line *entity.PurchaseLine) error
	CreateLot(lot *entity.Lot) error
	GetByID(id string) (*entity.Purchase, error)
	GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Purchase, error)
	GetLines(purchaseID string) ([]*entity.PurchaseLine, error)
	GetLots(purchaseID string) ([]*entity.Lot, error)
	UpdatePayment(id string, amountPaid, balance decimal.Decimal) error
}
