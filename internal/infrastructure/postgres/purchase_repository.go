package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de una compra. El índice único
// (supplier_id, invoice_number) hace cumplir la unicidad de factura por
// proveedor a nivel de DB, más allá del pre-chequeo del caso de uso.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, invoice_number, issue_date, term_days, due_date, deposit_id,
			subtotal, discount_percent, fixed_discount, extra_discount, charges, amount_paid, total, balance,
			status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.SupplierID, purchase.InvoiceNumber, purchase.IssueDate,
		purchase.TermDays, purchase.DueDate, purchase.DepositID,
		purchase.Subtotal, purchase.DiscountPercent, purchase.FixedDiscount, purchase.ExtraDiscount,
		purchase.Charges, purchase.AmountPaid, purchase.Total, purchase.Balance,
		purchase.Status, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de compra.
func (r *PurchaseRepo) CreateLine(line *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (id, purchase_id, product_id, quantity, base_unit_cost, unit_discount, unit_charge, landed_unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.PurchaseID, line.ProductID, line.Quantity,
		line.BaseUnitCost, line.UnitDiscount, line.UnitCharge, line.LandedUnitCost, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert purchase line: %w", err)
	}
	return nil
}

// CreateLot persiste un lote creado desde una línea de compra.
func (r *PurchaseRepo) CreateLot(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, purchase_line_id, product_id, deposit_id, lot_number, expiration, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.PurchaseLineID, lot.ProductID, lot.DepositID,
		lot.LotNumber, lot.Expiration, lot.Quantity, lot.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

const purchaseColumns = `id, supplier_id, invoice_number, issue_date, term_days, due_date, deposit_id,
	subtotal, discount_percent, fixed_discount, extra_discount, charges, amount_paid, total, balance,
	status, created_at, created_by`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.SupplierID, &p.InvoiceNumber, &p.IssueDate, &p.TermDays, &p.DueDate, &p.DepositID,
		&p.Subtotal, &p.DiscountPercent, &p.FixedDiscount, &p.ExtraDiscount, &p.Charges,
		&p.AmountPaid, &p.Total, &p.Balance, &p.Status, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// GetBySupplierAndInvoice obtiene una compra por proveedor y número de factura.
func (r *PurchaseRepo) GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE supplier_id = $1 AND invoice_number = $2`
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, supplierID, invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase by invoice: %w", err)
	}
	return p, nil
}

// List lista compras con paginación, más reciente primero.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

// ListBySupplier lista las compras de un proveedor con paginación.
func (r *PurchaseRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases by supplier: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func scanPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetLines obtiene las líneas de una compra.
func (r *PurchaseRepo) GetLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, base_unit_cost, unit_discount, unit_charge, landed_unit_cost, subtotal
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity,
			&l.BaseUnitCost, &l.UnitDiscount, &l.UnitCharge, &l.LandedUnitCost, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetLots obtiene los lotes creados desde las líneas de una compra.
func (r *PurchaseRepo) GetLots(purchaseID string) ([]*entity.Lot, error) {
	query := `
		SELECT l.id, l.purchase_line_id, l.product_id, l.deposit_id, l.lot_number, l.expiration, l.quantity, l.unit_cost
		FROM lots l
		JOIN purchase_lines pl ON pl.id = l.purchase_line_id
		WHERE pl.purchase_id = $1 ORDER BY l.id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.PurchaseLineID, &l.ProductID, &l.DepositID,
			&l.LotNumber, &l.Expiration, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdatePayment actualiza el par abonado/saldo de una compra. Única mutación
// permitida sobre una compra confirmada.
func (r *PurchaseRepo) UpdatePayment(id string, amountPaid, balance decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET amount_paid = $2, balance = $3 WHERE id = $1`,
		id, amountPaid, balance,
	)
	if err != nil {
		return fmt.Errorf("update purchase payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
