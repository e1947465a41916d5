package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/application/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un único store compartido por todos los repos, con snapshot
// para simular el rollback de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	suppliers     map[string]*entity.Supplier
	deposits      map[string]*entity.Deposit
	products      map[string]*entity.Product
	purchases     []*entity.Purchase
	lines         []*entity.PurchaseLine
	lots          []*entity.Lot
	existences    map[string]*entity.DepositExistence
	kardexGeneral []*entity.KardexEntry
	kardexLocal   []*entity.KardexEntry
	audits        []*entity.PriceAudit
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		suppliers:  make(map[string]*entity.Supplier),
		deposits:   make(map[string]*entity.Deposit),
		products:   make(map[string]*entity.Product),
		existences: make(map[string]*entity.DepositExistence),
	}
}

func existenceKey(productID, depositID, lotNumber string) string {
	return productID + "|" + depositID + "|" + lotNumber
}

// snapshot copia el estado mutable para poder restaurarlo en un rollback.
func (s *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	c.suppliers = s.suppliers
	c.deposits = s.deposits
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for k, e := range s.existences {
		ce := *e
		c.existences[k] = &ce
	}
	c.purchases = append(c.purchases, s.purchases...)
	c.lines = append(c.lines, s.lines...)
	c.lots = append(c.lots, s.lots...)
	c.kardexGeneral = append(c.kardexGeneral, s.kardexGeneral...)
	c.kardexLocal = append(c.kardexLocal, s.kardexLocal...)
	c.audits = append(c.audits, s.audits...)
	return c
}

func (s *fakeStore) restore(snap *fakeStore) { *s = *snap }

type fakeSupplierRepo struct{ s *fakeStore }

func (r *fakeSupplierRepo) Create(sup *entity.Supplier) error { r.s.suppliers[sup.ID] = sup; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.s.suppliers[id], nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(sup *entity.Supplier) error                  { return nil }

type fakeDepositRepo struct{ s *fakeStore }

func (r *fakeDepositRepo) Create(d *entity.Deposit) error { r.s.deposits[d.ID] = d; return nil }
func (r *fakeDepositRepo) GetByID(id string) (*entity.Deposit, error) {
	return r.s.deposits[id], nil
}
func (r *fakeDepositRepo) List(limit, offset int) ([]*entity.Deposit, error) { return nil, nil }
func (r *fakeDepositRepo) Update(d *entity.Deposit) error                    { return nil }

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error               { return nil }
func (r *fakeProductRepo) UpdatePricing(productID string, cost, margin, price decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost, p.Margin, p.Price = cost, margin, price
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                            { delete(r.s.products, id); return nil }

type fakePurchaseRepo struct{ s *fakeStore }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	for _, existing := range r.s.purchases {
		if existing.SupplierID == p.SupplierID && existing.InvoiceNumber == p.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.purchases = append(r.s.purchases, p)
	return nil
}
func (r *fakePurchaseRepo) CreateLine(l *entity.PurchaseLine) error {
	r.s.lines = append(r.s.lines, l)
	return nil
}
func (r *fakePurchaseRepo) CreateLot(l *entity.Lot) error {
	r.s.lots = append(r.s.lots, l)
	return nil
}
func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	for _, p := range r.s.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePurchaseRepo) GetBySupplierAndInvoice(supplierID, invoiceNumber string) (*entity.Purchase, error) {
	for _, p := range r.s.purchases {
		if p.SupplierID == supplierID && p.InvoiceNumber == invoiceNumber {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	return r.s.purchases, nil
}
func (r *fakePurchaseRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Purchase, error) {
	return nil, nil
}
func (r *fakePurchaseRepo) GetLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	var out []*entity.PurchaseLine
	for _, l := range r.s.lines {
		if l.PurchaseID == purchaseID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakePurchaseRepo) GetLots(purchaseID string) ([]*entity.Lot, error) { return r.s.lots, nil }
func (r *fakePurchaseRepo) UpdatePayment(id string, amountPaid, balance decimal.Decimal) error {
	for _, p := range r.s.purchases {
		if p.ID == id {
			p.AmountPaid, p.Balance = amountPaid, balance
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeExistenceRepo struct{ s *fakeStore }

func (r *fakeExistenceRepo) Get(productID, depositID, lotNumber string) (*entity.DepositExistence, error) {
	return r.GetForUpdate(productID, depositID, lotNumber)
}
func (r *fakeExistenceRepo) GetForUpdate(productID, depositID, lotNumber string) (*entity.DepositExistence, error) {
	if e, ok := r.s.existences[existenceKey(productID, depositID, lotNumber)]; ok {
		copia := *e
		return &copia, nil
	}
	return &entity.DepositExistence{ProductID: productID, DepositID: depositID, LotNumber: lotNumber, Quantity: decimal.Zero}, nil
}
func (r *fakeExistenceRepo) Upsert(e *entity.DepositExistence) error {
	r.s.existences[existenceKey(e.ProductID, e.DepositID, e.LotNumber)] = e
	return nil
}
func (r *fakeExistenceRepo) ListByDeposit(depositID string, limit, offset int) ([]*entity.DepositExistence, error) {
	return nil, nil
}
func (r *fakeExistenceRepo) ListByProduct(productID string) ([]*entity.DepositExistence, error) {
	return nil, nil
}

type fakeKardexRepo struct{ s *fakeStore }

func (r *fakeKardexRepo) AppendGeneral(e *entity.KardexEntry) error {
	r.s.kardexGeneral = append(r.s.kardexGeneral, e)
	return nil
}
func (r *fakeKardexRepo) AppendLocal(e *entity.KardexEntry) error {
	r.s.kardexLocal = append(r.s.kardexLocal, e)
	return nil
}
func (r *fakeKardexRepo) LastGeneralClosing(productID string) (decimal.Decimal, error) {
	closing := decimal.Zero
	for _, e := range r.s.kardexGeneral {
		if e.ProductID == productID {
			closing = e.Closing
		}
	}
	return closing, nil
}
func (r *fakeKardexRepo) LastLocalClosing(productID, depositID string) (decimal.Decimal, error) {
	closing := decimal.Zero
	for _, e := range r.s.kardexLocal {
		if e.ProductID == productID && e.DepositID == depositID {
			closing = e.Closing
		}
	}
	return closing, nil
}
func (r *fakeKardexRepo) ListGeneral(productID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	return r.s.kardexGeneral, nil
}
func (r *fakeKardexRepo) ListLocal(productID, depositID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	return r.s.kardexLocal, nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) Create(a *entity.PriceAudit) error {
	r.s.audits = append(r.s.audits, a)
	return nil
}
func (r *fakeAuditRepo) ListByProduct(productID string, limit, offset int) ([]*entity.PriceAudit, error) {
	return r.s.audits, nil
}
func (r *fakeAuditRepo) ExistsForProduct(productID string) (bool, error) {
	for _, a := range r.s.audits {
		if a.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxRunner ejecuta fn contra el store y restaura el snapshot si fn falla,
// imitando el rollback de la transacción real.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	existenceRepo repository.ExistenceRepository,
	kardexRepo repository.KardexRepository,
	auditRepo repository.PriceAuditRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(
		&fakePurchaseRepo{r.s},
		&fakeProductRepo{r.s},
		&fakeExistenceRepo{r.s},
		&fakeKardexRepo{r.s},
		&fakeAuditRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID = "prov-1"
	depositID  = "dep-central"
	productID  = "prod-1"
	userID     = "user-1"
)

func buildUseCase(t *testing.T) (*purchasing.RegisterPurchaseUseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.suppliers[supplierID] = &entity.Supplier{ID: supplierID, Name: "Distribuidora Sur"}
	s.deposits[depositID] = &entity.Deposit{ID: depositID, Name: "Depósito Central"}
	s.deposits["dep-norte"] = &entity.Deposit{ID: "dep-norte", Name: "Sucursal Norte"}
	s.products[productID] = &entity.Product{
		ID:     productID,
		SKU:    "SKU-001",
		Name:   "Paracetamol 500mg",
		Cost:   dec("4.00"),
		Margin: dec("20"),
		Price:  dec("4.80"),
	}
	uc := purchasing.NewRegisterPurchaseUseCase(
		&fakeTxRunner{s},
		&fakeSupplierRepo{s},
		&fakeDepositRepo{s},
		&fakeProductRepo{s},
		&fakePurchaseRepo{s},
	)
	return uc, s
}

// referenceRequest: 10 unidades a 5.00, 10% de descuento global y 2.00 de
// cargos. Costo final esperado 4.70, subtotal 50.00, total 47.00.
func referenceRequest(invoice string) dto.RegisterPurchaseRequest {
	return dto.RegisterPurchaseRequest{
		SupplierID:    supplierID,
		InvoiceNumber: invoice,
		IssueDate:     "2025-03-10",
		TermDays:      30,
		DepositID:     depositID,
		Totals: dto.PurchaseTotalsDTO{
			DiscountPercent: dec("10"),
			Charges:         dec("2.00"),
		},
		Items: []dto.PurchaseItemDTO{
			{ProductID: productID, Quantity: dec("10"), BaseUnitCost: dec("5.00")},
		},
		Lots: []dto.PurchaseLotDTO{
			{ProductID: productID, LotNumber: "L-001", Expiration: "2026-01-01", Quantity: dec("10")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarCompra_FacturaDeReferencia(t *testing.T) {
	uc, s := buildUseCase(t)

	out, err := uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0001"))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.Subtotal.Equal(dec("50.00")), "subtotal: %s", out.Subtotal)
	assert.True(t, out.Total.Equal(dec("47.00")), "total: %s", out.Total)
	assert.True(t, out.Balance.Equal(dec("47.00")), "saldo: %s", out.Balance)
	assert.Empty(t, out.Warnings)

	require.Len(t, s.purchases, 1)
	p := s.purchases[0]
	assert.Equal(t, entity.PurchaseStatusCommitted, p.Status)
	assert.Equal(t, userID, p.CreatedBy)
	// fecha_vencimiento = emisión + días de plazo
	assert.Equal(t, "2025-04-09", p.DueDate.Format("2006-01-02"))

	require.Len(t, s.lines, 1)
	line := s.lines[0]
	assert.True(t, line.UnitDiscount.Equal(dec("0.5")), "descuento unitario: %s", line.UnitDiscount)
	assert.True(t, line.UnitCharge.Equal(dec("0.2")), "cargo unitario: %s", line.UnitCharge)
	assert.True(t, line.LandedUnitCost.Equal(dec("4.70")), "costo final: %s", line.LandedUnitCost)

	// El lote hereda el costo final de la línea y el depósito de la cabecera.
	require.Len(t, s.lots, 1)
	assert.Equal(t, depositID, s.lots[0].DepositID)
	assert.True(t, s.lots[0].UnitCost.Equal(dec("4.70")))

	// Existencia actualizada para el triple (producto, depósito, lote).
	e := s.existences[existenceKey(productID, depositID, "L-001")]
	require.NotNil(t, e)
	assert.True(t, e.Quantity.Equal(dec("10")))

	// Kardex general y local: apertura 0, entrada 10, cierre 10.
	require.Len(t, s.kardexGeneral, 1)
	require.Len(t, s.kardexLocal, 1)
	g := s.kardexGeneral[0]
	assert.True(t, g.Opening.IsZero())
	assert.True(t, g.Closing.Equal(dec("10")))
	assert.Equal(t, entity.MovementTypePurchase, g.MovementType)
	assert.Equal(t, "F-0001", g.Document)
	assert.Empty(t, g.DepositID, "el kardex general no lleva depósito")
	assert.Equal(t, depositID, s.kardexLocal[0].DepositID)

	// Auditoría de precios: 4.00 → 4.70 con margen 20 → precio 5.64.
	require.Len(t, s.audits, 1)
	a := s.audits[0]
	assert.True(t, a.OldCost.Equal(dec("4.00")))
	assert.True(t, a.NewCost.Equal(dec("4.70")))
	assert.True(t, a.OldPrice.Equal(dec("4.80")))
	assert.True(t, a.NewPrice.Equal(dec("5.64")))
	assert.Equal(t, userID, a.UserID)

	prod := s.products[productID]
	assert.True(t, prod.Cost.Equal(dec("4.70")))
	assert.True(t, prod.Price.Equal(dec("5.64")))
}

func TestRegistrarCompra_CadenaDeKardexEntreCompras(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0001"))
	require.NoError(t, err)
	_, err = uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0002"))
	require.NoError(t, err)

	// La apertura de cada fila es el cierre de la fila anterior del mismo alcance.
	require.Len(t, s.kardexGeneral, 2)
	assert.True(t, s.kardexGeneral[1].Opening.Equal(s.kardexGeneral[0].Closing))
	assert.True(t, s.kardexGeneral[1].Closing.Equal(dec("20")))
	require.Len(t, s.kardexLocal, 2)
	assert.True(t, s.kardexLocal[1].Opening.Equal(s.kardexLocal[0].Closing))

	// La existencia del mismo lote acumula.
	e := s.existences[existenceKey(productID, depositID, "L-001")]
	assert.True(t, e.Quantity.Equal(dec("20")))

	// Mismo costo y margen: la segunda compra no genera auditoría nueva.
	assert.Len(t, s.audits, 1)
}

func TestRegistrarCompra_FacturaDuplicadaEsConflicto(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0001"))
	require.NoError(t, err)

	_, err = uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0001"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict), "esperaba conflicto, fue: %v", err)

	// El rechazo no deja rastros: una sola compra con su kardex.
	assert.Len(t, s.purchases, 1)
	assert.Len(t, s.kardexGeneral, 1)
}

func TestRegistrarCompra_SubasignacionSinConfirmarRechaza(t *testing.T) {
	uc, s := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Lots[0].Quantity = dec("6") // 4 unidades sin lote

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Nada persistido.
	assert.Empty(t, s.purchases)
	assert.Empty(t, s.kardexGeneral)
	assert.Empty(t, s.existences)
}

func TestRegistrarCompra_SubasignacionConfirmadaAdvierte(t *testing.T) {
	uc, s := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Lots[0].Quantity = dec("6")
	in.ConfirmPartials = true

	out, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "4")

	// Solo entra al inventario lo asignado a lotes.
	e := s.existences[existenceKey(productID, depositID, "L-001")]
	require.NotNil(t, e)
	assert.True(t, e.Quantity.Equal(dec("6")))
	require.Len(t, s.kardexGeneral, 1)
	assert.True(t, s.kardexGeneral[0].Closing.Equal(dec("6")))
}

func TestRegistrarCompra_SobreasignacionRechaza(t *testing.T) {
	uc, s := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Lots[0].Quantity = dec("11")

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, s.purchases)
}

func TestRegistrarCompra_LotesEnDepositosDistintos(t *testing.T) {
	uc, s := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Lots = []dto.PurchaseLotDTO{
		{ProductID: productID, LotNumber: "L-001", Expiration: "2026-01-01", Quantity: dec("6")},
		{ProductID: productID, LotNumber: "L-001", DepositID: "dep-norte", Expiration: "2026-01-01", Quantity: dec("4")},
	}

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.NoError(t, err)

	// Kardex local separado por depósito; el general acumula ambos lotes.
	require.Len(t, s.kardexLocal, 2)
	assert.True(t, s.existences[existenceKey(productID, depositID, "L-001")].Quantity.Equal(dec("6")))
	assert.True(t, s.existences[existenceKey(productID, "dep-norte", "L-001")].Quantity.Equal(dec("4")))
	require.Len(t, s.kardexGeneral, 2)
	assert.True(t, s.kardexGeneral[1].Closing.Equal(dec("10")))
}

func TestRegistrarCompra_MargenNuevoRecalculaPrecio(t *testing.T) {
	uc, s := buildUseCase(t)

	in := referenceRequest("F-0001")
	margen := dec("30")
	in.Items[0].NewMargin = &margen

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.NoError(t, err)

	prod := s.products[productID]
	assert.True(t, prod.Margin.Equal(dec("30")))
	// 4.70 + 30% = 6.11
	assert.True(t, prod.Price.Equal(dec("6.11")), "precio: %s", prod.Price)
	require.Len(t, s.audits, 1)
	assert.True(t, s.audits[0].NewMargin.Equal(dec("30")))
}

func TestRegistrarCompra_AbonoMayorAlTotalRechaza(t *testing.T) {
	uc, _ := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Totals.AmountPaid = dec("47.01")

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegistrarCompra_ProveedorInexistenteRechaza(t *testing.T) {
	uc, _ := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.SupplierID = "prov-fantasma"

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegistrarCompra_ProductoRepetidoRechaza(t *testing.T) {
	uc, _ := buildUseCase(t)

	in := referenceRequest("F-0001")
	in.Items = append(in.Items, in.Items[0])

	_, err := uc.RegisterPurchase(context.Background(), userID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegistrarPago_ReduceSaldo(t *testing.T) {
	uc, s := buildUseCase(t)
	queryUC := purchasing.NewPurchaseQueryUseCase(&fakePurchaseRepo{s})

	out, err := uc.RegisterPurchase(context.Background(), userID, referenceRequest("F-0001"))
	require.NoError(t, err)

	resp, err := queryUC.RegisterPayment(context.Background(), out.ID, dec("20.00"))
	require.NoError(t, err)
	assert.True(t, resp.AmountPaid.Equal(dec("20.00")))
	assert.True(t, resp.Balance.Equal(dec("27.00")))

	// Abonar más que el saldo restante se rechaza.
	_, err = queryUC.RegisterPayment(context.Background(), out.ID, dec("27.01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
