package purchase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/purchase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		copia := *it
		r.items[it.ID] = &copia
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.Item) error { return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copia := *it
	return &copia, nil
}

func (r *fakeItemRepo) GetBySKU(sku string) (*entity.Item, error) { return nil, nil }

func (r *fakeItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	found := make(map[string]*entity.Item)
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			copia := *it
			found[id] = &copia
		}
	}
	return found, nil
}

func (r *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *fakeItemRepo) Update(item *entity.Item) error                 { return nil }
func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error)   { return r.GetByID(id) }

func (r *fakeItemRepo) UpdateStock(itemID string, newStock int, updatedAt time.Time) error {
	it, ok := r.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = newStock
	return nil
}

func (r *fakeItemRepo) Delete(id string) error { return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error                    { return nil }
func (r *fakeSupplierRepo) Delete(id string) error                             { return nil }

type fakePurchaseOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	lines  map[string][]*entity.PurchaseOrderItem
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{
		orders: make(map[string]*entity.PurchaseOrder),
		lines:  make(map[string][]*entity.PurchaseOrderItem),
	}
}

func (r *fakePurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	copia := *order
	copia.Items = nil
	r.orders[order.ID] = &copia
	return nil
}

func (r *fakePurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	copia := *item
	r.lines[item.PurchaseOrderID] = append(r.lines[item.PurchaseOrderID], &copia)
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copia := *order
	return &copia, nil
}

func (r *fakePurchaseOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, line := range r.lines[orderID] {
		copia := *line
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakePurchaseOrderRepo) UpdateStatus(id string, status entity.PurchaseOrderStatus, updatedAt time.Time) error {
	order, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	return nil
}

func (r *fakePurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		copia := *o
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakePurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if o.SupplierID == supplierID {
			copia := *o
			out = append(out, &copia)
		}
	}
	return out, nil
}

// fakeTxRunner: si fn falla, descarta la orden insertada (ROLLBACK).
type fakeTxRunner struct {
	orderRepo *fakePurchaseOrderRepo
}

func (tx *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	ordersSnap := make(map[string]*entity.PurchaseOrder, len(tx.orderRepo.orders))
	for id, o := range tx.orderRepo.orders {
		copia := *o
		ordersSnap[id] = &copia
	}
	if err := fn(tx.orderRepo); err != nil {
		tx.orderRepo.orders = ordersSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const supplierID = "supplier-1"

type fixture struct {
	uc        *purchase.PurchaseOrderUseCase
	itemRepo  *fakeItemRepo
	orderRepo *fakePurchaseOrderRepo
}

func newFixture(items ...*entity.Item) *fixture {
	itemRepo := newFakeItemRepo(items...)
	orderRepo := newFakePurchaseOrderRepo()
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Repuestos del Norte"},
	}}
	uc := purchase.NewPurchaseOrderUseCase(&fakeTxRunner{orderRepo: orderRepo}, orderRepo, supplierRepo, itemRepo)
	return &fixture{uc: uc, itemRepo: itemRepo, orderRepo: orderRepo}
}

func newItem(id, sku string, stock int) *entity.Item {
	return &entity.Item{
		ID:           id,
		SKU:          sku,
		Name:         "Repuesto " + sku,
		CurrentStock: stock,
		UnitPrice:    decimal.NewFromFloat(20.00),
	}
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El total se calcula con los precios cotizados del input y queda congelado;
// el stock no se toca.
func TestCreate_TotalCongeladoConPreciosCotizados(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10), newItem("item-2", "PST-002", 4))

	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.PurchaseOrderLineRequest{
			{ItemID: "item-1", Quantity: 7, UnitPrice: price("12.33")},
			{ItemID: "item-2", Quantity: 3, UnitPrice: price("45.67")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderDraft, order.Status, "toda orden de compra nace en DRAFT")
	assert.True(t, strings.HasPrefix(order.Number, "PO-"), "el número debe llevar prefijo PO-")

	// 7×12.33 + 3×45.67 = 86.31 + 137.01 = 223.32 (exacto, sin error de flotante)
	assert.True(t, order.TotalAmount.Equal(price("223.32")),
		"total esperado 223.32, obtuvo %s", order.TotalAmount)

	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].TotalPrice.Equal(price("86.31")))
	assert.True(t, order.Items[1].TotalPrice.Equal(price("137.01")))

	item1, _ := f.itemRepo.GetByID("item-1")
	item2, _ := f.itemRepo.GetByID("item-2")
	assert.Equal(t, 10, item1.CurrentStock, "crear una orden de compra nunca mueve stock")
	assert.Equal(t, 4, item2.CurrentStock)

	lines, _ := f.orderRepo.GetItemsByOrderID(order.ID)
	assert.Len(t, lines, 2, "las líneas deben quedar persistidas")
}

// Todos los ítems ausentes se reportan juntos, no solo el primero.
func TestCreate_ItemsAusentesReportadosEnLote(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.PurchaseOrderLineRequest{
			{ItemID: "item-1", Quantity: 1, UnitPrice: price("10")},
			{ItemID: "fantasma-1", Quantity: 1, UnitPrice: price("10")},
			{ItemID: "fantasma-2", Quantity: 1, UnitPrice: price("10")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "fantasma-1")
	assert.Contains(t, err.Error(), "fantasma-2")
	assert.Empty(t, f.orderRepo.orders, "no debe persistirse ninguna orden")
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.PurchaseOrderLineRequest{{ItemID: "item-1", Quantity: 1, UnitPrice: price("10")}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "proveedor")
}

func TestCreate_LineasInvalidas(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))

	casos := []struct {
		nombre string
		line   dto.PurchaseOrderLineRequest
	}{
		{"cantidad cero", dto.PurchaseOrderLineRequest{ItemID: "item-1", Quantity: 0, UnitPrice: price("10")}},
		{"cantidad negativa", dto.PurchaseOrderLineRequest{ItemID: "item-1", Quantity: -2, UnitPrice: price("10")}},
		{"precio cero", dto.PurchaseOrderLineRequest{ItemID: "item-1", Quantity: 1, UnitPrice: decimal.Zero}},
		{"precio negativo", dto.PurchaseOrderLineRequest{ItemID: "item-1", Quantity: 1, UnitPrice: price("-5")}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
				SupplierID: supplierID,
				Items:      []dto.PurchaseOrderLineRequest{tc.line},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_SinLineas(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Transiciones de estado: DRAFT→PENDING→APPROVED/REJECTED; terminales no salen.
func TestUpdateStatus_Transiciones(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))
	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseOrderLineRequest{{ItemID: "item-1", Quantity: 2, UnitPrice: price("15.50")}},
	})
	require.NoError(t, err)

	// DRAFT → APPROVED no es válido (debe pasar por PENDING)
	_, err = f.uc.UpdateStatus(context.Background(), order.ID, entity.PurchaseOrderApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// DRAFT → PENDING
	updated, err := f.uc.UpdateStatus(context.Background(), order.ID, entity.PurchaseOrderPending)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderPending, updated.Status)

	// PENDING → APPROVED
	updated, err = f.uc.UpdateStatus(context.Background(), order.ID, entity.PurchaseOrderApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderApproved, updated.Status)

	// APPROVED es terminal
	_, err = f.uc.UpdateStatus(context.Background(), order.ID, entity.PurchaseOrderRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Aprobar no mueve stock ni cambia el total.
	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, 10, item.CurrentStock, "aprobar una orden de compra no recibe mercancía")
	persisted, _ := f.orderRepo.GetByID(order.ID)
	assert.True(t, persisted.TotalAmount.Equal(price("31.00")), "el total queda congelado desde la creación")
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))
	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseOrderLineRequest{{ItemID: "item-1", Quantity: 1, UnitPrice: price("10")}},
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), order.ID, entity.PurchaseOrderStatus("SHIPPED"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Listado filtrado por proveedor.
func TestList_FiltraPorProveedor(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 10))
	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseOrderLineRequest{{ItemID: "item-1", Quantity: 1, UnitPrice: price("10")}},
	})
	require.NoError(t, err)

	orders, err := f.uc.List(context.Background(), supplierID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = f.uc.List(context.Background(), "otro-proveedor", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
