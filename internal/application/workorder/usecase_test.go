package workorder_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
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

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *fakeItemRepo) UpdateStock(itemID string, newStock int, updatedAt time.Time) error {
	it, ok := r.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = newStock
	it.UpdatedAt = updatedAt
	return nil
}

func (r *fakeItemRepo) Delete(id string) error { return nil }

func (r *fakeItemRepo) snapshot() map[string]*entity.Item {
	snap := make(map[string]*entity.Item, len(r.items))
	for id, it := range r.items {
		copia := *it
		snap[id] = &copia
	}
	return snap
}

type fakeAdjustmentRepo struct {
	adjustments []*entity.StockAdjustment
}

func (r *fakeAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	copia := *a
	r.adjustments = append(r.adjustments, &copia)
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) { return nil, nil }

func (r *fakeAdjustmentRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return nil, nil
}

type fakeWorkOrderRepo struct {
	orders map[string]*entity.WorkOrder
	lines  map[string][]*entity.WorkOrderItem
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{
		orders: make(map[string]*entity.WorkOrder),
		lines:  make(map[string][]*entity.WorkOrderItem),
	}
}

func (r *fakeWorkOrderRepo) Create(order *entity.WorkOrder) error {
	copia := *order
	copia.Items = nil
	r.orders[order.ID] = &copia
	return nil
}

func (r *fakeWorkOrderRepo) CreateItem(item *entity.WorkOrderItem) error {
	copia := *item
	r.lines[item.WorkOrderID] = append(r.lines[item.WorkOrderID], &copia)
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copia := *order
	return &copia, nil
}

func (r *fakeWorkOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.WorkOrderItem, error) {
	var out []*entity.WorkOrderItem
	for _, line := range r.lines[orderID] {
		copia := *line
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakeWorkOrderRepo) UpdateStatus(id string, status entity.WorkOrderStatus, completedAt *time.Time, updatedAt time.Time) error {
	order, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	if completedAt != nil {
		order.CompletedAt = completedAt
	}
	order.UpdatedAt = updatedAt
	return nil
}

func (r *fakeWorkOrderRepo) List(limit, offset int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for _, o := range r.orders {
		copia := *o
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakeWorkOrderRepo) snapshot() map[string]*entity.WorkOrder {
	snap := make(map[string]*entity.WorkOrder, len(r.orders))
	for id, o := range r.orders {
		copia := *o
		snap[id] = &copia
	}
	return snap
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

// fakeTxRunner emula la semántica transaccional para los tres puertos:
// si fn falla, restaura ítems, ajustes y órdenes al estado previo (ROLLBACK).
type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	adjRepo   *fakeAdjustmentRepo
	orderRepo *fakeWorkOrderRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	itemsSnap := tx.itemRepo.snapshot()
	adjSnap := len(tx.adjRepo.adjustments)
	if err := fn(tx.itemRepo, tx.adjRepo); err != nil {
		tx.itemRepo.items = itemsSnap
		tx.adjRepo.adjustments = tx.adjRepo.adjustments[:adjSnap]
		return err
	}
	return nil
}

func (tx *fakeTxRunner) RunWorkOrder(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	adjRepo repository.StockAdjustmentRepository,
	orderRepo repository.WorkOrderRepository,
) error) error {
	itemsSnap := tx.itemRepo.snapshot()
	adjSnap := len(tx.adjRepo.adjustments)
	ordersSnap := tx.orderRepo.snapshot()
	if err := fn(tx.itemRepo, tx.adjRepo, tx.orderRepo); err != nil {
		tx.itemRepo.items = itemsSnap
		tx.adjRepo.adjustments = tx.adjRepo.adjustments[:adjSnap]
		tx.orderRepo.orders = ordersSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const technicianID = "tech-1"

type fixture struct {
	uc        *workorder.WorkOrderUseCase
	itemRepo  *fakeItemRepo
	adjRepo   *fakeAdjustmentRepo
	orderRepo *fakeWorkOrderRepo
}

func newFixture(items ...*entity.Item) *fixture {
	itemRepo := newFakeItemRepo(items...)
	adjRepo := &fakeAdjustmentRepo{}
	orderRepo := newFakeWorkOrderRepo()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		technicianID: {ID: technicianID, Email: "tecnico@taller.test", Role: entity.RoleTechnician},
		"admin-1":    {ID: "admin-1", Email: "admin@taller.test", Role: entity.RoleAdmin},
	}}
	tx := &fakeTxRunner{itemRepo: itemRepo, adjRepo: adjRepo, orderRepo: orderRepo}
	adjustUC := stock.NewAdjustStockUseCase(tx)
	uc := workorder.NewWorkOrderUseCase(tx, orderRepo, itemRepo, userRepo, adjustUC)
	return &fixture{uc: uc, itemRepo: itemRepo, adjRepo: adjRepo, orderRepo: orderRepo}
}

func newItem(id, sku string, stock int) *entity.Item {
	now := time.Now()
	return &entity.Item{
		ID:           id,
		SKU:          sku,
		Name:         "Repuesto " + sku,
		CurrentStock: stock,
		MinimumStock: 2,
		UnitPrice:    decimal.NewFromFloat(9.99),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// createInProgress crea una orden y la lleva a IN_PROGRESS.
func createInProgress(t *testing.T, f *fixture, lines []dto.WorkOrderLineRequest) *entity.WorkOrder {
	t.Helper()
	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "cambio de aceite y frenos",
		TechnicianID: technicianID,
		Items:        lines,
	})
	require.NoError(t, err)
	order, err = f.uc.Start(context.Background(), order.ID)
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenValidaNaceOpen(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50))

	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "mantenimiento preventivo",
		TechnicianID: technicianID,
		Items:        []dto.WorkOrderLineRequest{{ItemID: "item-1", QuantityUsed: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.WorkOrderOpen, order.Status, "toda orden nace en OPEN")
	assert.True(t, strings.HasPrefix(order.Number, "WO-"), "el número debe llevar prefijo WO-")
	assert.Equal(t, "admin-1", order.CreatedBy)

	lines, _ := f.orderRepo.GetItemsByOrderID(order.ID)
	require.Len(t, lines, 1, "la línea debe quedar persistida")

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, 50, item.CurrentStock, "crear la orden no descuenta stock (sin reserva)")
}

func TestCreate_TecnicoSinRolTechnician(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50))

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "x",
		TechnicianID: "admin-1", // existe pero es ADMIN
		Items:        []dto.WorkOrderLineRequest{{ItemID: "item-1", QuantityUsed: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PreChequeoDeStockInsuficiente(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 3))

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "x",
		TechnicianID: technicianID,
		Items:        []dto.WorkOrderLineRequest{{ItemID: "item-1", QuantityUsed: 10}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "FLT-001")
}

func TestCreate_ItemInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "x",
		TechnicianID: technicianID,
		Items:        []dto.WorkOrderLineRequest{{ItemID: "no-existe", QuantityUsed: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_OpenPasaAInProgress(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50))
	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "x",
		TechnicianID: technicianID,
	})
	require.NoError(t, err)

	started, err := f.uc.Start(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderInProgress, started.Status)

	// Volver a iniciar no es una transición válida.
	_, err = f.uc.Start(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestComplete_DesdeOpenFalla(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50))
	order, err := f.uc.Create(context.Background(), "admin-1", dto.CreateWorkOrderRequest{
		Description:  "x",
		TechnicianID: technicianID,
	})
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, err.Error(), "IN_PROGRESS", "el error debe indicar el estado requerido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de finalización
// ──────────────────────────────────────────────────────────────────────────────

// Completar descuenta cada línea vía el registrador y marca COMPLETED.
func TestComplete_DescuentaTodasLasLineas(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50), newItem("item-2", "PST-002", 30))
	order := createInProgress(t, f, []dto.WorkOrderLineRequest{
		{ItemID: "item-1", QuantityUsed: 5},
		{ItemID: "item-2", QuantityUsed: 3},
	})

	completed, err := f.uc.Complete(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.WorkOrderCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt, "completed_at debe quedar marcado")

	item1, _ := f.itemRepo.GetByID("item-1")
	item2, _ := f.itemRepo.GetByID("item-2")
	assert.Equal(t, 45, item1.CurrentStock, "50 - 5 = 45")
	assert.Equal(t, 27, item2.CurrentStock, "30 - 3 = 27")

	require.Len(t, f.adjRepo.adjustments, 2, "un registro de ajuste por línea")
	for _, adj := range f.adjRepo.adjustments {
		assert.Equal(t, entity.AdjustmentTypeRemoval, adj.Type, "el consumo se registra como REMOVAL")
		assert.Contains(t, adj.Reason, order.Number, "el reason debe referenciar el número de orden")
		assert.Equal(t, technicianID, adj.AdjustedBy, "el actor es el técnico asignado")
		assert.Equal(t, adj.PreviousStock+adj.QuantityChange, adj.NewStock)
	}
}

// Si una línea no tiene stock, nada se descuenta y el estado queda intacto.
func TestComplete_AtomicidadAnteStockInsuficiente(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50), newItem("item-2", "PST-002", 1))
	order := createInProgress(t, f, []dto.WorkOrderLineRequest{
		{ItemID: "item-1", QuantityUsed: 5},
		{ItemID: "item-2", QuantityUsed: 1},
	})

	// Otro consumo agota item-2 entre la creación y la finalización.
	require.NoError(t, f.itemRepo.UpdateStock("item-2", 0, time.Now()))

	_, err := f.uc.Complete(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "PST-002")

	item1, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, 50, item1.CurrentStock, "la primera línea también debe revertirse")
	assert.Empty(t, f.adjRepo.adjustments, "ningún ajuste parcial debe persistir")

	current, _ := f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.WorkOrderInProgress, current.Status, "el estado no debe cambiar")
}

// Doble finalización: la segunda falla porque la orden ya está COMPLETED.
func TestComplete_DobleFinalizacionFalla(t *testing.T) {
	f := newFixture(newItem("item-1", "FLT-001", 50))
	order := createInProgress(t, f, []dto.WorkOrderLineRequest{
		{ItemID: "item-1", QuantityUsed: 5},
	})

	_, err := f.uc.Complete(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, 45, item.CurrentStock, "el stock solo se descuenta una vez")
	assert.Len(t, f.adjRepo.adjustments, 1)
}

// Una orden sin líneas se completa trivialmente con cero ajustes.
func TestComplete_OrdenSinLineas(t *testing.T) {
	f := newFixture()
	order := createInProgress(t, f, nil)

	completed, err := f.uc.Complete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderCompleted, completed.Status)
	assert.Empty(t, f.adjRepo.adjustments)
}
