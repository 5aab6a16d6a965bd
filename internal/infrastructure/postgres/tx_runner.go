package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/application/purchase"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner implementa los puertos transaccionales de la capa de aplicación.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ workorder.WorkOrderTxRunner = (*TxRunner)(nil)
var _ purchase.PurchaseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es la frontera de atomicidad del registrador de ajustes de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	adjRepo := NewStockAdjustmentRepository(tx)

	if err := fn(itemRepo, adjRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWorkOrder inicia una transacción con los repos de órdenes de trabajo:
// descuentos de stock y cambio de estado en una sola unidad atómica.
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	adjRepo repository.StockAdjustmentRepository,
	orderRepo repository.WorkOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	adjRepo := NewStockAdjustmentRepository(tx)
	orderRepo := NewWorkOrderRepository(tx)

	if err := fn(itemRepo, adjRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción para cabecera + líneas de una orden de compra.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)

	if err := fn(orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
