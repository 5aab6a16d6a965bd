package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// AdjustStockUseCase es el único camino de escritura sobre current_stock.
// Cada ajuste bloquea la fila del ítem (SELECT FOR UPDATE), valida que el
// resultado no sea negativo y escribe el nuevo stock más un registro
// inmutable de auditoría en la misma transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustInput entrada para registrar un ajuste de stock.
// Quantity es magnitud para ADDITION/REMOVAL (el signo del input se ignora)
// y valor firmado para CORRECTION.
type AdjustInput struct {
	ItemID   string
	Type     string // ADDITION, REMOVAL, CORRECTION
	Quantity int
	Reason   string
	ActorID  string // UserID que ejecuta el ajuste
}

// Adjust registra un ajuste: abre transacción, bloquea la fila del ítem,
// aplica el delta normalizado y persiste stock + registro de auditoría.
// Devuelve el registro insertado.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustInput) (*entity.StockAdjustment, error) {
	if !entity.ValidAdjustmentType(input.Type) {
		return nil, fmt.Errorf("%w: tipo de ajuste %q", domain.ErrInvalidInput, input.Type)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: reason es obligatorio", domain.ErrInvalidInput)
	}
	if input.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser cero", domain.ErrInvalidInput)
	}

	now := time.Now()
	var adjustment *entity.StockAdjustment
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := uc.AdjustInTx(itemRepo, adjRepo, input, now)
		if err != nil {
			return err
		}
		adjustment = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// AdjustInTx ejecuta el ajuste usando los repositorios proporcionados (misma
// transacción del caller). Lo usa Adjust y también la finalización de órdenes
// de trabajo, que descuenta todas sus líneas en una sola transacción.
func (uc *AdjustStockUseCase) AdjustInTx(
	itemRepo repository.ItemRepository,
	adjRepo repository.StockAdjustmentRepository,
	input AdjustInput,
	now time.Time,
) (*entity.StockAdjustment, error) {
	// Bloquea la fila del ítem para que dos ajustes concurrentes se serialicen:
	// el segundo observa el new_stock ya confirmado del primero.
	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, input.ItemID)
	}

	delta := normalizeDelta(input.Type, input.Quantity)
	previous := item.CurrentStock
	newStock := previous + delta
	if newStock < 0 {
		switch input.Type {
		case entity.AdjustmentTypeRemoval:
			return nil, fmt.Errorf("%w: ítem %s: disponible %d, requerido %d",
				domain.ErrInsufficientStock, item.SKU, previous, -delta)
		default: // CORRECTION
			return nil, fmt.Errorf("%w: ítem %s: stock %d, corrección %+d",
				domain.ErrNegativeStock, item.SKU, previous, delta)
		}
	}

	if err := itemRepo.UpdateStock(item.ID, newStock, now); err != nil {
		return nil, err
	}
	adjustment := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		Type:           input.Type,
		QuantityChange: delta, // firmado y normalizado, no el input crudo
		Reason:         input.Reason,
		PreviousStock:  previous,
		NewStock:       newStock,
		AdjustedBy:     input.ActorID,
		CreatedAt:      now,
	}
	if err := adjRepo.Create(adjustment); err != nil {
		return nil, err
	}
	return adjustment, nil
}

// normalizeDelta convierte la cantidad del caller en el delta firmado que se
// aplica y se persiste: ADDITION suma |q|, REMOVAL resta |q| (pasar -40 o +40
// produce el mismo resultado), CORRECTION aplica q con su signo.
func normalizeDelta(adjType string, quantity int) int {
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch adjType {
	case entity.AdjustmentTypeAddition:
		return abs
	case entity.AdjustmentTypeRemoval:
		return -abs
	default: // CORRECTION
		return quantity
	}
}
