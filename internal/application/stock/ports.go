package stock

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura del stock y la
// inserción del registro de ajuste sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
