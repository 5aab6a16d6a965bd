package purchase

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción de BD:
// cabecera de la orden de compra y sus líneas se insertan como una sola
// unidad atómica.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
