package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
//
// UpdateStock y GetForUpdate existen solo para el registrador de ajustes:
// ningún otro caso de uso debe escribir current_stock. Update no toca
// current_stock (se maneja vía ajustes).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	// GetByIDs devuelve los ítems existentes de la lista; los IDs ausentes
	// simplemente no aparecen en el mapa (validación por lote).
	GetByIDs(ids []string) (map[string]*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Item, error)
	// UpdateStock escribe el nuevo current_stock y updated_at. Solo dentro de
	// la transacción del registrador de ajustes.
	UpdateStock(itemID string, newStock int, updatedAt time.Time) error
	Delete(id string) error
}
