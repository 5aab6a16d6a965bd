package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, sku, name, description, current_stock, minimum_stock, unit_price, created_at, updated_at`

// Create persiste un nuevo ítem de catálogo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, sku, name, description, current_stock, minimum_stock, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, nullIfEmpty(item.Description),
		item.CurrentStock, item.MinimumStock, item.UnitPrice,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetBySKU obtiene un ítem por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get item by sku")
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
// Dos ajustes concurrentes sobre el mismo ítem se serializan aquí.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// GetByIDs obtiene ítems por lote; los IDs inexistentes no aparecen en el mapa.
func (r *ItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	if len(ids) == 0 {
		return map[string]*entity.Item{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	defer rows.Close()
	result := make(map[string]*entity.Item, len(ids))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.ID] = item
	}
	return result, rows.Err()
}

// List lista ítems con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza los campos de catálogo. No toca current_stock (se maneja vía ajustes).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, minimum_stock = $4, unit_price = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.Description), item.MinimumStock, item.UnitPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo current_stock (solo desde el registrador de
// ajustes, dentro de la tx que bloqueó la fila con GetForUpdate).
func (r *ItemRepo) UpdateStock(itemID string, newStock int, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		itemID, newStock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// Delete elimina un ítem.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItemRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanItemRow(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var description *string
	err := row.Scan(
		&i.ID, &i.SKU, &i.Name, &description, &i.CurrentStock, &i.MinimumStock,
		&i.UnitPrice, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		i.Description = *description
	}
	return &i, nil
}

func scanItem(rows pgx.Rows) (*entity.Item, error) {
	item, err := scanItemRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return item, nil
}
