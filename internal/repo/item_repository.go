package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

// ErrItemNotFound is returned when no inventory row carries the given ID.
var ErrItemNotFound = errors.New("Item not found")

// ItemRepository defines the interface for inventory item data operations.
type ItemRepository interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (models.Item, error)
	Create(ctx context.Context, item models.Item) (models.Item, error)
	Update(ctx context.Context, item models.Item) (models.Item, error)
	Delete(ctx context.Context, id string) error
}

// SheetItemRepository stores items in the Inventory table of a row store.
type SheetItemRepository struct {
	store rowstore.Store
}

// NewSheetItemRepository creates a new SheetItemRepository.
func NewSheetItemRepository(store rowstore.Store) *SheetItemRepository {
	return &SheetItemRepository{store: store}
}

// GetAll retrieves every item in storage order.
func (r *SheetItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	tbl, err := r.store.Table(ctx, rowstore.TableInventory)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Rows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, len(rows))
	for i, row := range rows {
		if err := Decode(row, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// GetByID retrieves an item by its ID.
func (r *SheetItemRepository) GetByID(ctx context.Context, id string) (models.Item, error) {
	_, rows, pos, err := r.locate(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	var item models.Item
	if err := Decode(rows[pos], &item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Create appends a new item row.
func (r *SheetItemRepository) Create(ctx context.Context, item models.Item) (models.Item, error) {
	tbl, err := r.store.Table(ctx, rowstore.TableInventory)
	if err != nil {
		return models.Item{}, err
	}
	row, err := Encode(item)
	if err != nil {
		return models.Item{}, err
	}
	if err := tbl.Append(ctx, row); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Update overwrites the row that carries item.ID.
func (r *SheetItemRepository) Update(ctx context.Context, item models.Item) (models.Item, error) {
	tbl, _, pos, err := r.locate(ctx, item.ID)
	if err != nil {
		return models.Item{}, err
	}
	row, err := Encode(item)
	if err != nil {
		return models.Item{}, err
	}
	if err := tbl.Update(ctx, pos, row); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Delete removes the row that carries id.
func (r *SheetItemRepository) Delete(ctx context.Context, id string) error {
	tbl, _, pos, err := r.locate(ctx, id)
	if err != nil {
		return err
	}
	return tbl.Delete(ctx, pos)
}

// locate reads the table and resolves id to its row position.
func (r *SheetItemRepository) locate(ctx context.Context, id string) (rowstore.Table, []rowstore.Row, int, error) {
	tbl, err := r.store.Table(ctx, rowstore.TableInventory)
	if err != nil {
		return nil, nil, 0, err
	}
	rows, err := tbl.Rows(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	pos, ok := indexBy(rows, "ID")[id]
	if !ok || id == "" {
		return nil, nil, 0, ErrItemNotFound
	}
	return tbl, rows, pos, nil
}
