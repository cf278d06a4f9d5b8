package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

type SupplierRepository interface {
	GetAll(ctx context.Context) ([]models.Supplier, error)
	Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
}

type SheetSupplierRepository struct {
	store rowstore.Store
}

func NewSheetSupplierRepository(store rowstore.Store) *SheetSupplierRepository {
	return &SheetSupplierRepository{store: store}
}

func (r *SheetSupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	rows, err := readRows(ctx, r.store, rowstore.TableSuppliers)
	if err != nil {
		return nil, err
	}
	suppliers := make([]models.Supplier, len(rows))
	for i, row := range rows {
		if err := Decode(row, &suppliers[i]); err != nil {
			return nil, err
		}
	}
	return suppliers, nil
}

func (r *SheetSupplierRepository) Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	if err := appendRecord(ctx, r.store, rowstore.TableSuppliers, supplier); err != nil {
		return models.Supplier{}, err
	}
	return supplier, nil
}

func readRows(ctx context.Context, store rowstore.Store, table string) ([]rowstore.Row, error) {
	tbl, err := store.Table(ctx, table)
	if err != nil {
		return nil, err
	}
	return tbl.Rows(ctx)
}

func appendRecord(ctx context.Context, store rowstore.Store, table string, record any) error {
	tbl, err := store.Table(ctx, table)
	if err != nil {
		return err
	}
	row, err := Encode(record)
	if err != nil {
		return err
	}
	return tbl.Append(ctx, row)
}
