package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

// AuditRepository is append-only: entries are never updated or removed.
type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditLog) error
	GetAll(ctx context.Context) ([]models.AuditLog, error)
}

type SheetAuditRepository struct {
	store rowstore.Store
}

func NewSheetAuditRepository(store rowstore.Store) *SheetAuditRepository {
	return &SheetAuditRepository{store: store}
}

func (r *SheetAuditRepository) Append(ctx context.Context, entry models.AuditLog) error {
	return appendRecord(ctx, r.store, rowstore.TableAuditLogs, entry)
}

func (r *SheetAuditRepository) GetAll(ctx context.Context) ([]models.AuditLog, error) {
	rows, err := readRows(ctx, r.store, rowstore.TableAuditLogs)
	if err != nil {
		return nil, err
	}
	entries := make([]models.AuditLog, len(rows))
	for i, row := range rows {
		if err := Decode(row, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
