package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

type TransactionRepository interface {
	// Log appends a stock movement.
	Log(ctx context.Context, tx models.Transaction) error
	GetAll(ctx context.Context) ([]models.Transaction, error)
	// Recent returns up to n of the most recently appended movements, newest first.
	Recent(ctx context.Context, n int) ([]models.Transaction, error)
}

type SheetTransactionRepository struct {
	store rowstore.Store
}

func NewSheetTransactionRepository(store rowstore.Store) *SheetTransactionRepository {
	return &SheetTransactionRepository{store: store}
}

func (r *SheetTransactionRepository) Log(ctx context.Context, tx models.Transaction) error {
	return appendRecord(ctx, r.store, rowstore.TableTransactions, tx)
}

func (r *SheetTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := readRows(ctx, r.store, rowstore.TableTransactions)
	if err != nil {
		return nil, err
	}
	txs := make([]models.Transaction, len(rows))
	for i, row := range rows {
		if err := Decode(row, &txs[i]); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

func (r *SheetTransactionRepository) Recent(ctx context.Context, n int) ([]models.Transaction, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	start := max(len(all)-n, 0)

	recent := make([]models.Transaction, 0, len(all)-start)
	for i := len(all) - 1; i >= start; i-- {
		recent = append(recent, all[i])
	}
	return recent, nil
}
