package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/repo"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

func TestEncode_UsesHeaderNames(t *testing.T) {
	row, err := repo.Encode(models.Supplier{ID: "s1", Name: "Acme", Email: "sales@acme.test"})
	require.NoError(t, err)

	assert.Equal(t, rowstore.Row{
		"ID":      "s1",
		"Name":    "Acme",
		"Contact": "",
		"Email":   "sales@acme.test",
		"Address": "",
	}, row)
}

func TestDecode_KeepsRawNumericText(t *testing.T) {
	var item models.Item
	require.NoError(t, repo.Decode(rowstore.Row{"ID": "i1", "Qty": "x", "UnitCost": "12.5"}, &item))

	assert.Equal(t, models.Number("x"), item.Qty)
	_, ok := item.Qty.Int()
	assert.False(t, ok)
	cost, ok := item.UnitCost.Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, cost)
}

func TestDecode_RejectsNonPointer(t *testing.T) {
	assert.Error(t, repo.Decode(rowstore.Row{}, models.Item{}))
}

func TestItemRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	items := repo.NewSheetItemRepository(rowstore.NewMemoryStore())

	for _, id := range []string{"a", "b", "c"} {
		_, err := items.Create(ctx, models.Item{ID: id, Item: "item-" + id, Qty: "1"})
		require.NoError(t, err)
	}

	got, err := items.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "item-b", got.Item)

	got.Qty = models.NumberFromInt(7)
	_, err = items.Update(ctx, got)
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, "a"))

	all, err := items.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, models.Number("7"), all[0].Qty)
	assert.Equal(t, "c", all[1].ID)
}

func TestItemRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	items := repo.NewSheetItemRepository(rowstore.NewMemoryStore())
	_, err := items.Create(ctx, models.Item{ID: "a"})
	require.NoError(t, err)

	_, err = items.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrItemNotFound)

	_, err = items.Update(ctx, models.Item{ID: "missing"})
	assert.ErrorIs(t, err, repo.ErrItemNotFound)

	assert.ErrorIs(t, items.Delete(ctx, "missing"), repo.ErrItemNotFound)
	assert.ErrorIs(t, items.Delete(ctx, ""), repo.ErrItemNotFound)
}

func TestItemRepository_DuplicateIDResolvesToFirstRow(t *testing.T) {
	ctx := context.Background()
	items := repo.NewSheetItemRepository(rowstore.NewMemoryStore())
	_, err := items.Create(ctx, models.Item{ID: "dup", Item: "first"})
	require.NoError(t, err)
	_, err = items.Create(ctx, models.Item{ID: "dup", Item: "second"})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, "dup"))

	all, err := items.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Item)
}

func TestTransactionRepository_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	txs := repo.NewSheetTransactionRepository(rowstore.NewMemoryStore())

	recent, err := txs.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	for _, id := range []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"} {
		require.NoError(t, txs.Log(ctx, models.Transaction{ID: id}))
	}

	recent, err = txs.Recent(ctx, 5)
	require.NoError(t, err)
	ids := make([]string, len(recent))
	for i, tx := range recent {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{"t7", "t6", "t5", "t4", "t3"}, ids)
}

func TestAuditRepository_AppendOnly(t *testing.T) {
	ctx := context.Background()
	audit := repo.NewSheetAuditRepository(rowstore.NewMemoryStore())

	require.NoError(t, audit.Append(ctx, models.AuditLog{Action: "Add Item"}))
	require.NoError(t, audit.Append(ctx, models.AuditLog{Action: "Delete Item"}))

	entries, err := audit.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Add Item", entries[0].Action)
	assert.Equal(t, "Delete Item", entries[1].Action)
}
