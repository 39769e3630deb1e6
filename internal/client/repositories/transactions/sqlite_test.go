package transactions

import (
	"context"
	"testing"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func TestCreateAndGet(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	in := models.Transaction{ID: "t1", Title: "Groceries", Amount: 2500, Category: models.Food, Type: models.Expense, Date: "2025-03-01"}
	require.NoError(t, r.Create(ctx, in))

	got, err := r.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestGet_Missing(t *testing.T) {
	r := newRepo(t)

	_, err := r.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreate_DuplicateID(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	tx := models.Transaction{ID: "dup", Title: "a", Amount: 1, Category: models.Others, Type: models.Income, Date: "2025-01-01"}
	require.NoError(t, r.Create(ctx, tx))
	require.ErrorContains(t, r.Create(ctx, tx), "failed to insert transaction dup")
}

func TestList_NewestFirst(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	for _, tx := range []models.Transaction{
		{ID: "a", Title: "old", Amount: 1, Category: models.Bills, Type: models.Expense, Date: "2025-01-01"},
		{ID: "b", Title: "new", Amount: 2, Category: models.Bills, Type: models.Expense, Date: "2025-02-01"},
		{ID: "c", Title: "mid", Amount: 3, Category: models.Bills, Type: models.Income, Date: "2025-01-15"},
	} {
		require.NoError(t, r.Create(ctx, tx))
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestDelete(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, models.Transaction{ID: "x", Title: "x", Amount: 1, Category: models.Food, Type: models.Expense, Date: "2025-01-01"}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.ErrorIs(t, r.Delete(ctx, "x"), common.ErrNotFound)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
