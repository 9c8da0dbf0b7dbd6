package repository

import (
	"context"
	"testing"
	"time"

	"go-inventory-history/internal/model"
	"go-inventory-history/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_RecordChangeComputesDelta(t *testing.T) {
	repo := NewHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	entry, err := repo.RecordChange(ctx, 7, 5, 3, model.NoteStockUpdate)
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, uint(7), entry.ProductID)
	assert.Equal(t, -2, entry.Change)
	assert.Equal(t, 5, entry.PreviousStock)
	assert.Equal(t, 3, entry.NewStock)
	assert.Equal(t, model.NoteStockUpdate, entry.Note)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestHistoryRepo_ListByProduct_NewestFirst(t *testing.T) {
	repo := NewHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.RecordChange(ctx, 1, 0, 5, model.NoteInitialAdd)
	require.NoError(t, err)
	_, err = repo.RecordChange(ctx, 2, 0, 9, model.NoteInitialAdd)
	require.NoError(t, err)
	_, err = repo.RecordChange(ctx, 1, 5, 3, model.NoteStockUpdate)
	require.NoError(t, err)
	_, err = repo.RecordChange(ctx, 1, 3, 8, model.NoteStockUpdate)
	require.NoError(t, err)

	entries, err := repo.ListByProduct(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{8, 3, 5}, []int{entries[0].NewStock, entries[1].NewStock, entries[2].NewStock})
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp), "timestamps must not increase")
	}
}

func TestHistoryRepo_ListByProduct_UnknownProductIsEmpty(t *testing.T) {
	repo := NewHistoryRepo(testutil.NewTestDB(t))

	entries, err := repo.ListByProduct(context.Background(), 404)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHistoryRepo_StockMovement(t *testing.T) {
	repo := NewHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.RecordChange(ctx, 1, 0, 5, model.NoteInitialAdd)
	require.NoError(t, err)
	_, err = repo.RecordChange(ctx, 1, 5, 3, model.NoteStockUpdate)
	require.NoError(t, err)
	_, err = repo.RecordChange(ctx, 2, 0, 4, model.NoteInitialAdd)
	require.NoError(t, err)

	now := time.Now()
	data, err := repo.StockMovement(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var inbound, outbound int
	for _, d := range data {
		assert.NotEmpty(t, d.Date)
		inbound += d.Inbound
		outbound += d.Outbound
	}
	assert.Equal(t, 9, inbound)
	assert.Equal(t, 2, outbound)
}
