package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-inventory-history/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_RecordsInitialAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "Widget", 5)
	assert.NotZero(t, id)

	history, err := f.svc.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].Change)
	assert.Equal(t, 0, history[0].PreviousStock)
	assert.Equal(t, 5, history[0].NewStock)
	assert.Equal(t, model.NoteInitialAdd, history[0].Note)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "Widget", f.publisher.events[0].ProductName)
	assert.Equal(t, 5, f.publisher.events[0].Change)
}

func TestCreateProduct_ZeroStockStillRecorded(t *testing.T) {
	f := newFixture(t)

	id := f.create(t, "Empty", 0)

	history, err := f.svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Change)
}

func TestCreateProduct_DuplicateNameLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Widget", 5)

	_, err := f.svc.CreateProduct(context.Background(), &model.ProductInput{Name: "Widget", Stock: 9})

	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, int64(1), f.count(t, &model.Product{}))
	assert.Equal(t, int64(1), f.count(t, &model.InventoryHistory{}))
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input model.ProductInput
		field string
	}{
		{name: "empty name", input: model.ProductInput{Name: ""}, field: "name"},
		{name: "blank name", input: model.ProductInput{Name: "   "}, field: "name"},
		{name: "long unit", input: model.ProductInput{Name: "X", Unit: strings.Repeat("u", 51)}, field: "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreateProduct(context.Background(), &tt.input)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, int64(0), f.count(t, &model.Product{}))
		})
	}
}

func TestUpdateProduct_StockChangeAppendsEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, "Widget", 5)

	updated, err := f.svc.UpdateProduct(ctx, id, &model.ProductInput{Name: "Widget", Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	history, err := f.svc.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, -2, history[0].Change)
	assert.Equal(t, 5, history[0].PreviousStock)
	assert.Equal(t, 3, history[0].NewStock)
	assert.Equal(t, model.NoteStockUpdate, history[0].Note)
	assert.Equal(t, model.NoteInitialAdd, history[1].Note)

	assert.Len(t, f.publisher.events, 2)
}

func TestUpdateProduct_SameStockAddsNoEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, "Widget", 5)

	_, err := f.svc.UpdateProduct(ctx, id, &model.ProductInput{Name: "Widget", Unit: "box", Stock: 5})
	require.NoError(t, err)

	history, err := f.svc.GetHistory(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Len(t, f.publisher.events, 1)
}

func TestUpdateProduct_ReplacesOmittedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.svc.CreateProduct(ctx, &model.ProductInput{Name: "Widget", Unit: "pcs", Category: "Hardware", Brand: "Acme", Stock: 5})
	require.NoError(t, err)

	_, err = f.svc.UpdateProduct(ctx, id, &model.ProductInput{Name: "Widget", Stock: 5})
	require.NoError(t, err)

	products, err := f.svc.ListProducts(ctx, model.ProductQuery{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "", products[0].Unit)
	assert.Equal(t, "", products[0].Category)
	assert.Equal(t, "", products[0].Brand)
}

func TestUpdateProduct_LedgerChainsAcrossUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, "Widget", 5)

	for _, stock := range []int{3, 10, -4, 0} {
		_, err := f.svc.UpdateProduct(ctx, id, &model.ProductInput{Name: "Widget", Stock: model.FlexInt(stock)})
		require.NoError(t, err)
	}

	history, err := f.svc.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 5)

	sum := 0
	for i, e := range history {
		assert.Equal(t, e.NewStock-e.PreviousStock, e.Change)
		sum += e.Change
		if i+1 < len(history) {
			assert.Equal(t, history[i+1].NewStock, e.PreviousStock, "entry %d does not chain", i)
		}
	}
	assert.Equal(t, 0, history[0].NewStock)
	assert.Equal(t, 0, sum)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateProduct(context.Background(), 999, &model.ProductInput{Name: "Ghost", Stock: 1})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, int64(0), f.count(t, &model.InventoryHistory{}))
}

func TestUpdateProduct_RenameOntoExistingName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Widget", 5)
	gadget := f.create(t, "Gadget", 1)

	_, err := f.svc.UpdateProduct(ctx, gadget, &model.ProductInput{Name: "Widget", Stock: 7})

	assert.ErrorIs(t, err, ErrDuplicateName)
	history, err := f.svc.GetHistory(ctx, gadget)
	require.NoError(t, err)
	assert.Len(t, history, 1, "failed update must not append")
}

func TestDeleteProduct_HistorySurvives(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, "Widget", 5)

	deleted, err := f.svc.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	history, err := f.svc.GetHistory(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	deleted, err = f.svc.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteProduct_NameCanBeReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, "Widget", 5)

	_, err := f.svc.DeleteProduct(ctx, id)
	require.NoError(t, err)

	newID := f.create(t, "Widget", 2)
	assert.NotEqual(t, id, newID)
}

func TestListProducts_UnknownSortFallsBackToName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Bravo", 1)
	f.create(t, "Alpha", 2)
	f.create(t, "Charlie", 3)

	byName, err := f.svc.ListProducts(ctx, model.ProductQuery{Sort: model.SortByName, Order: model.OrderAsc})
	require.NoError(t, err)
	bogus, err := f.svc.ListProducts(ctx, model.ProductQuery{Sort: "price; DROP TABLE products", Order: "sideways"})
	require.NoError(t, err)

	assert.Equal(t, byName, bogus)
	assert.Equal(t, "Alpha", bogus[0].Name)
	assert.Equal(t, int64(3), f.count(t, &model.Product{}))
}

func TestListProducts_DefaultPageSize(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.create(t, string(rune('A'+i)), i)
	}

	page, err := f.svc.ListProducts(context.Background(), model.ProductQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestListCategories_UsesAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateProduct(ctx, &model.ProductInput{Name: "Hammer", Category: "Tools"})
	require.NoError(t, err)

	categories, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tools"}, categories)
	assert.True(t, f.cache.cached)

	_, err = f.svc.CreateProduct(ctx, &model.ProductInput{Name: "Apple", Category: "Food"})
	require.NoError(t, err)
	assert.False(t, f.cache.cached)

	categories, err = f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Food", "Tools"}, categories)
}

func TestGetHistory_UnknownProductIsEmpty(t *testing.T) {
	f := newFixture(t)

	history, err := f.svc.GetHistory(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
