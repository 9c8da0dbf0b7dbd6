package service

import (
	"context"
	"sync"
	"testing"

	"go-inventory-history/internal/broker"
	"go-inventory-history/internal/model"
	"go-inventory-history/internal/repository"
	"go-inventory-history/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCache struct {
	mu          sync.Mutex
	categories  []string
	cached      bool
	invalidated int
}

func (c *fakeCache) Get(context.Context) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories, c.cached
}

func (c *fakeCache) Set(_ context.Context, categories []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories, c.cached = categories, true
}

func (c *fakeCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories, c.cached = nil, false
	c.invalidated++
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*broker.StockChangedEvent
}

func (p *fakePublisher) PublishStockChanged(_ context.Context, event *broker.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fixture struct {
	db        *gorm.DB
	svc       InventoryService
	cache     *fakeCache
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{db: db, cache: &fakeCache{}, publisher: &fakePublisher{}}
	f.svc = NewInventoryService(repository.NewProductRepo(db), repository.NewHistoryRepo(db), db, InventoryDeps{
		CategoryCache: f.cache,
		Publisher:     f.publisher,
	})
	return f
}

func (f *fixture) create(t *testing.T, name string, stock int) uint {
	t.Helper()
	id, err := f.svc.CreateProduct(context.Background(), &model.ProductInput{Name: name, Stock: model.FlexInt(stock)})
	require.NoError(t, err)
	return id
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}
