package service

import (
	"context"
	"io"

	"go-inventory-history/internal/broker"
	"go-inventory-history/internal/cache"
	"go-inventory-history/internal/model"
	"go-inventory-history/internal/repository"
	"go-inventory-history/pkg/metrics"
	"go-inventory-history/pkg/telemetry"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, error)
	CreateProduct(ctx context.Context, req *model.ProductInput) (uint, error)
	UpdateProduct(ctx context.Context, id uint, req *model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) (bool, error)
	GetHistory(ctx context.Context, productID uint) ([]model.InventoryHistory, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// InventoryDeps are the optional collaborators of the inventory service.
// Nil fields fall back to no-op implementations.
type InventoryDeps struct {
	CategoryCache   cache.CategoryCache
	Publisher       broker.Publisher
	Logger          *zap.Logger
	DefaultPageSize int
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	historyRepo     repository.HistoryRepository
	db              *gorm.DB
	categoryCache   cache.CategoryCache
	publisher       broker.Publisher
	log             *zap.Logger
	defaultPageSize int
}

func NewInventoryService(pRepo repository.ProductRepository, hRepo repository.HistoryRepository, db *gorm.DB, deps InventoryDeps) InventoryService {
	s := &inventoryService{
		productRepo:     pRepo,
		historyRepo:     hRepo,
		db:              db,
		categoryCache:   deps.CategoryCache,
		publisher:       deps.Publisher,
		log:             deps.Logger,
		defaultPageSize: deps.DefaultPageSize,
	}
	if s.categoryCache == nil {
		s.categoryCache = cache.NopCategoryCache{}
	}
	if s.publisher == nil {
		s.publisher = broker.NopPublisher{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.defaultPageSize <= 0 {
		s.defaultPageSize = model.DefaultPageSize
	}
	return s
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]string, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.ListCategories")
	defer span.End()

	if categories, ok := s.categoryCache.Get(ctx); ok {
		return categories, nil
	}

	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	s.categoryCache.Set(ctx, categories)
	return categories, nil
}

func (s *inventoryService) ListProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.ListProducts")
	defer span.End()

	products, err := s.productRepo.List(ctx, q.Normalize(s.defaultPageSize))
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

// CreateProduct inserts the product and its "Initial add" ledger entry in one
// transaction.
func (s *inventoryService) CreateProduct(ctx context.Context, req *model.ProductInput) (uint, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.CreateProduct")
	defer span.End()

	if err := validateInput(req); err != nil {
		return 0, err
	}

	product := req.ToProduct()
	var entry *model.InventoryHistory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		if _, err := products.FindByName(ctx, product.Name); err == nil {
			return ErrDuplicateName
		} else if !repository.IsNotFound(err) {
			return storageErr("find product by name", err)
		}

		if err := products.Create(ctx, product); err != nil {
			if repository.IsDuplicate(err) {
				return ErrDuplicateName
			}
			return storageErr("create product", err)
		}

		var err error
		entry, err = s.historyRepo.WithTx(tx).RecordChange(ctx, product.ID, 0, product.Stock, model.NoteInitialAdd)
		if err != nil {
			return storageErr("record initial stock", err)
		}
		return nil
	})
	if err != nil {
		return 0, classify("create product", err)
	}

	metrics.ProductsCreatedTotal.Inc()
	metrics.StockChangesTotal.Inc()
	s.categoryCache.Invalidate(ctx)
	s.publishStockChange(ctx, product.Name, entry)

	s.log.Info("product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock),
	)
	return product.ID, nil
}

// UpdateProduct replaces every field of the product. A ledger entry is
// appended in the same transaction when the stock value changed.
func (s *inventoryService) UpdateProduct(ctx context.Context, id uint, req *model.ProductInput) (*model.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.UpdateProduct")
	defer span.End()

	if err := validateInput(req); err != nil {
		return nil, err
	}

	var updated *model.Product
	var entry *model.InventoryHistory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		existing, err := products.FindByIDForUpdate(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrProductNotFound
			}
			return storageErr("find product", err)
		}

		if existing.Name != req.Name {
			other, err := products.FindByName(ctx, req.Name)
			if err == nil && other.ID != id {
				return ErrDuplicateName
			}
			if err != nil && !repository.IsNotFound(err) {
				return storageErr("find product by name", err)
			}
		}

		previousStock := existing.Stock
		req.ApplyTo(existing)

		if err := products.Update(ctx, existing); err != nil {
			if repository.IsDuplicate(err) {
				return ErrDuplicateName
			}
			return storageErr("update product", err)
		}

		if existing.Stock != previousStock {
			entry, err = s.historyRepo.WithTx(tx).RecordChange(ctx, existing.ID, previousStock, existing.Stock, model.NoteStockUpdate)
			if err != nil {
				return storageErr("record stock update", err)
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, classify("update product", err)
	}

	s.categoryCache.Invalidate(ctx)
	if entry != nil {
		metrics.StockChangesTotal.Inc()
		s.publishStockChange(ctx, updated.Name, entry)
	}

	s.log.Info("product updated",
		zap.Uint("product_id", updated.ID),
		zap.Bool("stock_changed", entry != nil),
	)
	return updated, nil
}

// DeleteProduct removes the product row only. Its ledger entries stay.
func (s *inventoryService) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.DeleteProduct")
	defer span.End()

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return false, storageErr("delete product", err)
	}

	if deleted {
		metrics.ProductsDeletedTotal.Inc()
		s.categoryCache.Invalidate(ctx)
	}
	s.log.Info("product delete", zap.Uint("product_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}

func (s *inventoryService) GetHistory(ctx context.Context, productID uint) ([]model.InventoryHistory, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.GetHistory")
	defer span.End()

	entries, err := s.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, storageErr("list history", err)
	}
	return entries, nil
}

func (s *inventoryService) publishStockChange(ctx context.Context, productName string, entry *model.InventoryHistory) {
	if entry == nil {
		return
	}
	event := broker.NewStockChangedEvent(productName, entry)
	if err := s.publisher.PublishStockChanged(ctx, event); err != nil {
		s.log.Warn("failed to publish stock event",
			zap.Uint("product_id", entry.ProductID),
			zap.Error(err),
		)
	}
}
