package repository

import (
	"context"
	"errors"

	"go-inventory-history/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	List(ctx context.Context, q model.ProductQuery) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) (bool, error)
	Stats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error)
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	LowStockCount int64 `json:"low_stock_count"`
	TotalStock    int64 `json:"total_stock"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// WithTx returns a copy bound to tx so callers can run it inside db.Transaction.
func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) List(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}

	// The ORDER BY column comes from the SortField enum, never from raw input.
	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: string(q.Sort)},
		Desc:   q.Order == model.OrderDesc,
	})
	if q.Sort != model.SortByID {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	products := []model.Product{}
	err := query.Limit(q.Limit()).Offset(q.Offset()).Find(&products).Error
	return products, err
}

func (r *productRepo) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category IS NOT NULL AND category <> ?", "").
		Order("category ASC").
		Distinct().
		Pluck("category", &categories).Error
	return categories, err
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate locks the row for the rest of the transaction. SQLite has
// no row locks and already serializes writers, so the clause is skipped there.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error) {
	query := r.db.WithContext(ctx)
	if query.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product model.Product
	if err := query.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update saves every column, zero values included.
func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) Stats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("stock < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Select("COALESCE(SUM(stock), 0)").Scan(&stats.TotalStock).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// IsNotFound reports whether err is GORM's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a translated unique-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
