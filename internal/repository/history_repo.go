package repository

import (
	"context"
	"time"

	"go-inventory-history/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository is the append-only inventory ledger. It has no update or
// delete methods.
type HistoryRepository interface {
	WithTx(tx *gorm.DB) HistoryRepository
	RecordChange(ctx context.Context, productID uint, previousStock, newStock int, note string) (*model.InventoryHistory, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.InventoryHistory, error)
	StockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

func (r *historyRepo) WithTx(tx *gorm.DB) HistoryRepository {
	return &historyRepo{tx}
}

func (r *historyRepo) RecordChange(ctx context.Context, productID uint, previousStock, newStock int, note string) (*model.InventoryHistory, error) {
	entry := &model.InventoryHistory{
		ProductID:     productID,
		Change:        newStock - previousStock,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Note:          note,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByProduct returns newest first. Entries written in the same instant
// fall back to insertion order, also newest first.
func (r *historyRepo) ListByProduct(ctx context.Context, productID uint) ([]model.InventoryHistory, error) {
	entries := []model.InventoryHistory{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&entries).Error
	return entries, err
}

func (r *historyRepo) StockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error) {
	results := []StockMovementData{}

	// Aggregate ledger entries per day
	rows, err := r.db.WithContext(ctx).Model(&model.InventoryHistory{}).
		Select(`
			DATE(timestamp) as date,
			COALESCE(SUM(CASE WHEN stock_change > 0 THEN stock_change ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN stock_change < 0 THEN -stock_change ELSE 0 END), 0) as outbound
		`).
		Where("timestamp BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(timestamp)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
