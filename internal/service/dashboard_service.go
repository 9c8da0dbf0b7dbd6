package service

import (
	"context"
	"time"

	"go-inventory-history/internal/repository"
	"go-inventory-history/pkg/telemetry"
)

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	productRepo       repository.ProductRepository
	historyRepo       repository.HistoryRepository
	lowStockThreshold int
}

func NewDashboardService(pRepo repository.ProductRepository, hRepo repository.HistoryRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{
		productRepo:       pRepo,
		historyRepo:       hRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetStockMovement sums ledger changes per day for the trailing window.
func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	ctx, span := telemetry.StartSpan(ctx, "DashboardService.GetStockMovement")
	defer span.End()

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	data, err := s.historyRepo.StockMovement(ctx, startDate, endDate)
	if err != nil {
		return nil, storageErr("stock movement", err)
	}
	return data, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "DashboardService.GetDashboardStats")
	defer span.End()

	stats, err := s.productRepo.Stats(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, storageErr("dashboard stats", err)
	}
	return stats, nil
}
