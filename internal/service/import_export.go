package service

import (
	"context"
	"io"

	"go-inventory-history/internal/repository"
	"go-inventory-history/pkg/csvio"
	"go-inventory-history/pkg/metrics"
	"go-inventory-history/pkg/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MessageEmptyImport = "No products in CSV."

// ImportResult lists product names by outcome, in file order.
type ImportResult struct {
	Message      string   `json:"message,omitempty"`
	AddedCount   int      `json:"addedCount"`
	SkippedCount int      `json:"skippedCount"`
	Added        []string `json:"added"`
	Skipped      []string `json:"skipped"`
}

func (r *ImportResult) add(name string) {
	r.Added = append(r.Added, name)
	r.AddedCount = len(r.Added)
}

func (r *ImportResult) skip(name string) {
	r.Skipped = append(r.Skipped, name)
	r.SkippedCount = len(r.Skipped)
}

// ExportCSV writes every product, ordered by id.
func (s *inventoryService) ExportCSV(ctx context.Context, w io.Writer) error {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.ExportCSV")
	defer span.End()

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return storageErr("load products for export", err)
	}
	return csvio.WriteProducts(w, products)
}

// ImportCSV inserts rows whose name is not taken yet, one row at a time in
// file order, so a repeated name later in the same file is skipped too.
// Imported products get no ledger entry. Invalid rows are skipped; only a
// storage failure stops the batch.
func (s *inventoryService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "InventoryService.ImportCSV")
	defer span.End()

	rows, err := csvio.ReadRows(r)
	if err != nil {
		return nil, &ValidationError{Field: "csvFile", Tag: "csv", Message: "Invalid CSV file: " + err.Error()}
	}

	result := &ImportResult{Added: []string{}, Skipped: []string{}}
	if len(rows) == 0 {
		result.Message = MessageEmptyImport
		return result, nil
	}

	batchID := uuid.New().String()
	log := s.log.With(zap.String("import_id", batchID))
	defer func() {
		if result.AddedCount > 0 {
			s.categoryCache.Invalidate(ctx)
		}
	}()

	for _, row := range rows {
		req, err := row.Input()
		if err != nil {
			log.Warn("skipping CSV row", zap.Int("line", row.Line), zap.Error(err))
			result.skip(row.Name)
			continue
		}
		if err := validateInput(req); err != nil {
			log.Warn("skipping CSV row", zap.Int("line", row.Line), zap.Error(err))
			result.skip(row.Name)
			continue
		}

		if _, err := s.productRepo.FindByName(ctx, req.Name); err == nil {
			result.skip(req.Name)
			continue
		} else if !repository.IsNotFound(err) {
			return result, storageErr("find product by name", err)
		}

		if err := s.productRepo.Create(ctx, req.ToProduct()); err != nil {
			if repository.IsDuplicate(err) {
				result.skip(req.Name)
				continue
			}
			return result, storageErr("import product", err)
		}
		result.add(req.Name)
	}

	metrics.CSVImportRowsTotal.WithLabelValues("added").Add(float64(result.AddedCount))
	metrics.CSVImportRowsTotal.WithLabelValues("skipped").Add(float64(result.SkippedCount))
	log.Info("CSV import finished",
		zap.Int("added", result.AddedCount),
		zap.Int("skipped", result.SkippedCount),
	)
	return result, nil
}
