package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_products_created_total",
		Help: "Total number of products created through the API",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_products_deleted_total",
		Help: "Total number of product rows removed",
	})

	StockChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_changes_total",
		Help: "Total number of inventory history entries written",
	})

	CSVImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_csv_import_rows_total",
		Help: "CSV import rows by outcome",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
