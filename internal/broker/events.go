package broker

import (
	"fmt"
	"time"

	"go-inventory-history/internal/model"

	"github.com/google/uuid"
)

const EventTypeStockChanged = "StockChanged"

// StockChangedEvent mirrors one committed ledger entry.
type StockChangedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ProductID     uint      `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Change        int       `json:"change"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Note          string    `json:"note"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewStockChangedEvent(productName string, entry *model.InventoryHistory) *StockChangedEvent {
	return &StockChangedEvent{
		EventID:       uuid.New().String(),
		EventType:     EventTypeStockChanged,
		ProductID:     entry.ProductID,
		ProductName:   productName,
		Change:        entry.Change,
		PreviousStock: entry.PreviousStock,
		NewStock:      entry.NewStock,
		Note:          entry.Note,
		OccurredAt:    entry.Timestamp,
	}
}

// Key partitions events by product so per-product order is kept.
func (e *StockChangedEvent) Key() string {
	return fmt.Sprintf("product-%d", e.ProductID)
}
