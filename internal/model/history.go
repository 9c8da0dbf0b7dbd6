package model

import "time"

const (
	NoteInitialAdd  = "Initial add"
	NoteStockUpdate = "Stock update"
)

// InventoryHistory is one append-only ledger row. ProductID is a weak
// reference: there is no foreign key, rows outlive a deleted product.
type InventoryHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	Change        int       `gorm:"column:stock_change;not null" json:"change"`
	PreviousStock int       `gorm:"not null" json:"previous_stock"`
	NewStock      int       `gorm:"not null" json:"new_stock"`
	Note          string    `gorm:"type:varchar(255)" json:"note"`
	Timestamp     time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (InventoryHistory) TableName() string {
	return "inventory_history"
}
