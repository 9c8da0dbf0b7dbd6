package model

// Product is a tracked inventory item. Name is unique across the table and
// Stock is the current on-hand quantity; negative values are allowed.
type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Unit     string `gorm:"type:varchar(50)" json:"unit"`
	Category string `gorm:"type:varchar(100);index" json:"category"`
	Brand    string `gorm:"type:varchar(100)" json:"brand"`
	Stock    int    `gorm:"not null;default:0" json:"stock"`
	Status   string `gorm:"type:varchar(50)" json:"status"`
	Image    string `gorm:"type:text" json:"image"`
}

// ProductInput is the full record accepted by create and update. Update has
// replace semantics, so absent fields overwrite stored values with "".
type ProductInput struct {
	Name     string  `json:"name" validate:"notblank,max=255"`
	Unit     string  `json:"unit" validate:"max=50"`
	Category string  `json:"category" validate:"max=100"`
	Brand    string  `json:"brand" validate:"max=100"`
	Stock    FlexInt `json:"stock"`
	Status   string  `json:"status" validate:"max=50"`
	Image    string  `json:"image"`
}

// ApplyTo overwrites every mutable field of p.
func (in *ProductInput) ApplyTo(p *Product) {
	p.Name = in.Name
	p.Unit = in.Unit
	p.Category = in.Category
	p.Brand = in.Brand
	p.Stock = int(in.Stock)
	p.Status = in.Status
	p.Image = in.Image
}

// ToProduct builds a new, unsaved product from the input.
func (in *ProductInput) ToProduct() *Product {
	p := &Product{}
	in.ApplyTo(p)
	return p
}
