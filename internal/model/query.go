package model

import "strings"

// SortField is the closed set of columns a product listing may be ordered by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByStock    SortField = "stock"
	SortByCategory SortField = "category"
	SortByID       SortField = "id"
	SortByBrand    SortField = "brand"
	SortByUnit     SortField = "unit"
	SortByStatus   SortField = "status"
)

var sortFields = map[string]SortField{
	"name":     SortByName,
	"stock":    SortByStock,
	"category": SortByCategory,
	"id":       SortByID,
	"brand":    SortByBrand,
	"unit":     SortByUnit,
	"status":   SortByStatus,
}

// ParseSortField matches case-insensitively; anything unknown sorts by name.
func ParseSortField(s string) SortField {
	if f, ok := sortFields[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return SortByName
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder returns OrderDesc only for "desc" in any case.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return OrderDesc
	}
	return OrderAsc
}

const DefaultPageSize = 10

// ProductQuery drives the paginated product listing. Page is 1-based.
type ProductQuery struct {
	Category string
	Page     int
	PageSize int
	Sort     SortField
	Order    SortOrder
}

// Normalize clamps page and size and replaces unknown sort values.
func (q ProductQuery) Normalize(defaultPageSize int) ProductQuery {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	q.Sort = ParseSortField(string(q.Sort))
	q.Order = ParseSortOrder(string(q.Order))
	return q
}

func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

func (q ProductQuery) Limit() int {
	return q.PageSize
}
