// Package csvio encodes and decodes the product CSV exchange format.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-inventory-history/internal/model"
)

// ExportHeader is the fixed column order of an export.
var ExportHeader = []string{"id", "name", "unit", "category", "brand", "stock", "status", "image"}

var ErrNoNameColumn = errors.New(`CSV header has no "name" column`)

// WriteProducts writes the header followed by one record per product.
func WriteProducts(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			p.Image,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is one data record of an import, keyed by header name. Line is the
// 1-based line in the source file.
type Row struct {
	Line     int
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    string
	Status   string
	Image    string
}

// ReadRows parses an import file. The first record is the header; columns are
// matched by exact name and unknown columns are ignored. An empty input yields
// no rows and no error.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, ErrNoNameColumn
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}

		line, _ := cr.FieldPos(0)
		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}
		rows = append(rows, Row{
			Line:     line,
			Name:     get("name"),
			Unit:     get("unit"),
			Category: get("category"),
			Brand:    get("brand"),
			Stock:    get("stock"),
			Status:   get("status"),
			Image:    get("image"),
		})
	}
	return rows, nil
}

// Input converts the row to a product input. A blank stock cell means 0.
func (r Row) Input() (*model.ProductInput, error) {
	stock := 0
	if raw := strings.TrimSpace(r.Stock); raw != "" {
		n, err := model.ParseInt(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: stock %w", r.Line, err)
		}
		stock = n
	}
	return &model.ProductInput{
		Name:     r.Name,
		Unit:     r.Unit,
		Category: r.Category,
		Brand:    r.Brand,
		Stock:    model.FlexInt(stock),
		Status:   r.Status,
		Image:    r.Image,
	}, nil
}
