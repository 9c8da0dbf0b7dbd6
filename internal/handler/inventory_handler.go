package handler

import (
	"bytes"
	"errors"
	"io"

	"go-inventory-history/internal/model"
	"go-inventory-history/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	service service.InventoryService
	log     *zap.Logger
}

func NewInventoryHandler(s service.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, log: log}
}

// parseID reads the :id route param; only positive integers are valid.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product ID")
	}
	return uint(id), nil
}

// respondError maps the service error taxonomy onto status codes. Storage
// failures get the generic fallback message.
func (h *InventoryHandler) respondError(c *fiber.Ctx, err error, fallback string) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
	case errors.Is(err, service.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Product name already exists"})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	default:
		h.log.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

// GetCategories returns distinct non-empty categories
// GET /api/categories
func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return h.respondError(c, err, "Failed to fetch categories")
	}
	return c.JSON(categories)
}

// GetProducts lists one page of products
// GET /api/products?category=&page=1&pageSize=10&sort=name&order=asc
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	query := model.ProductQuery{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 0),
		Sort:     model.SortField(c.Query("sort", string(model.SortByName))),
		Order:    model.SortOrder(c.Query("order", string(model.OrderAsc))),
	}

	products, err := h.service.ListProducts(c.UserContext(), query)
	if err != nil {
		return h.respondError(c, err, "Database error")
	}
	return c.JSON(products)
}

// CreateProduct
// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
	}

	id, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err, "Failed to add product")
	}
	return c.JSON(fiber.Map{"success": true, "newId": id})
}

// UpdateProduct replaces the whole record
// PUT /api/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req model.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), id, &req); err != nil {
		return h.respondError(c, err, "Update failed")
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteProduct
// DELETE /api/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	deleted, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err, "Failed to delete product")
	}
	return c.JSON(fiber.Map{"success": true, "deletedId": id, "deleted": deleted})
}

// GetHistory returns ledger entries, newest first
// GET /api/products/:id/history
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	entries, err := h.service.GetHistory(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err, "Failed to fetch history")
	}
	return c.JSON(entries)
}

// ImportProducts reads the multipart field csvFile fully into memory
// POST /api/products/import
func (h *InventoryHandler) ImportProducts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is required."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.respondError(c, err, "Failed to read CSV file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.respondError(c, err, "Failed to read CSV file")
	}

	result, err := h.service.ImportCSV(c.UserContext(), bytes.NewReader(data))
	if err != nil {
		return h.respondError(c, err, "Failed to import products")
	}
	return c.JSON(result)
}

// ExportProducts
// GET /api/products/export
func (h *InventoryHandler) ExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.UserContext(), &buf); err != nil {
		return h.respondError(c, err, "Database error")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
