package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
	"github.com/example/cashwave/internal/utils"
)

// ProductHandler manages the catalog: public reads, admin writes.
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts returns paginated products with an optional category filter.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	products, total, err := h.products.List(c.Context(), c.Query("category"), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct returns a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Category      string   `json:"category"`
	Badge         *string  `json:"badge"`
	Icon          string   `json:"icon"`
}

// CreateProduct adds a catalog entry. Admin only.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.Price <= 0 || req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	product := models.Product{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Badge:         req.Badge,
		Icon:          req.Icon,
	}
	if product.Icon == "" {
		product.Icon = iconForCategory(product.Category)
	}

	if err := h.products.Create(c.Context(), &product); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct edits a catalog entry. Orders keep their own price/title
// snapshots, so edits never reach past sales.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Badge != nil {
		updates["badge"] = *req.Badge
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.products.Update(c.Context(), id, updates); err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product updated"})
}

// DeleteProduct removes a catalog entry. Admin only.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.products.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}

func iconForCategory(category string) string {
	icons := map[string]string{
		"ebook":    "fas fa-book",
		"template": "fas fa-palette",
		"course":   "fas fa-laptop-code",
		"pack":     "fas fa-film",
		"bundle":   "fas fa-gift",
	}
	if icon, ok := icons[category]; ok {
		return icon
	}
	return "fas fa-box"
}
