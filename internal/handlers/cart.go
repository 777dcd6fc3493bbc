package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/cashwave/internal/cart"
	"github.com/example/cashwave/internal/middleware"
	"github.com/example/cashwave/internal/repository"
)

// CartHandler manages the authenticated user's session cart.
type CartHandler struct {
	carts    cart.Store
	products repository.ProductRepository
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(carts cart.Store, products repository.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

// GetCart returns the current cart with its total and badge count.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	userCart, err := h.carts.Load(c.Context(), principal.UID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"lines": userCart.Lines,
			"total": userCart.Total(),
			"count": userCart.Count(),
		},
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// AddItem merges a product into the cart, denormalizing its title, price
// and icon into the line.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	userCart, err := h.carts.Load(c.Context(), principal.UID)
	if err != nil {
		return serviceError(err)
	}

	userCart.Add(product)

	if err := h.carts.Save(c.Context(), principal.UID, userCart); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": product.Title + " added to cart",
		"data": fiber.Map{
			"total": userCart.Total(),
			"count": userCart.Count(),
		},
	})
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	userCart, err := h.carts.Load(c.Context(), principal.UID)
	if err != nil {
		return serviceError(err)
	}

	userCart.Remove(productID)

	if err := h.carts.Save(c.Context(), principal.UID, userCart); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "item removed from cart",
		"data": fiber.Map{
			"total": userCart.Total(),
			"count": userCart.Count(),
		},
	})
}

type adjustItemRequest struct {
	Delta int `json:"delta"`
}

// AdjustItem applies a quantity delta to a line; lines hitting zero are
// removed.
func (h *CartHandler) AdjustItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req adjustItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Delta == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "delta must be non-zero")
	}

	userCart, err := h.carts.Load(c.Context(), principal.UID)
	if err != nil {
		return serviceError(err)
	}

	userCart.AdjustQuantity(productID, req.Delta)

	if err := h.carts.Save(c.Context(), principal.UID, userCart); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"lines": userCart.Lines,
			"total": userCart.Total(),
			"count": userCart.Count(),
		},
	})
}
