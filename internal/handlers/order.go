package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/cashwave/internal/middleware"
	"github.com/example/cashwave/internal/repository"
	"github.com/example/cashwave/internal/services"
	"github.com/example/cashwave/internal/utils"
)

// OrderHandler manages checkout and the buyer's order views.
type OrderHandler struct {
	service *services.OrderService
	orders  repository.OrderRepository
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(service *services.OrderService, orders repository.OrderRepository) *OrderHandler {
	return &OrderHandler{service: service, orders: orders}
}

// Checkout turns the session cart into a pending order and returns the
// WhatsApp deep link the client should open to settle payment.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.service.Create(c.Context(), principal)
	if err != nil {
		return serviceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order":         result.Order,
			"whatsapp_link": result.WhatsAppLink,
		},
	})
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	orders, total, err := h.orders.ListByUser(c.Context(), principal.UID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order belonging to the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.GetByID(c.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.UserID != principal.UID {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
