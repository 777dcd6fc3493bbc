package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/example/cashwave/internal/middleware"
	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
	"github.com/example/cashwave/internal/services"
	"github.com/example/cashwave/internal/utils"
)

// AdminHandler manages admin-only endpoints. All routes behind it are
// gated by the admin middleware; the order service re-checks privilege
// on confirm as well.
type AdminHandler struct {
	service  *services.OrderService
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	sfg      singleflight.Group
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(
	service *services.OrderService,
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
) *AdminHandler {
	return &AdminHandler{service: service, orders: orders, users: users, products: products}
}

type dashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalUsers    int64   `json:"total_users"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Dashboard returns aggregate statistics. The three counts may resolve
// in any order; revenue is computed from the confirmed-orders snapshot
// only. Concurrent admin requests share one computation.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	v, err, _ := h.sfg.Do("dashboard", func() (interface{}, error) {
		return h.collectStats(c.Context())
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": v})
}

func (h *AdminHandler) collectStats(ctx context.Context) (*dashboardStats, error) {
	stats := &dashboardStats{}

	var err error
	if stats.TotalProducts, err = h.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = h.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = h.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = h.orders.SumConfirmedTotals(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// ListAllOrders returns every order, optionally filtered by status.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	orders, total, err := h.orders.ListAll(c.Context(), c.Query("status"), pg.Limit, pg.Offset)
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

// ConfirmOrder transitions a pending order to confirmed and grants the
// buyer entitlements. A partial grant failure is reported distinctly so
// it can be reconciled with Regrant, never mistaken for full success.
func (h *AdminHandler) ConfirmOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.Confirm(c.Context(), id, principal)

	var partial *services.PartialEntitlementError
	if errors.As(err, &partial) {
		log.Printf("[Admin] order %s confirmed with partial entitlement failure: %v", id, err)
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"success": false,
			"message": "order confirmed but some entitlements failed; re-run grants",
			"data": fiber.Map{
				"order":           result.Order,
				"failed_products": partial.FailedProducts,
			},
		})
	}
	if err != nil {
		log.Printf("[Admin] confirm order %s failed: %v", id, err)
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order":         result.Order,
			"whatsapp_link": result.WhatsAppLink,
		},
	})
}

// RegrantOrder re-runs missing entitlement grants for a confirmed order.
// Safe to call any number of times.
func (h *AdminHandler) RegrantOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	granted, err := h.service.Regrant(c.Context(), id, principal)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"granted": granted},
	})
}

// ListAllUsers returns all registered users.
func (h *AdminHandler) ListAllUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	users, total, err := h.users.List(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// PromoteUser elevates a customer to admin. This is the only write path
// for the role field.
func (h *AdminHandler) PromoteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.users.Update(c.Context(), id, map[string]interface{}{"role": models.RoleAdmin}); err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "user promoted to admin"})
}
