package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/cashwave/internal/middleware"
	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
	"github.com/example/cashwave/internal/services"
)

// ProfileHandler manages the user's profile and purchase views.
type ProfileHandler struct {
	users        repository.UserRepository
	entitlements *services.EntitlementService
	whatsapp     *services.WhatsAppService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(users repository.UserRepository, entitlements *services.EntitlementService, whatsapp *services.WhatsAppService) *ProfileHandler {
	return &ProfileHandler{users: users, entitlements: entitlements, whatsapp: whatsapp}
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.users.GetByID(c.Context(), principal.UID)
	if err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           user.ID,
			"email":        user.Email,
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"whatsapp":     user.WhatsApp,
			"role":         user.Role,
			"created_at":   user.CreatedAt,
			"support_link": h.whatsapp.SupportLink(),
		},
	})
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	WhatsApp  *string `json:"whatsapp"`
}

// UpdateProfile updates contact fields. Orders keep their own snapshots,
// so edits here never rewrite existing orders.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.WhatsApp != nil {
		updates["whats_app"] = *req.WhatsApp
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.users.Update(c.Context(), principal.UID, updates); err != nil {
		if err == repository.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

// ListPurchases returns the user's entitlements, newest first.
func (h *ProfileHandler) ListPurchases(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := h.entitlements.List(c.Context(), principal.UID)
	if err != nil {
		return err
	}

	if records == nil {
		records = []models.PurchaseRecord{}
	}

	return c.JSON(fiber.Map{"success": true, "data": records})
}

// CheckPurchased reports whether the user already owns a product, used
// to gate "already owned" affordances in the storefront.
func (h *ProfileHandler) CheckPurchased(c *fiber.Ctx) error {
	principal, ok := middleware.GetCurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	owned, err := h.entitlements.HasPurchased(c.Context(), principal.UID, productID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"purchased": owned},
	})
}
