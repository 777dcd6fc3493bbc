package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cashwave/internal/services"
)

// serviceError translates order-pipeline sentinels into HTTP errors so
// every failure reaches the client as a structured outcome. Anything
// unrecognized is treated as a transient backend failure the client may
// retry; the precondition guards in the services make those retries safe.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrMissingContactChannel):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyConfirmed),
		errors.Is(err, services.ErrOrderNotConfirmed):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, "store temporarily unavailable, please retry")
	}
}
