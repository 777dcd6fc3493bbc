package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/cashwave/internal/cart"
	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
)

// OrderService owns the order lifecycle: creating a pending order from a
// cart snapshot and confirming it exactly once.
type OrderService struct {
	orders       repository.OrderRepository
	users        repository.UserRepository
	carts        cart.Store
	entitlements *EntitlementService
	authz        *Authorizer
	whatsapp     *WhatsAppService
	telegram     *TelegramService
}

// NewOrderService constructs an OrderService. telegram may be nil when
// admin notifications are not configured.
func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	carts cart.Store,
	entitlements *EntitlementService,
	authz *Authorizer,
	whatsapp *WhatsAppService,
	telegram *TelegramService,
) *OrderService {
	return &OrderService{
		orders:       orders,
		users:        users,
		carts:        carts,
		entitlements: entitlements,
		authz:        authz,
		whatsapp:     whatsapp,
		telegram:     telegram,
	}
}

// CheckoutResult is what a successful checkout hands back to the client:
// the persisted order and the pre-filled WhatsApp link to open.
type CheckoutResult struct {
	Order        *models.Order
	WhatsAppLink string
}

// ConfirmResult carries the confirmed order and the confirmation message
// link for the buyer.
type ConfirmResult struct {
	Order        *models.Order
	WhatsAppLink string
}

// Create turns the principal's cart into a persisted pending order. The
// cart is cleared only after the order write succeeds; a failed write
// leaves the cart untouched so the buyer can retry.
func (s *OrderService) Create(ctx context.Context, p Principal) (*CheckoutResult, error) {
	c, err := s.carts.Load(ctx, p.UID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	user, err := s.users.GetByID(ctx, p.UID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user.WhatsApp == "" {
		return nil, ErrMissingContactChannel
	}

	order := &models.Order{
		UserID:       user.ID,
		UserName:     user.FullName(),
		UserEmail:    user.Email,
		UserWhatsApp: user.WhatsApp,
		Status:       models.OrderStatusPending,
		Total:        c.Total(),
	}
	for _, line := range c.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Icon:      line.Icon,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.UnitPrice * float64(line.Quantity),
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Persist-then-clear: the order exists now, so losing the clear only
	// leaves a stale cart behind, never a lost one.
	if err := s.carts.Clear(ctx, p.UID); err != nil {
		log.Printf("[Order] failed to clear cart for %s after order %s: %v", p.UID, order.ID, err)
	}

	if s.telegram != nil {
		snapshot := *order
		go s.telegram.NotifyNewOrder(&snapshot)
	}

	message := s.whatsapp.OrderMessage(order)
	return &CheckoutResult{
		Order:        order,
		WhatsAppLink: s.whatsapp.DeepLink(order.UserWhatsApp, message),
	}, nil
}

// Confirm transitions an order from pending to confirmed and grants the
// buyer entitlements for every item. The transition is a conditional
// update on the current status, so of two racing admins exactly one
// succeeds and the other gets ErrAlreadyConfirmed.
//
// When the status flip commits but some grants fail, Confirm returns the
// confirmed order together with a *PartialEntitlementError; Regrant can
// then re-run only the missing grants.
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID, admin Principal) (*ConfirmResult, error) {
	if !s.authz.IsAdmin(ctx, admin) {
		return nil, ErrPermissionDenied
	}

	now := time.Now()
	won, err := s.orders.ConfirmPending(ctx, orderID, admin.UID, now)
	if err != nil {
		return nil, fmt.Errorf("confirm order: %w", err)
	}
	if !won {
		if _, err := s.orders.GetByID(ctx, orderID); err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrOrderNotFound
			}
			return nil, fmt.Errorf("load order: %w", err)
		}
		return nil, ErrAlreadyConfirmed
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	grantErr := s.entitlements.Grant(ctx, order.UserID, order.ID, order.Items)

	message := s.whatsapp.ConfirmationMessage(order)
	result := &ConfirmResult{
		Order:        order,
		WhatsAppLink: s.whatsapp.DeepLink(order.UserWhatsApp, message),
	}
	return result, grantErr
}

// Regrant re-runs the entitlement grants an earlier confirm failed to
// append, skipping items the buyer already owns. It is safe to reissue
// any number of times and only applies to confirmed orders. Returns how
// many grants were re-run.
func (s *OrderService) Regrant(ctx context.Context, orderID uuid.UUID, admin Principal) (int, error) {
	if !s.authz.IsAdmin(ctx, admin) {
		return 0, ErrPermissionDenied
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("load order: %w", err)
	}
	if order.Status != models.OrderStatusConfirmed {
		return 0, ErrOrderNotConfirmed
	}

	var missing []models.OrderItem
	for _, item := range order.Items {
		owned, err := s.entitlements.HasPurchased(ctx, order.UserID, item.ProductID)
		if err != nil {
			return 0, fmt.Errorf("check entitlement: %w", err)
		}
		if !owned {
			missing = append(missing, item)
		}
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.entitlements.Grant(ctx, order.UserID, order.ID, missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}
