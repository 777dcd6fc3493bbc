package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the order pipeline. Handlers translate these into
// HTTP status codes; nothing past a handler boundary sees a raw error.
var (
	// ErrEmptyCart rejects checkout before any order document exists.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingContactChannel means the buyer's profile has no WhatsApp
	// number; surfaced as a prompt to complete the profile.
	ErrMissingContactChannel = errors.New("whatsapp number missing from profile")
	// ErrOrderNotFound means no order exists under the given ID.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyConfirmed means the order left pending before this call;
	// the entitlement grant must not run again.
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	// ErrOrderNotConfirmed rejects reconciliation of an order that has not
	// been confirmed yet.
	ErrOrderNotConfirmed = errors.New("order not confirmed")
	// ErrPermissionDenied means the principal is authenticated but not an
	// admin on a protected action.
	ErrPermissionDenied = errors.New("admin access required")
)

// PartialEntitlementError reports a confirm whose status flip committed
// but where one or more purchase-record appends failed. It lists exactly
// which products are missing so a reconciliation pass can re-run only
// those grants.
type PartialEntitlementError struct {
	OrderID        uuid.UUID
	FailedProducts []uuid.UUID
	Err            error
}

func (e *PartialEntitlementError) Error() string {
	return fmt.Sprintf("order %s confirmed but %d entitlement grant(s) failed: %v",
		e.OrderID, len(e.FailedProducts), e.Err)
}

func (e *PartialEntitlementError) Unwrap() error {
	return e.Err
}
