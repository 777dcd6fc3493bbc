package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store persists one cart per user session as a single keyed blob. The
// cart is single-writer, single-reader state; the store does no locking.
type Store interface {
	// Load returns the user's cart, or an empty cart if none is stored.
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart *Cart) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
