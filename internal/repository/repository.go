package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/cashwave/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository accesses the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

// ProductRepository accesses the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, category string, limit, offset int) ([]models.Product, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// OrderRepository accesses persisted orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]models.Order, int64, error)
	// ConfirmPending flips a pending order to confirmed, recording who and
	// when. The status check and the mutation are one conditional update, so
	// of any number of racing confirms exactly one reports true.
	ConfirmPending(ctx context.Context, id, adminID uuid.UUID, at time.Time) (bool, error)
	SumConfirmedTotals(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository accesses the append-only entitlement log.
type PurchaseRepository interface {
	Append(ctx context.Context, record *models.PurchaseRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchaseRecord, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
