package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
)

// EntitlementService appends purchase records to the buyer's log on
// order confirmation and answers ownership queries.
type EntitlementService struct {
	purchases       repository.PurchaseRepository
	downloadBaseURL string
}

// NewEntitlementService constructs an EntitlementService.
func NewEntitlementService(purchases repository.PurchaseRepository, downloadBaseURL string) *EntitlementService {
	return &EntitlementService{purchases: purchases, downloadBaseURL: downloadBaseURL}
}

// Grant appends one purchase record per order item. It keeps going after
// individual failures so a single bad append cannot block the remaining
// items, and reports what is missing as a PartialEntitlementError so the
// caller never mistakes a partial grant for success.
func (s *EntitlementService) Grant(ctx context.Context, userID, orderID uuid.UUID, items []models.OrderItem) error {
	var failed []uuid.UUID
	var lastErr error

	for _, item := range items {
		record := &models.PurchaseRecord{
			UserID:       userID,
			ProductID:    item.ProductID,
			OrderID:      orderID,
			Title:        item.Title,
			Price:        item.UnitPrice,
			Quantity:     item.Quantity,
			PurchasedAt:  time.Now(),
			DownloadLink: s.DownloadLink(item.ProductID),
		}

		if err := s.purchases.Append(ctx, record); err != nil {
			log.Printf("[Entitlement] grant failed for user %s product %s: %v", userID, item.ProductID, err)
			failed = append(failed, item.ProductID)
			lastErr = err
		}
	}

	if len(failed) > 0 {
		return &PartialEntitlementError{OrderID: orderID, FailedProducts: failed, Err: lastErr}
	}
	return nil
}

// HasPurchased reports whether the user already owns the product.
func (s *EntitlementService) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.purchases.Exists(ctx, userID, productID)
}

// List returns the user's purchase log, newest first.
func (s *EntitlementService) List(ctx context.Context, userID uuid.UUID) ([]models.PurchaseRecord, error) {
	return s.purchases.ListByUser(ctx, userID)
}

// DownloadLink builds the download URL for a purchased product.
func (s *EntitlementService) DownloadLink(productID uuid.UUID) string {
	return fmt.Sprintf("%s/%s/download.zip", s.downloadBaseURL, productID)
}
