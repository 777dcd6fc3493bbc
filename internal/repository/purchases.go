package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/cashwave/internal/models"
)

type gormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository constructs the GORM-backed purchase log.
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &gormPurchaseRepository{db: db}
}

func (r *gormPurchaseRepository) Append(ctx context.Context, record *models.PurchaseRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *gormPurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchaseRecord, error) {
	var records []models.PurchaseRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormPurchaseRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PurchaseRecord{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
