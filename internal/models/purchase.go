package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is an entitlement: durable proof that a user may download
// a purchased item. The log is append-only; records are never removed and
// never deduplicated here; the order status guard upstream prevents a
// confirm from running twice.
type PurchaseRecord struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	PurchasedAt  time.Time `json:"purchased_at"`
	DownloadLink string    `json:"download_link"`
}
