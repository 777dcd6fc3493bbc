package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. The only transition is pending -> confirmed; nothing
// leaves confirmed.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// Order is an immutable snapshot of a cart plus the buyer's contact info
// at submission time. Later profile or catalog edits never touch it.
type Order struct {
	BaseModel
	UserID       uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	UserName     string      `json:"user_name"`
	UserEmail    string      `json:"user_email"`
	UserWhatsApp string      `json:"user_whatsapp"`
	Status       string      `gorm:"index" json:"status"`
	Total        float64     `json:"total"`
	ConfirmedAt  *time.Time  `json:"confirmed_at,omitempty"`
	ConfirmedBy  *uuid.UUID  `gorm:"type:uuid" json:"confirmed_by,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
}

// OrderItem is a cart line frozen into an order.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}
