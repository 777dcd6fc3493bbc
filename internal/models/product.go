package models

// Product is a downloadable digital good in the catalog. Orders copy
// price/title at order time, so edits here never rewrite history.
type Product struct {
	BaseModel
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Category      string   `gorm:"index" json:"category"`
	Badge         *string  `json:"badge,omitempty"`
	Icon          string   `json:"icon"`
}
