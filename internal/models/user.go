package models

// User roles. Accounts are created as customers; promotion to admin
// happens only through the admin endpoint.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered shopper.
type User struct {
	BaseModel
	Email             string           `gorm:"uniqueIndex" json:"email"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	WhatsApp          string           `json:"whatsapp"`
	Role              string           `json:"role"`
	PasswordHash      string           `json:"-"`
	IsActive          bool             `json:"is_active"`
	PurchasedProducts []PurchaseRecord `gorm:"foreignKey:UserID" json:"purchased_products,omitempty"`
}

// FullName joins first and last name for contact snapshots.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
