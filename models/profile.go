package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Profile holds the contact details for one authenticated user. Created
// lazily on first access; the user id itself comes from the identity
// provider.
type Profile struct {
	UserID    string `gorm:"primaryKey" json:"user_id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `gorm:"type:VARCHAR(10);default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
