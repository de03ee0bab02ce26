package models

import "gorm.io/gorm"

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer         Role = "customer"
	RoleVeterinarian     Role = "veterinarian"
	RoleInventoryManager Role = "inventory_manager"
	RoleAdmin            Role = "admin"
)

// ValidRole reports whether r is a member of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleVeterinarian, RoleInventoryManager, RoleAdmin:
		return true
	}
	return false
}

// User is the account model. Password holds the bcrypt hash and is never
// serialised.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone    string `gorm:"uniqueIndex;size:32" json:"phone"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:50;not null;default:customer" json:"role"`

	// Veterinarian-only fields.
	Specialization    string `gorm:"size:255" json:"specialization,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	IsVerified        bool   `json:"is_verified,omitempty"`
}
