package models

import "time"

// User represents an account of the restaurant API.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email     string    `json:"email,omitempty" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Role is a staff group a user may belong to. Users without a role are customers.
type Role string

const (
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleDeliveryCrew
}

// UserRole is one (user, role) membership row.
type UserRole struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)"`
	Role      Role      `gorm:"primaryKey;type:varchar(32)"`
	CreatedAt time.Time
}
