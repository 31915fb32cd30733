package models

import "time"

// CartLine is a pending (user, menu item) pairing. Quantity and prices are fixed at insertion.
type CartLine struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36);not null"`
	MenuItemID string    `json:"menuitem_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36);not null"`
	MenuItem   *MenuItem `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  Money     `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Price      Money     `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	MinCartQuantity = 1
	MaxCartQuantity = 9
)
