package models

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle stage of an order.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPlaced:         0,
	StatusOutForDelivery: 1,
	StatusDelivered:      2,
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := statusRank[s]; !ok {
		return "", fmt.Errorf("invalid order status %q, expected one of placed, out_for_delivery, delivered", raw)
	}
	return s, nil
}

// CanAdvanceTo reports whether moving from s to next keeps the lifecycle moving forward.
// Staying on the same status is allowed.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	return ok && to >= from
}

// Terminal reports whether no further transitions are expected.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}

// Order is the immutable record of one checkout. Only Status and DeliveryCrewID change after creation.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string      `json:"user" gorm:"index;type:varchar(36);not null"`
	DeliveryCrewID *string     `json:"delivery_crew" gorm:"index;type:varchar(36)"`
	Status         OrderStatus `json:"status" gorm:"index;type:varchar(32);not null"`
	Total          Money       `json:"total" gorm:"type:decimal(12,2);not null"`
	Date           time.Time   `json:"date" gorm:"index;not null"`
	Lines          []OrderLine `json:"order_items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}

// AssignedTo reports whether userID is the order's delivery crew member.
func (o *Order) AssignedTo(userID string) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}

// OrderLine is one menu item's quantity and price within a placed order.
type OrderLine struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string    `json:"order" gorm:"uniqueIndex:idx_order_line_item;type:varchar(36);not null"`
	MenuItemID string    `json:"menuitem_id" gorm:"uniqueIndex:idx_order_line_item;type:varchar(36);not null"`
	MenuItem   *MenuItem `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  Money     `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Price      Money     `json:"price" gorm:"type:decimal(12,2);not null"`
}

// OrderEvent is published after an order changes.
type OrderEvent struct {
	Type           string      `json:"type"`
	OrderID        string      `json:"order_id"`
	UserID         string      `json:"user_id"`
	ActorID        string      `json:"actor_id"`
	Status         OrderStatus `json:"status,omitempty"`
	DeliveryCrewID *string     `json:"delivery_crew_id,omitempty"`
	Total          Money       `json:"total"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

const (
	EventOrderPlaced  = "order.placed"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)
