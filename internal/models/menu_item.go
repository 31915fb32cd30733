package models

import "time"

// Category groups menu items, e.g. "mains" or "desserts".
type Category struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug  string `json:"slug" gorm:"uniqueIndex;type:varchar(64)" validate:"required,min=2,max=64"`
	Title string `json:"title" gorm:"type:varchar(255)" validate:"required,max=255"`
}

// MenuItem is a dish offered by the restaurant. Cart and order lines pin its price when created.
type MenuItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string    `json:"title" gorm:"index;type:varchar(255)"`
	Price      Money     `json:"price" gorm:"type:decimal(8,2);not null"`
	Featured   bool      `json:"featured" gorm:"index"`
	CategoryID *string   `json:"category_id" gorm:"index;type:varchar(36)"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
