package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// MenuItemRepository defines the interface for menu data access.
type MenuItemRepository interface {
	GetAll(ctx context.Context, categorySlug string) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}
