package repositories

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMMenuItemRepository is a GORM implementation of MenuItemRepository.
type GORMMenuItemRepository struct {
	db *gorm.DB
}

// NewGORMMenuItemRepository creates a new instance of GORMMenuItemRepository.
func NewGORMMenuItemRepository(db *gorm.DB) *GORMMenuItemRepository {
	return &GORMMenuItemRepository{db: db}
}

// GetAll retrieves the menu, optionally restricted to one category.
func (r *GORMMenuItemRepository) GetAll(ctx context.Context, categorySlug string) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Preload("Category")
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	var items []models.MenuItem
	if err := query.Order("menu_items.title").Find(&items).Error; err != nil {
		return nil, apperr.Internal(err, "failed to get menu items")
	}
	return items, nil
}

// GetByID retrieves a single menu item.
func (r *GORMMenuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("menu item with ID %s not found", id)
		}
		return nil, apperr.Internal(err, "failed to get menu item %s", id)
	}
	return &item, nil
}

// Create creates a new menu item.
func (r *GORMMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return apperr.Internal(err, "failed to create menu item")
	}
	return nil
}

// GetCategoryBySlug retrieves a category by slug.
func (r *GORMMenuItemRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("category %s not found", slug)
		}
		return nil, apperr.Internal(err, "failed to get category %s", slug)
	}
	return &category, nil
}

// CreateCategory creates a category. Slugs are unique.
func (r *GORMMenuItemRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("category %s already exists", category.Slug)
		}
		return apperr.Internal(err, "failed to create category")
	}
	return nil
}

// ListCategories returns every category ordered by slug.
func (r *GORMMenuItemRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("slug").Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list categories")
	}
	return categories, nil
}
