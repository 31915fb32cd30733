package services

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/policy"
	"littlelemon/internal/repositories"
)

// MenuService handles business logic related to the menu.
type MenuService struct {
	repo  repositories.MenuItemRepository
	roles repositories.RoleDirectory
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuItemRepository, roles repositories.RoleDirectory) *MenuService {
	return &MenuService{
		repo:  repo,
		roles: roles,
	}
}

// GetAllMenuItems retrieves the menu, optionally for one category slug.
func (s *MenuService) GetAllMenuItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx, category)
}

// GetMenuItemByID retrieves a single menu item by its ID.
func (s *MenuService) GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateMenuItem adds an item to the menu. Managers only. categorySlug may be empty.
func (s *MenuService) CreateMenuItem(ctx context.Context, actorID string, item *models.MenuItem, categorySlug string) error {
	actor, err := resolveActor(ctx, s.roles, actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.OpManageMenu, policy.Target{}); err != nil {
		return err
	}
	if !item.Price.IsPositive() || item.Price.GreaterThan(models.MaxMenuPrice.Decimal) {
		return apperr.Validation("price must be between 0.01 and %s, got %s", models.MaxMenuPrice, item.Price)
	}
	if categorySlug != "" {
		category, err := s.repo.GetCategoryBySlug(ctx, categorySlug)
		if err != nil {
			return err
		}
		item.CategoryID = &category.ID
		item.Category = category
	}
	return s.repo.Create(ctx, item)
}

// GetCategories lists the menu categories.
func (s *MenuService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory adds a menu category. Managers only.
func (s *MenuService) CreateCategory(ctx context.Context, actorID string, category *models.Category) error {
	actor, err := resolveActor(ctx, s.roles, actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.OpManageMenu, policy.Target{}); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, category)
}
