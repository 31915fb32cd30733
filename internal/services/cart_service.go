package services

import (
	"context"
	"fmt"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/policy"
	"littlelemon/internal/repositories"
)

// CartService manages the pending cart lines of each user.
type CartService struct {
	store repositories.Store
	menu  repositories.MenuItemRepository
	roles repositories.RoleDirectory
	locks *UserLocks
}

// NewCartService creates a new CartService. locks must be shared with the OrderService.
func NewCartService(store repositories.Store, menu repositories.MenuItemRepository, roles repositories.RoleDirectory, locks *UserLocks) *CartService {
	return &CartService{
		store: store,
		menu:  menu,
		roles: roles,
		locks: locks,
	}
}

func (s *CartService) authorize(ctx context.Context, userID string) error {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return err
	}
	return authorize(actor, policy.OpManageCart, policy.Target{OwnerID: userID})
}

// AddLine puts quantity units of a menu item in the user's cart at the item's current price.
// Adding an item that is already in the cart is a conflict; quantities are never merged.
func (s *CartService) AddLine(ctx context.Context, userID, menuItemID string, quantity int) (*models.CartLine, error) {
	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	if quantity < models.MinCartQuantity || quantity > models.MaxCartQuantity {
		return nil, apperr.Validation("quantity must be between %d and %d, got %d",
			models.MinCartQuantity, models.MaxCartQuantity, quantity)
	}

	item, err := s.menu.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	carts := s.store.Carts()
	exists, err := carts.Exists(ctx, userID, item.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("menu item %s is already in the cart", item.ID)
	}

	line := &models.CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Times(quantity),
	}
	if err := carts.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add menu item %s to cart: %w", item.ID, err)
	}
	line.MenuItem = item
	return line, nil
}

// ListLines returns the user's cart in insertion order.
func (s *CartService) ListLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Carts().ListByUser(ctx, userID)
}

// Clear empties the user's cart and reports how many lines were removed.
func (s *CartService) Clear(ctx context.Context, userID string) (int64, error) {
	if err := s.authorize(ctx, userID); err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.store.Carts().DeleteByUser(ctx, userID)
}
