package repositories

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Create stores a new cart line. A second line for the same (user, menu item) is a conflict.
func (r *GORMCartRepository) Create(ctx context.Context, line *models.CartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("menu item %s is already in the cart", line.MenuItemID)
		}
		return apperr.Internal(err, "failed to create cart line")
	}
	return nil
}

// Exists reports whether the user already has a line for the menu item.
func (r *GORMCartRepository) Exists(ctx context.Context, userID, menuItemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err, "failed to look up cart line")
	}
	return count > 0, nil
}

// ListByUser returns the user's lines in insertion order with their menu items.
func (r *GORMCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&lines).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list cart lines")
	}
	return lines, nil
}

// ListByUserForUpdate is ListByUser with row locks. SQLite ignores the locking clause
// and relies on its database-level write lock instead.
func (r *GORMCartRepository) ListByUserForUpdate(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&lines).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to lock cart lines")
	}
	return lines, nil
}

// DeleteByUser empties the user's cart.
func (r *GORMCartRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error, "failed to clear cart")
	}
	return res.RowsAffected, nil
}

// DeleteLines removes exactly the given lines of the user.
func (r *GORMCartRepository) DeleteLines(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.CartLine{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error, "failed to delete %d cart lines", len(ids))
	}
	return res.RowsAffected, nil
}
