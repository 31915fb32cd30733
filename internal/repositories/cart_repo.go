package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	Create(ctx context.Context, line *models.CartLine) error
	Exists(ctx context.Context, userID, menuItemID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.CartLine, error)
	// ListByUserForUpdate reads the user's lines and locks them until the surrounding transaction ends.
	ListByUserForUpdate(ctx context.Context, userID string) ([]models.CartLine, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteLines(ctx context.Context, userID string, ids []string) (int64, error)
}
