package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// OrderFilter narrows an order listing. Empty fields do not filter.
type OrderFilter struct {
	UserID         string
	DeliveryCrewID string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the order together with its lines.
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByIDForUpdate reads the order row without its lines and locks it until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Order, error)
	// Update applies column changes to current, provided the stored status and delivery
	// crew still equal those of current. Only status and delivery_crew_id are accepted.
	Update(ctx context.Context, current *models.Order, changes map[string]interface{}) error
	// Delete removes the order and its lines.
	Delete(ctx context.Context, id string) error
}
