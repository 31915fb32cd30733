package repositories

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var mutableOrderColumns = map[string]bool{
	"status":           true,
	"delivery_crew_id": true,
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order row first and then its lines. Callers wanting atomicity run it
// inside Store.Transaction.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return apperr.Internal(err, "failed to create order")
	}
	if len(order.Lines) == 0 {
		return nil
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
	}
	if err := db.Omit(clause.Associations).Create(&order.Lines).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("order %s lists the same menu item twice", order.ID)
		}
		return apperr.Internal(err, "failed to create order lines")
	}
	return nil
}

func (r *GORMOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id") }).
		Preload("Lines.MenuItem").
		Preload("Lines.MenuItem.Category")
}

// List returns matching orders, newest first, each with its lines.
func (r *GORMOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := r.withLines(ctx)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.DeliveryCrewID != "" {
		query = query.Where("delivery_crew_id = ?", filter.DeliveryCrewID)
	}
	var orders []models.Order
	if err := query.Order("date DESC, id").Find(&orders).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list orders")
	}
	return orders, nil
}

// GetByID retrieves a single order with its lines.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.withLines(ctx).First(&order, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("order with ID %s not found", id)
		}
		return nil, apperr.Internal(err, "failed to get order %s", id)
	}
	return &order, nil
}

// GetByIDForUpdate reads the order row with a row lock. SQLite ignores the locking clause.
func (r *GORMOrderRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("order with ID %s not found", id)
		}
		return nil, apperr.Internal(err, "failed to lock order %s", id)
	}
	return &order, nil
}

// Update writes the given columns if the order still has the status and delivery crew of
// current. Immutable columns are refused outright.
func (r *GORMOrderRepository) Update(ctx context.Context, current *models.Order, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	for column := range changes {
		if !mutableOrderColumns[column] {
			return apperr.Validation("%s cannot be changed", column)
		}
	}

	db := r.db.WithContext(ctx)
	query := db.Model(&models.Order{}).Where("id = ? AND status = ?", current.ID, current.Status)
	if current.DeliveryCrewID == nil {
		query = query.Where("delivery_crew_id IS NULL")
	} else {
		query = query.Where("delivery_crew_id = ?", *current.DeliveryCrewID)
	}
	res := query.Updates(changes)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to update order %s", current.ID)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", current.ID).Count(&count).Error; err != nil {
		return apperr.Internal(err, "failed to look up order %s", current.ID)
	}
	if count == 0 {
		return apperr.NotFound("order with ID %s not found for update", current.ID)
	}
	return apperr.Conflict("order %s was changed by another request, please retry", current.ID)
}

// Delete removes the lines and then the order in one transaction.
func (r *GORMOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return apperr.Internal(err, "failed to delete lines of order %s", id)
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return apperr.Internal(res.Error, "failed to delete order %s", id)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("order with ID %s not found for deletion", id)
		}
		return nil
	})
}
