package services

import (
	"context"
	"log"
	"time"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/policy"
	"littlelemon/internal/repositories"
)

// OrderService turns carts into orders and enforces who may see and change them.
type OrderService struct {
	store     repositories.Store
	roles     repositories.RoleDirectory
	users     repositories.UserRepository
	publisher EventPublisher
	locks     *UserLocks
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(store repositories.Store, roles repositories.RoleDirectory, users repositories.UserRepository, publisher EventPublisher, locks *UserLocks) *OrderService {
	return &OrderService{
		store:     store,
		roles:     roles,
		users:     users,
		publisher: publisher,
		locks:     locks,
		now:       time.Now,
	}
}

// WithClock replaces the time source used to date new orders.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// PlaceOrder converts the user's whole cart into an order. The order, its lines and the
// cart deletion commit together or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.OpPlaceOrder, policy.Target{OwnerID: userID}); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var order *models.Order
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		lines, err := tx.Carts().ListByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.Validation("cart is empty")
		}

		order = buildOrder(userID, lines, s.now())
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		ids := make([]string, len(lines))
		for i, line := range lines {
			ids[i] = line.ID
		}
		deleted, err := tx.Carts().DeleteLines(ctx, userID, ids)
		if err != nil {
			return err
		}
		if deleted != int64(len(ids)) {
			return apperr.Conflict("cart changed during checkout, please retry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s placed by user %s: %d lines, total %s", order.ID, userID, len(order.Lines), order.Total)
	publish(s.publisher, orderEvent(models.EventOrderPlaced, order, userID, s.now()))
	return order, nil
}

func buildOrder(userID string, lines []models.CartLine, now time.Time) *models.Order {
	order := &models.Order{
		UserID: userID,
		Status: models.StatusPlaced,
		Date:   now.UTC(),
		Lines:  make([]models.OrderLine, 0, len(lines)),
	}
	for _, line := range lines {
		order.Total = order.Total.Plus(line.Price)
		order.Lines = append(order.Lines, models.OrderLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Price:      line.Price,
		})
	}
	return order
}

// ListOrders returns every order the actor may see, each with its lines.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.OpListOrders, policy.Target{}); err != nil {
		return nil, err
	}

	var filter repositories.OrderFilter
	switch policy.ListScope(actor) {
	case policy.ScopeAll:
	case policy.ScopeAssigned:
		filter.DeliveryCrewID = actor.UserID
	case policy.ScopeOwn:
		filter.UserID = actor.UserID
	default:
		return nil, apperr.Forbidden("orders are not visible")
	}
	return s.store.Orders().List(ctx, filter)
}

// GetOrder returns one order with its lines to its owner or a manager.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return nil, err
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.OpReadOrder, targetOf(order, nil)); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder applies status and delivery crew changes. Managers may change both in one
// call; delivery crew may only move the status of their own assignments forward.
// The rules are checked again against the row locked by the write transaction, and the
// write only applies if the order still holds the status and crew that were checked.
func (s *OrderService) UpdateOrder(ctx context.Context, userID, orderID string, changes OrderChanges) (*models.Order, error) {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return nil, err
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkUpdate(actor, order, changes); err != nil {
		return nil, err
	}
	if changes.DeliveryCrewSet && changes.DeliveryCrewID != nil {
		if err := s.checkDeliveryCrew(ctx, *changes.DeliveryCrewID); err != nil {
			return nil, err
		}
	}

	var updated *models.Order
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		current, err := tx.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := checkUpdate(actor, current, changes); err != nil {
			return err
		}
		if err := tx.Orders().Update(ctx, current, changes.columns()); err != nil {
			return err
		}
		updated, err = tx.Orders().GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s updated by %s: fields %v", orderID, userID, changes.Fields)
	publish(s.publisher, orderEvent(models.EventOrderUpdated, updated, userID, s.now()))
	return updated, nil
}

// checkUpdate authorizes changes against order before any value in them is reported,
// so callers without update rights only ever see Forbidden.
func checkUpdate(actor policy.Actor, order *models.Order, changes OrderChanges) error {
	if err := authorize(actor, policy.OpUpdateOrder, targetOf(order, changes.Fields)); err != nil {
		return err
	}
	if err := changes.Err(); err != nil {
		return err
	}
	if changes.Status != nil && !actor.IsManager() {
		if order.Status.Terminal() {
			return apperr.Validation("order %s is already %s", order.ID, order.Status)
		}
		if !order.Status.CanAdvanceTo(*changes.Status) {
			return apperr.Validation("order status cannot move from %s to %s", order.Status, *changes.Status)
		}
	}
	return nil
}

func (s *OrderService) checkDeliveryCrew(ctx context.Context, crewID string) error {
	if _, err := s.users.GetByID(ctx, crewID); err != nil {
		return err
	}
	ok, err := s.roles.HasRole(ctx, crewID, models.RoleDeliveryCrew)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("user %s is not in the delivery crew", crewID)
	}
	return nil
}

// DeleteOrder removes an order and its lines. Managers only.
func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID string) error {
	actor, err := resolveActor(ctx, s.roles, userID)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.OpDeleteOrder, policy.Target{}); err != nil {
		return err
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.store.Orders().Delete(ctx, orderID); err != nil {
		return err
	}

	log.Printf("Order %s deleted by %s", orderID, userID)
	publish(s.publisher, orderEvent(models.EventOrderDeleted, order, userID, s.now()))
	return nil
}

func targetOf(order *models.Order, fields []string) policy.Target {
	return policy.Target{
		OwnerID:        order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Fields:         fields,
	}
}

func orderEvent(kind string, order *models.Order, actorID string, at time.Time) models.OrderEvent {
	return models.OrderEvent{
		Type:           kind,
		OrderID:        order.ID,
		UserID:         order.UserID,
		ActorID:        actorID,
		Status:         order.Status,
		DeliveryCrewID: order.DeliveryCrewID,
		Total:          order.Total,
		OccurredAt:     at.UTC(),
	}
}
