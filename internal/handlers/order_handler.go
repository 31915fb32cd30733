package handlers

import (
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	// PUT and PATCH both apply the fields present in the body.
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Patch("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders lists the orders visible to the caller.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(orders)
}

// HandlePlaceOrder checks out the caller's cart.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	order, err := h.service.PlaceOrder(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, "place order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrderByID retrieves a single order with its items.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve order")
	}
	return c.JSON(order)
}

// HandleUpdateOrder changes the status or delivery crew of an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	// Invalid values are reported by UpdateOrder after authorization.
	changes, _ := services.ParseOrderChanges(c.Body())
	order, err := h.service.UpdateOrder(c.UserContext(), currentUserID(c), c.Params("id"), changes)
	if err != nil {
		return respondError(c, err, "update order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err, "delete order")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
