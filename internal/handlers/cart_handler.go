package handlers

import (
	"littlelemon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart/menu-items")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddLine)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart lists the caller's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	lines, err := h.service.ListLines(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, "retrieve cart")
	}
	return c.JSON(lines)
}

// AddCartLineRequest represents the request body for adding an item to the cart.
// Quantity bounds are checked by the cart service.
type AddCartLineRequest struct {
	MenuItemID string `json:"menuitem_id" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// HandleAddLine adds one menu item to the caller's cart.
func (h *CartHandler) HandleAddLine(c *fiber.Ctx) error {
	var req AddCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	line, err := h.service.AddLine(c.UserContext(), currentUserID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		return respondError(c, err, "add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if _, err := h.service.Clear(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err, "clear cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
