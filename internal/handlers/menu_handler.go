package handlers

import (
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for menu items.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the menu routes. Browsing is public; auth guards creation.
func (h *MenuHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	menuRoutes := router.Group("/menu-items")
	menuRoutes.Get("/", h.HandleGetMenuItems)
	menuRoutes.Get("/:id", h.HandleGetMenuItemByID)
	menuRoutes.Post("/", auth, h.HandleCreateMenuItem)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Post("/", auth, h.HandleCreateCategory)
}

// HandleGetMenuItems lists the menu, filtered by ?category=<slug> when given.
func (h *MenuHandler) HandleGetMenuItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllMenuItems(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondError(c, err, "retrieve menu items")
	}
	return c.JSON(items)
}

// HandleGetMenuItemByID retrieves a single menu item.
func (h *MenuHandler) HandleGetMenuItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetMenuItemByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve menu item")
	}
	return c.JSON(item)
}

// CreateMenuItemRequest represents the request body for a new menu item.
type CreateMenuItemRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Price    string `json:"price" validate:"required,numeric"`
	Featured bool   `json:"featured"`
	Category string `json:"category" validate:"omitempty,max=64"`
}

// HandleCreateMenuItem adds an item to the menu.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var req CreateMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	price, err := models.NewMoney(req.Price)
	if err != nil {
		return respondError(c, apperr.Validation("price must be a decimal amount, got %q", req.Price), "create menu item")
	}

	item := models.MenuItem{
		Title:    req.Title,
		Price:    price,
		Featured: req.Featured,
	}
	if err := h.service.CreateMenuItem(c.UserContext(), currentUserID(c), &item, req.Category); err != nil {
		return respondError(c, err, "create menu item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetCategories lists the menu categories.
func (h *MenuHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return respondError(c, err, "retrieve categories")
	}
	return c.JSON(categories)
}

// HandleCreateCategory adds a menu category.
func (h *MenuHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badBody(c, err)
	}
	category.ID = ""
	if err := h.validate.Struct(category); err != nil {
		return validationFailed(c, err)
	}
	if err := h.service.CreateCategory(c.UserContext(), currentUserID(c), &category); err != nil {
		return respondError(c, err, "create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
