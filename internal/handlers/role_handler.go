package handlers

import (
	"fmt"
	"strings"

	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles HTTP requests for staff group membership.
type RoleHandler struct {
	service *services.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(service *services.RoleService) *RoleHandler {
	return &RoleHandler{
		service: service,
	}
}

// RegisterRoutes registers /groups/manager/users and /groups/delivery-crew/users.
func (h *RoleHandler) RegisterRoutes(router fiber.Router) {
	groupRoutes := router.Group("/groups/:group/users")
	groupRoutes.Get("/", h.HandleGetMembers)
	groupRoutes.Post("/", h.HandleAssign)
	groupRoutes.Delete("/:id", h.HandleRevoke)
}

// MemberResponse is one user in a group listing.
type MemberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// roleOf maps a URL group name such as "delivery-crew" to its role.
func roleOf(c *fiber.Ctx) models.Role {
	return models.Role(strings.ReplaceAll(c.Params("group"), "-", "_"))
}

func describe(role models.Role) string {
	if role == models.RoleDeliveryCrew {
		return "a delivery crew member"
	}
	return "a " + string(role)
}

// HandleGetMembers lists the users of a group.
func (h *RoleHandler) HandleGetMembers(c *fiber.Ctx) error {
	users, err := h.service.Members(c.UserContext(), currentUserID(c), roleOf(c))
	if err != nil {
		return respondError(c, err, "retrieve group members")
	}
	members := make([]MemberResponse, 0, len(users))
	for _, u := range users {
		members = append(members, MemberResponse{ID: u.ID, Username: u.Username})
	}
	return c.JSON(members)
}

// HandleAssign adds a user, given by username or user_id, to a group.
func (h *RoleHandler) HandleAssign(c *fiber.Ctx) error {
	var ref services.UserRef
	if err := c.BodyParser(&ref); err != nil {
		return badBody(c, err)
	}

	role := roleOf(c)
	user, err := h.service.Assign(c.UserContext(), currentUserID(c), role, ref)
	if err != nil {
		return respondError(c, err, "assign role")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("%s is now %s", user.Username, describe(role)),
	})
}

// HandleRevoke removes a user from a group.
func (h *RoleHandler) HandleRevoke(c *fiber.Ctx) error {
	role := roleOf(c)
	user, err := h.service.Revoke(c.UserContext(), currentUserID(c), role, c.Params("id"))
	if err != nil {
		return respondError(c, err, "revoke role")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s is no longer %s", user.Username, describe(role)),
	})
}
