package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// RoleDirectory answers role-membership questions and maintains role assignments.
// Assign and Revoke are idempotent and fail with NotFound for unknown users.
type RoleDirectory interface {
	HasRole(ctx context.Context, userID string, role models.Role) (bool, error)
	RolesOf(ctx context.Context, userID string) ([]models.Role, error)
	Assign(ctx context.Context, userID string, role models.Role) error
	Revoke(ctx context.Context, userID string, role models.Role) error
	Members(ctx context.Context, role models.Role) ([]models.User, error)
}
