package services

import (
	"context"
	"log"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/policy"
	"littlelemon/internal/repositories"
)

// UserRef identifies the target of a role assignment by id or by username.
type UserRef struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// RoleService lets managers list, grant and revoke staff roles.
type RoleService struct {
	roles repositories.RoleDirectory
	users repositories.UserRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles repositories.RoleDirectory, users repositories.UserRepository) *RoleService {
	return &RoleService{roles: roles, users: users}
}

func (s *RoleService) authorize(ctx context.Context, actorID string, role models.Role) error {
	if !role.Valid() {
		return apperr.NotFound("role %s does not exist", role)
	}
	actor, err := resolveActor(ctx, s.roles, actorID)
	if err != nil {
		return err
	}
	return authorize(actor, policy.OpManageRoles, policy.Target{})
}

// Members lists the users holding role.
func (s *RoleService) Members(ctx context.Context, actorID string, role models.Role) ([]models.User, error) {
	if err := s.authorize(ctx, actorID, role); err != nil {
		return nil, err
	}
	return s.roles.Members(ctx, role)
}

// Assign grants role to the referenced user. Granting a held role succeeds without change.
func (s *RoleService) Assign(ctx context.Context, actorID string, role models.Role, ref UserRef) (*models.User, error) {
	if err := s.authorize(ctx, actorID, role); err != nil {
		return nil, err
	}
	user, err := s.lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.roles.Assign(ctx, user.ID, role); err != nil {
		return nil, err
	}
	log.Printf("User %s granted %s by %s", user.Username, role, actorID)
	return user, nil
}

// Revoke removes role from the user. Revoking a role the user does not hold succeeds.
func (s *RoleService) Revoke(ctx context.Context, actorID string, role models.Role, userID string) (*models.User, error) {
	if err := s.authorize(ctx, actorID, role); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.roles.Revoke(ctx, user.ID, role); err != nil {
		return nil, err
	}
	log.Printf("User %s lost %s, revoked by %s", user.Username, role, actorID)
	return user, nil
}

func (s *RoleService) lookup(ctx context.Context, ref UserRef) (*models.User, error) {
	switch {
	case ref.UserID != "":
		return s.users.GetByID(ctx, ref.UserID)
	case ref.Username != "":
		return s.users.GetByUsername(ctx, ref.Username)
	default:
		return nil, apperr.Validation("username or user_id is required")
	}
}
