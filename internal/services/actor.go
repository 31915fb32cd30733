package services

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/policy"
	"littlelemon/internal/repositories"
)

// resolveActor loads the roles of userID. An empty userID yields an anonymous actor.
func resolveActor(ctx context.Context, roles repositories.RoleDirectory, userID string) (policy.Actor, error) {
	if userID == "" {
		return policy.Actor{}, nil
	}
	held, err := roles.RolesOf(ctx, userID)
	if err != nil {
		return policy.Actor{}, err
	}
	return policy.Actor{UserID: userID, Roles: held}, nil
}

// authorize turns a policy denial into a classified error.
func authorize(actor policy.Actor, op policy.Operation, target policy.Target) error {
	d := policy.Decide(actor, op, target)
	if d.Allowed {
		return nil
	}
	switch d.Kind {
	case policy.DenyValidation:
		return apperr.Validation("%s", d.Reason)
	case policy.DenyUnauthenticated:
		return apperr.Unauthorized("%s", d.Reason)
	default:
		return apperr.Forbidden("%s", d.Reason)
	}
}
