package repositories

import (
	"context"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRoleDirectory is a GORM implementation of RoleDirectory backed by the user_roles table.
type GORMRoleDirectory struct {
	db *gorm.DB
}

// NewGORMRoleDirectory creates a new instance of GORMRoleDirectory.
func NewGORMRoleDirectory(db *gorm.DB) *GORMRoleDirectory {
	return &GORMRoleDirectory{db: db}
}

func (r *GORMRoleDirectory) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err, "failed to check role %s", role)
	}
	return count > 0, nil
}

func (r *GORMRoleDirectory) RolesOf(ctx context.Context, userID string) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load roles")
	}
	return roles, nil
}

func (r *GORMRoleDirectory) ensureUser(ctx context.Context, userID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperr.Internal(err, "failed to look up user %s", userID)
	}
	if count == 0 {
		return apperr.NotFound("user with ID %s not found", userID)
	}
	return nil
}

// Assign adds the membership. Assigning an existing membership is a no-op.
func (r *GORMRoleDirectory) Assign(ctx context.Context, userID string, role models.Role) error {
	if err := r.ensureUser(ctx, userID); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: userID, Role: role}).Error
	if err != nil {
		return apperr.Internal(err, "failed to assign role %s", role)
	}
	return nil
}

// Revoke removes the membership. Revoking a missing membership is a no-op.
func (r *GORMRoleDirectory) Revoke(ctx context.Context, userID string, role models.Role) error {
	if err := r.ensureUser(ctx, userID); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRole{}).Error
	if err != nil {
		return apperr.Internal(err, "failed to revoke role %s", role)
	}
	return nil
}

// Members lists the users holding role, ordered by username.
func (r *GORMRoleDirectory) Members(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ?", role).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list members of %s", role)
	}
	return users, nil
}

var _ RoleDirectory = (*GORMRoleDirectory)(nil)
