package services_test

import (
	"context"
	"testing"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRoleDirectory is a mock implementation of repositories.RoleDirectory
type MockRoleDirectory struct {
	mock.Mock
}

func (m *MockRoleDirectory) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleDirectory) RolesOf(ctx context.Context, userID string) ([]models.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

func (m *MockRoleDirectory) Assign(ctx context.Context, userID string, role models.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockRoleDirectory) Revoke(ctx context.Context, userID string, role models.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockRoleDirectory) Members(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestRoleService_AssignByUsername(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleDirectory)
	users := new(MockUserRepository)
	service := services.NewRoleService(roles, users)

	bob := &models.User{ID: "bob-id", Username: "bob"}
	roles.On("RolesOf", mock.Anything, "boss").Return([]models.Role{models.RoleManager}, nil)
	users.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)
	roles.On("Assign", mock.Anything, "bob-id", models.RoleDeliveryCrew).Return(nil).Twice()

	for i := 0; i < 2; i++ {
		user, err := service.Assign(ctx, "boss", models.RoleDeliveryCrew, services.UserRef{Username: "bob"})
		assert.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
	}
	roles.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestRoleService_NonManagerForbidden(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleDirectory)
	users := new(MockUserRepository)
	service := services.NewRoleService(roles, users)

	roles.On("RolesOf", mock.Anything, "crew").Return([]models.Role{models.RoleDeliveryCrew}, nil)

	_, err := service.Assign(ctx, "crew", models.RoleManager, services.UserRef{UserID: "x"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Members(ctx, "crew", models.RoleManager)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Revoke(ctx, "crew", models.RoleDeliveryCrew, "x")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	roles.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	roles.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoleService_UnknownTargetUser(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleDirectory)
	users := new(MockUserRepository)
	service := services.NewRoleService(roles, users)

	roles.On("RolesOf", mock.Anything, "boss").Return([]models.Role{models.RoleManager}, nil)
	users.On("GetByID", mock.Anything, "ghost").Return(nil, apperr.NotFound("user with id ghost not found"))

	_, err := service.Revoke(ctx, "boss", models.RoleManager, "ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = service.Assign(ctx, "boss", models.RoleManager, services.UserRef{UserID: "ghost"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = service.Assign(ctx, "boss", models.RoleManager, services.UserRef{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRoleService_UnknownRole(t *testing.T) {
	service := services.NewRoleService(new(MockRoleDirectory), new(MockUserRepository))

	_, err := service.Members(context.Background(), "boss", models.Role("chef"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
