package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/core/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
	"github.com/rodmarapp/rodmar_backend/internal/utils"
)

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		UserID:       "u1",
		Username:     "marta",
		Name:         "Marta",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestUserService_Authenticate(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := services.NewUserService(userRepo, roleRepo)

	userRepo.On("FindUserByUsername", mock.Anything, "marta").
		Return(activeUser(t, "s3cret-pass"), nil)

	user, err := svc.Authenticate(context.Background(), "marta", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
}

func TestUserService_AuthenticateFailures(t *testing.T) {
	inactive := activeUser(t, "s3cret-pass")
	inactive.IsActive = false

	tests := []struct {
		name     string
		found    *domain.User
		findErr  error
		password string
	}{
		{name: "unknown username", findErr: apperrors.ErrNotFound, password: "s3cret-pass"},
		{name: "inactive user", found: inactive, password: "s3cret-pass"},
		{name: "wrong password", found: activeUser(t, "s3cret-pass"), password: "not-it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			svc := services.NewUserService(userRepo, new(MockRoleRepository))

			if tt.found != nil {
				userRepo.On("FindUserByUsername", mock.Anything, "marta").Return(tt.found, nil)
			} else {
				userRepo.On("FindUserByUsername", mock.Anything, "marta").Return(nil, tt.findErr)
			}

			// All three look identical to the caller.
			_, err := svc.Authenticate(context.Background(), "marta", tt.password)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}
}

func TestUserService_CreateUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := services.NewUserService(userRepo, roleRepo)

	userRepo.On("FindUserByUsername", mock.Anything, "nuevo").Return(nil, apperrors.ErrNotFound)
	roleRepo.On("FindRoleByID", mock.Anything, "r1").Return(&domain.Role{RoleID: "r1"}, nil)
	userRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "nuevo" &&
			u.RoleID == "r1" &&
			u.IsActive &&
			u.PasswordHash != "contrasena1" &&
			utils.CheckPasswordHash("contrasena1", u.PasswordHash)
	})).Return(nil).Once()

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "nuevo",
		Password: "contrasena1",
		Name:     "Nuevo Usuario",
		RoleID:   "r1",
	}, "u1")
	require.NoError(t, err)

	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "u1", user.CreatedBy)
	userRepo.AssertExpectations(t)
}

func TestUserService_CreateUserRejectsTakenUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, new(MockRoleRepository))

	userRepo.On("FindUserByUsername", mock.Anything, "marta").
		Return(activeUser(t, "s3cret-pass"), nil)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marta",
		Password: "contrasena1",
		Name:     "Marta",
	}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	userRepo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestUserService_CreateUserRejectsUnknownRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := services.NewUserService(userRepo, roleRepo)

	userRepo.On("FindUserByUsername", mock.Anything, "nuevo").Return(nil, apperrors.ErrNotFound)
	roleRepo.On("FindRoleByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "nuevo",
		Password: "contrasena1",
		Name:     "Nuevo",
		RoleID:   "missing",
	}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	userRepo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestUserService_GetUserByID(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, new(MockRoleRepository))

	userRepo.On("FindUserByID", mock.Anything, "u1").Return(activeUser(t, "s3cret-pass"), nil)

	user, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "marta", user.Username)
}
