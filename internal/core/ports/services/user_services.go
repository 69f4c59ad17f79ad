package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// UserSvcFacade exposes login and user management.
type UserSvcFacade interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
