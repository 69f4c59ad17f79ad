package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// RoleSvcFacade exposes the admin role and permission surface.
type RoleSvcFacade interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error)
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest, userID string) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID string, userID string) error

	// ListPermissions returns all permissions grouped by derived category.
	ListPermissions(ctx context.Context) (map[domain.PermissionCategory][]domain.Permission, error)
}
