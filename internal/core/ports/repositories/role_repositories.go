package repositories

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// RoleReader defines read operations for roles and permissions.
type RoleReader interface {
	// FindRoleByID retrieves a role with its permission keys populated.
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)

	// ListRoles retrieves all roles with permission keys populated.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// ListPermissions retrieves all known permissions.
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
}

// RoleWriter defines write operations for roles and permissions.
type RoleWriter interface {
	// SaveRole persists a new role and its permission set.
	SaveRole(ctx context.Context, role domain.Role) error

	// UpdateRole rewrites a role and replaces its permission set.
	UpdateRole(ctx context.Context, role domain.Role) error

	// DeleteRole removes a role.
	DeleteRole(ctx context.Context, roleID string) error

	// SavePermission persists a new permission.
	SavePermission(ctx context.Context, permission domain.Permission) error
}

// RoleRepositoryFacade combines all role repository interfaces.
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}
