package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// roleService implements the admin role and permission surface. Permission
// categories are never stored; they are derived from the key prefix at read
// time.
type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewRoleService creates a RoleSvcFacade.
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade) portssvc.RoleSvcFacade {
	return &roleService{roleRepo: roleRepo}
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

// validatePermissionKeys checks every referenced key against the known
// permission set.
func (s *roleService) validatePermissionKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	known, err := s.roleRepo.ListPermissions(ctx)
	if err != nil {
		return fmt.Errorf("listing permissions: %w", err)
	}
	knownKeys := make(map[string]struct{}, len(known))
	for _, p := range known {
		knownKeys[p.Key] = struct{}{}
	}
	for _, key := range keys {
		if _, ok := knownKeys[key]; !ok {
			return fmt.Errorf("%w: unknown permission %q", apperrors.ErrValidation, key)
		}
	}
	return nil
}

// CreateRole creates a role with an initial permission set.
func (s *roleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error) {
	if err := s.validatePermissionKeys(ctx, req.Permissions); err != nil {
		return nil, err
	}

	now := time.Now()
	role := domain.Role{
		RoleID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		s.LogError(ctx, "Failed to save role", slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving role: %w", err)
	}
	return &role, nil
}

// GetRoleByID retrieves one role.
func (s *roleService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("finding role %s: %w", roleID, err)
	}
	return role, nil
}

// ListRoles retrieves all roles.
func (s *roleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return roles, nil
}

// UpdateRole updates role fields; a non-nil permission slice replaces the
// whole set.
func (s *roleService) UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest, userID string) (*domain.Role, error) {
	existing, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("finding role %s: %w", roleID, err)
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Permissions != nil {
		if err := s.validatePermissionKeys(ctx, *req.Permissions); err != nil {
			return nil, err
		}
		updated.Permissions = *req.Permissions
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.roleRepo.UpdateRole(ctx, updated); err != nil {
		s.LogError(ctx, "Failed to update role", slog.String("role_id", roleID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating role %s: %w", roleID, err)
	}
	return &updated, nil
}

// DeleteRole removes a role.
func (s *roleService) DeleteRole(ctx context.Context, roleID string, userID string) error {
	if _, err := s.roleRepo.FindRoleByID(ctx, roleID); err != nil {
		return fmt.Errorf("finding role %s: %w", roleID, err)
	}
	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		s.LogError(ctx, "Failed to delete role", slog.String("role_id", roleID), slog.String("error", err.Error()))
		return fmt.Errorf("deleting role %s: %w", roleID, err)
	}
	s.LogInfo(ctx, "Role deleted", slog.String("role_id", roleID), slog.String("user_id", userID))
	return nil
}

// ListPermissions returns all permissions grouped by derived category.
func (s *roleService) ListPermissions(ctx context.Context) (map[domain.PermissionCategory][]domain.Permission, error) {
	perms, err := s.roleRepo.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing permissions: %w", err)
	}
	grouped := make(map[domain.PermissionCategory][]domain.Permission)
	for _, p := range perms {
		grouped[p.Category()] = append(grouped[p.Category()], p)
	}
	return grouped, nil
}
