package dto

import "github.com/rodmarapp/rodmar_backend/internal/core/domain"

// CreateRoleRequest creates a role with an initial permission set.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest updates role fields. Nil means unchanged; a non-nil
// Permissions slice replaces the whole set.
type UpdateRoleRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// RoleResponse defines the data returned for a role.
type RoleResponse struct {
	RoleID      string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// PermissionResponse defines the data returned for a permission, with its
// derived display category.
type PermissionResponse struct {
	PermissionID string `json:"id"`
	Key          string `json:"key"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category"`
}

// ToRoleResponse converts a domain.Role to its DTO.
func ToRoleResponse(r *domain.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		RoleID:      r.RoleID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
	}
}

// ToPermissionResponse converts a domain.Permission to its DTO.
func ToPermissionResponse(p *domain.Permission) PermissionResponse {
	return PermissionResponse{
		PermissionID: p.PermissionID,
		Key:          p.Key,
		Description:  p.Description,
		Category:     string(p.Category()),
	}
}
