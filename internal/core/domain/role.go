package domain

import "strings"

// PermissionCategory groups permissions for display filtering. The grouping
// is derived from the key's dotted prefix, it is not stored.
type PermissionCategory string

const (
	CategoryUI         PermissionCategory = "ui"
	CategoryVisibility PermissionCategory = "visibility"
	CategoryOps        PermissionCategory = "ops"
	CategoryOther      PermissionCategory = "other"
)

// Permission is a single grantable capability, keyed by a dotted namespace
// such as "module.viajes.edit" or "action.export".
type Permission struct {
	PermissionID string `json:"permissionID"`
	Key          string `json:"key"`
	Description  string `json:"description"`
	AuditFields
}

// Category derives the display category from the permission key prefix.
func (p Permission) Category() PermissionCategory {
	switch {
	case strings.HasPrefix(p.Key, "ui."):
		return CategoryUI
	case strings.HasPrefix(p.Key, "visibility."), strings.HasPrefix(p.Key, "module."):
		return CategoryVisibility
	case strings.HasPrefix(p.Key, "ops."), strings.HasPrefix(p.Key, "action."):
		return CategoryOps
	}
	return CategoryOther
}

// Role owns a set of permission references.
type Role struct {
	RoleID      string   `json:"roleID"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"` // Permission key references
	AuditFields
}

// HasPermission reports whether the role grants the given permission key.
func (r Role) HasPermission(key string) bool {
	for _, k := range r.Permissions {
		if k == key {
			return true
		}
	}
	return false
}
