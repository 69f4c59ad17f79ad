package models

// Role is the DB shape of an admin-managed role.
type Role struct {
	RoleID      string `json:"roleID" db:"role_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	AuditFields
}

// Permission is the DB shape of a grantable capability. The display category
// is derived from the dotted key prefix, not stored.
type Permission struct {
	PermissionID string `json:"permissionID" db:"permission_id"`
	Key          string `json:"key" db:"key"`
	Description  string `json:"description" db:"description"`
	AuditFields
}
