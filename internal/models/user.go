package models

// User represents an application login.
type User struct {
	UserID       string `json:"userID" db:"user_id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name"`
	RoleID       string `json:"roleID" db:"role_id"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
}
