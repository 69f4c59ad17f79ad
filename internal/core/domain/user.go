package domain

// User is an application login. RoleID links to the admin-managed role that
// gates what the user can see and do.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	RoleID       string `json:"roleID"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
