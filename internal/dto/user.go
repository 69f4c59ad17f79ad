package dto

import "github.com/rodmarapp/rodmar_backend/internal/core/domain"

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT and the user it identifies.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest creates a login.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	RoleID   string `json:"roleID"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	RoleID   string `json:"roleID,omitempty"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		RoleID:   u.RoleID,
	}
}
