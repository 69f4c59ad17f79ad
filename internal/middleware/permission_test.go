package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
)

type stubUserService struct {
	portssvc.UserSvcFacade
	user *domain.User
	err  error
}

func (s *stubUserService) GetUserByID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

type stubRoleService struct {
	portssvc.RoleSvcFacade
	role *domain.Role
	err  error
}

func (s *stubRoleService) GetRoleByID(context.Context, string) (*domain.Role, error) {
	return s.role, s.err
}

func permissionRequest(users portssvc.UserSvcFacade, roles portssvc.RoleSvcFacade, userID string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequirePermission(users, roles, "ui.admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePermission(t *testing.T) {
	adminRole := &domain.Role{RoleID: "r1", Name: "Administradora", Permissions: []string{"ui.admin"}}
	viewerRole := &domain.Role{RoleID: "r2", Name: "Contadora", Permissions: []string{"module.minas.view"}}

	tests := []struct {
		name     string
		users    *stubUserService
		roles    *stubRoleService
		userID   string
		wantCode int
	}{
		{
			name:     "granted",
			users:    &stubUserService{user: &domain.User{UserID: "u1", RoleID: "r1"}},
			roles:    &stubRoleService{role: adminRole},
			userID:   "u1",
			wantCode: http.StatusOK,
		},
		{
			name:     "role lacks the key",
			users:    &stubUserService{user: &domain.User{UserID: "u1", RoleID: "r2"}},
			roles:    &stubRoleService{role: viewerRole},
			userID:   "u1",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "user has no role",
			users:    &stubUserService{user: &domain.User{UserID: "u1"}},
			roles:    &stubRoleService{},
			userID:   "u1",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "role lookup fails",
			users:    &stubUserService{user: &domain.User{UserID: "u1", RoleID: "gone"}},
			roles:    &stubRoleService{err: apperrors.ErrNotFound},
			userID:   "u1",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "no authenticated user",
			users:    &stubUserService{},
			roles:    &stubRoleService{},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := permissionRequest(tt.users, tt.roles, tt.userID)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
