package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
	"github.com/rodmarapp/rodmar_backend/internal/middleware"
)

// adminHandler serves the role and permission management surface.
type adminHandler struct {
	roleService portssvc.RoleSvcFacade
}

func registerAdminRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade, userService portssvc.UserSvcFacade) {
	h := &adminHandler{roleService: roleService}

	// Role management is not for every login; it needs the admin permission.
	admin := rg.Group("/admin", middleware.RequirePermission(userService, roleService, "ui.admin"))
	{
		admin.GET("/roles", h.listRoles)
		admin.POST("/roles", h.createRole)
		admin.GET("/roles/:id", h.getRole)
		admin.PATCH("/roles/:id", h.updateRole)
		admin.DELETE("/roles/:id", h.deleteRole)
		admin.GET("/permissions", h.listPermissions)
	}
}

// listRoles godoc
// @Summary List roles
// @Tags admin
// @Produce json
// @Success 200 {array} dto.RoleResponse
// @Security BearerAuth
// @Router /admin/roles [get]
func (h *adminHandler) listRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = dto.ToRoleResponse(&roles[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createRole godoc
// @Summary Create a role
// @Tags admin
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string "Unknown permission key"
// @Security BearerAuth
// @Router /admin/roles [post]
func (h *adminHandler) createRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// getRole godoc
// @Summary Get a role by ID
// @Tags admin
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /admin/roles/{id} [get]
func (h *adminHandler) getRole(c *gin.Context) {
	role, err := h.roleService.GetRoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// updateRole godoc
// @Summary Update a role
// @Description A non-null permissions array replaces the whole set.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param role body dto.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} dto.RoleResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [patch]
func (h *adminHandler) updateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// deleteRole godoc
// @Summary Delete a role
// @Tags admin
// @Param id path string true "Role ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /admin/roles/{id} [delete]
func (h *adminHandler) deleteRole(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listPermissions godoc
// @Summary List permissions grouped by category
// @Description Categories (ui, visibility, ops, other) are derived from the dotted key prefix, never stored.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]dto.PermissionResponse
// @Security BearerAuth
// @Router /admin/permissions [get]
func (h *adminHandler) listPermissions(c *gin.Context) {
	grouped, err := h.roleService.ListPermissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make(map[string][]dto.PermissionResponse, len(grouped))
	for category, perms := range grouped {
		list := make([]dto.PermissionResponse, len(perms))
		for i := range perms {
			list[i] = dto.ToPermissionResponse(&perms[i])
		}
		response[string(category)] = list
	}
	c.JSON(http.StatusOK, response)
}
