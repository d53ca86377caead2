package handlers

import (
	"errors"

	"y4d-cms/internal/adapters/http/middleware"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// PermissionHandler handles permission management endpoints
type PermissionHandler struct {
	permissionService *services.PermissionService
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// ReplaceGrantsRequest represents the replace-grants request body
type ReplaceGrantsRequest struct {
	Grants []services.GrantInput `json:"grants"`
}

// MyPermissions returns the caller's effective permissions
// @Summary Get my permissions
// @Description Get the effective permissions of the authenticated user
// @Tags Permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/me/permissions [get]
func (h *PermissionHandler) MyPermissions(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	perms, err := h.permissionService.GetEffectivePermissions(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve permissions")
	}

	return response.Success(c, "Permissions retrieved", perms)
}

// ListGrants lists the custom grants of a user
// @Summary List user grants
// @Description List the custom permission grants of a user
// @Tags Permissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/permissions [get]
func (h *PermissionHandler) ListGrants(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	grants, err := h.permissionService.ListGrants(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list grants")
	}

	return response.Success(c, "Grants retrieved", fiber.Map{
		"grants": grants,
	})
}

// ReplaceGrants replaces all custom grants of a user. Posting an empty list
// reverts the user to role defaults.
// @Summary Replace user grants
// @Description Replace the full custom grant set of a user
// @Tags Permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body ReplaceGrantsRequest true "New grant set"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/permissions [put]
func (h *PermissionHandler) ReplaceGrants(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ReplaceGrantsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	for i := range req.Grants {
		if fieldErrs := validate.Struct(&req.Grants[i]); fieldErrs != nil {
			return response.ValidationFailed(c, fieldErrs)
		}
	}

	count, err := h.permissionService.ReplaceGrants(c.Context(), uint(id), req.Grants)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrSuperAdminProtected):
			return response.Forbidden(c, "Super admin permissions cannot be customized")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Duplicate or invalid grant entries")
		default:
			return response.InternalServerError(c, "Failed to replace grants")
		}
	}

	return response.Success(c, "Grants replaced", fiber.Map{
		"granted": count,
	})
}

// ListSections lists the permission sections catalog
// @Summary List sections
// @Description List the CMS sections known to the permission system
// @Tags Permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/sections [get]
func (h *PermissionHandler) ListSections(c *fiber.Ctx) error {
	sections, err := h.permissionService.ListSections(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list sections")
	}

	return response.Success(c, "Sections retrieved", fiber.Map{
		"sections": sections,
	})
}
