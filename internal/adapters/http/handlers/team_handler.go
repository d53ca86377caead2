package handlers

import (
	"errors"

	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// TeamHandler handles team, mentor and management member endpoints
type TeamHandler struct {
	contentService *services.ContentService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(contentService *services.ContentService) *TeamHandler {
	return &TeamHandler{contentService: contentService}
}

// ListPublic lists active team members for the public site
// @Summary List team members
// @Description List active team members, optionally filtered by type
// @Tags Team
// @Produce json
// @Param type query string false "Member type (team/mentor/management)"
// @Success 200 {object} response.Response
// @Router /team [get]
func (h *TeamHandler) ListPublic(c *fiber.Ctx) error {
	members, err := h.contentService.ListTeamMembers(c.Context(), c.Query("type"), true)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid member type")
		}
		return response.InternalServerError(c, "Failed to list team members")
	}

	return response.Success(c, "Team members retrieved", fiber.Map{
		"members": members,
	})
}

// List lists all team members including inactive ones
// @Summary List team members (admin)
// @Description List all team members including inactive ones
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param type query string false "Member type"
// @Success 200 {object} response.Response
// @Router /admin/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.contentService.ListTeamMembers(c.Context(), c.Query("type"), false)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid member type")
		}
		return response.InternalServerError(c, "Failed to list team members")
	}

	return response.Success(c, "Team members retrieved", fiber.Map{
		"members": members,
	})
}

// Get gets a team member by ID
// @Summary Get team member
// @Description Get a team member by ID
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/team/{id} [get]
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.contentService.GetTeamMember(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to get team member")
	}

	return response.Success(c, "Team member retrieved", fiber.Map{
		"member": member,
	})
}

// Create creates a new team member
// @Summary Create team member
// @Description Create a new team member profile
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TeamMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Router /admin/team [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req services.TeamMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	member, err := h.contentService.CreateTeamMember(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid member type")
		}
		return response.InternalServerError(c, "Failed to create team member")
	}

	return response.Created(c, "Team member created", fiber.Map{
		"member": member,
	})
}

// Update updates a team member
// @Summary Update team member
// @Description Update a team member profile
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.TeamMemberInput true "Member data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/team/{id} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req services.TeamMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	member, err := h.contentService.UpdateTeamMember(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Team member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid member type")
		default:
			return response.InternalServerError(c, "Failed to update team member")
		}
	}

	return response.Success(c, "Team member updated", fiber.Map{
		"member": member,
	})
}

// Delete deletes a team member
// @Summary Delete team member
// @Description Delete a team member profile
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/team/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.contentService.DeleteTeamMember(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to delete team member")
	}

	return response.Success(c, "Team member deleted", nil)
}
