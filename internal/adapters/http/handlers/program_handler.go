package handlers

import (
	"errors"

	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// ProgramHandler handles "our work" program endpoints
type ProgramHandler struct {
	contentService *services.ContentService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(contentService *services.ContentService) *ProgramHandler {
	return &ProgramHandler{contentService: contentService}
}

// ListPublic lists published programs for the public site
// @Summary List published programs
// @Description List published programs in display order
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Response
// @Router /programs [get]
func (h *ProgramHandler) ListPublic(c *fiber.Ctx) error {
	programs, err := h.contentService.ListPrograms(c.Context(), true)
	if err != nil {
		return response.InternalServerError(c, "Failed to list programs")
	}

	return response.Success(c, "Programs retrieved", fiber.Map{
		"programs": programs,
	})
}

// GetPublicBySlug gets a published program by slug
// @Summary Get published program
// @Description Get a published program by slug
// @Tags Programs
// @Produce json
// @Param slug path string true "Program slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /programs/{slug} [get]
func (h *ProgramHandler) GetPublicBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return response.BadRequest(c, "Invalid slug")
	}

	program, err := h.contentService.GetProgramBySlug(c.Context(), slug, true)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to get program")
	}

	return response.Success(c, "Program retrieved", fiber.Map{
		"program": program,
	})
}

// List lists all programs including drafts
// @Summary List programs
// @Description List all programs including unpublished ones
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/programs [get]
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.contentService.ListPrograms(c.Context(), false)
	if err != nil {
		return response.InternalServerError(c, "Failed to list programs")
	}

	return response.Success(c, "Programs retrieved", fiber.Map{
		"programs": programs,
	})
}

// Get gets a program by ID
// @Summary Get program
// @Description Get a program by ID
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/programs/{id} [get]
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid program ID")
	}

	program, err := h.contentService.GetProgram(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to get program")
	}

	return response.Success(c, "Program retrieved", fiber.Map{
		"program": program,
	})
}

// Create creates a new program
// @Summary Create program
// @Description Create a new program page
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProgramInput true "Program data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/programs [post]
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var req services.ProgramInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	program, err := h.contentService.CreateProgram(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateSlug):
			return response.Conflict(c, "Slug is already in use")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid program data")
		default:
			return response.InternalServerError(c, "Failed to create program")
		}
	}

	return response.Created(c, "Program created", fiber.Map{
		"program": program,
	})
}

// Update updates a program
// @Summary Update program
// @Description Update a program page
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param body body services.ProgramInput true "Program data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/programs/{id} [put]
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid program ID")
	}

	var req services.ProgramInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	program, err := h.contentService.UpdateProgram(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Program not found")
		case errors.Is(err, services.ErrDuplicateSlug):
			return response.Conflict(c, "Slug is already in use")
		default:
			return response.InternalServerError(c, "Failed to update program")
		}
	}

	return response.Success(c, "Program updated", fiber.Map{
		"program": program,
	})
}

// Delete deletes a program
// @Summary Delete program
// @Description Delete a program page
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/programs/{id} [delete]
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid program ID")
	}

	if err := h.contentService.DeleteProgram(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to delete program")
	}

	return response.Success(c, "Program deleted", nil)
}
