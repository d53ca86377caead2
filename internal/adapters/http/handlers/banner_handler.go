package handlers

import (
	"errors"

	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// BannerHandler handles home banner endpoints
type BannerHandler struct {
	contentService *services.ContentService
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(contentService *services.ContentService) *BannerHandler {
	return &BannerHandler{contentService: contentService}
}

// ListPublic lists published banners for the public site
// @Summary List published banners
// @Description List published home banners in carousel order
// @Tags Banners
// @Produce json
// @Success 200 {object} response.Response
// @Router /banners [get]
func (h *BannerHandler) ListPublic(c *fiber.Ctx) error {
	banners, err := h.contentService.ListBanners(c.Context(), true)
	if err != nil {
		return response.InternalServerError(c, "Failed to list banners")
	}

	return response.Success(c, "Banners retrieved", fiber.Map{
		"banners": banners,
	})
}

// List lists all banners including drafts
// @Summary List banners
// @Description List all banners including unpublished ones
// @Tags Banners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/banners [get]
func (h *BannerHandler) List(c *fiber.Ctx) error {
	banners, err := h.contentService.ListBanners(c.Context(), false)
	if err != nil {
		return response.InternalServerError(c, "Failed to list banners")
	}

	return response.Success(c, "Banners retrieved", fiber.Map{
		"banners": banners,
	})
}

// Get gets a banner by ID
// @Summary Get banner
// @Description Get a banner by ID
// @Tags Banners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/banners/{id} [get]
func (h *BannerHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid banner ID")
	}

	banner, err := h.contentService.GetBanner(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to get banner")
	}

	return response.Success(c, "Banner retrieved", fiber.Map{
		"banner": banner,
	})
}

// Create creates a new banner
// @Summary Create banner
// @Description Create a new home banner
// @Tags Banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BannerInput true "Banner data"
// @Success 201 {object} response.Response
// @Router /admin/banners [post]
func (h *BannerHandler) Create(c *fiber.Ctx) error {
	var req services.BannerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	banner, err := h.contentService.CreateBanner(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create banner")
	}

	return response.Created(c, "Banner created", fiber.Map{
		"banner": banner,
	})
}

// Update updates a banner
// @Summary Update banner
// @Description Update a home banner
// @Tags Banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Param body body services.BannerInput true "Banner data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/banners/{id} [put]
func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid banner ID")
	}

	var req services.BannerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	banner, err := h.contentService.UpdateBanner(c.Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to update banner")
	}

	return response.Success(c, "Banner updated", fiber.Map{
		"banner": banner,
	})
}

// Delete deletes a banner
// @Summary Delete banner
// @Description Delete a home banner
// @Tags Banners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/banners/{id} [delete]
func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid banner ID")
	}

	if err := h.contentService.DeleteBanner(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to delete banner")
	}

	return response.Success(c, "Banner deleted", nil)
}
