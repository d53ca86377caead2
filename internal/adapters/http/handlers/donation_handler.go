package handlers

import (
	"errors"

	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/pagination"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation record endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Record records a completed donation
// @Summary Record donation
// @Description Record a completed donation and return the receipt number
// @Tags Donations
// @Accept json
// @Produce json
// @Param body body services.RecordDonationInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Record(c *fiber.Ctx) error {
	var req services.RecordDonationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	donation, err := h.donationService.RecordDonation(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid donation amount")
		}
		return response.InternalServerError(c, "Failed to record donation")
	}

	return response.Created(c, "Donation recorded", fiber.Map{
		"donation": donation,
	})
}

// GetByReceipt gets a donation by receipt number
// @Summary Get donation by receipt
// @Description Get a donation record by its receipt number
// @Tags Donations
// @Produce json
// @Param receipt_no path string true "Receipt number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{receipt_no} [get]
func (h *DonationHandler) GetByReceipt(c *fiber.Ctx) error {
	receiptNo := c.Params("receipt_no")
	if receiptNo == "" {
		return response.BadRequest(c, "Invalid receipt number")
	}

	donation, err := h.donationService.GetDonationByReceipt(c.Context(), receiptNo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Donation not found")
		}
		return response.InternalServerError(c, "Failed to get donation")
	}

	return response.Success(c, "Donation retrieved", fiber.Map{
		"donation": donation,
	})
}

// List lists donations for the CMS
// @Summary List donations
// @Description List donation records, newest first
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	donations, total, err := h.donationService.ListDonations(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved", pagination.NewResponse(donations, params, total))
}
