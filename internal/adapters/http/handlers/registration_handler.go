package handlers

import (
	"errors"
	"strings"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles registration request endpoints
type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// SubmitRequest represents public registration request body
type SubmitRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobile_number" validate:"required,max=20"`
	Address      string `json:"address" validate:"required"`
}

// ApproveRequest represents admin approval request body
type ApproveRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// RejectRequest represents admin rejection request body
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Submit handles public registration request submission
// @Summary Submit registration request
// @Description Submit a request for an account, reviewed by an admin
// @Tags Registrations
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /registrations [post]
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	input := &services.SubmitInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
	}

	request, err := h.registrationService.Submit(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid registration data")
		}
		return response.InternalServerError(c, "Failed to submit registration request")
	}

	return response.Created(c, "Registration request submitted, an administrator will review it", fiber.Map{
		"request": request,
	})
}

// List lists registration requests with optional status filter
// @Summary List registration requests
// @Description List registration requests, optionally filtered by status
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending/approved/rejected)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/registrations [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	switch status {
	case "", models.RequestPending, models.RequestApproved, models.RequestRejected:
	default:
		return response.BadRequest(c, "Invalid status filter")
	}

	input := &services.ListRequestsInput{
		Status: status,
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	result, err := h.registrationService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registration requests")
	}

	return response.Success(c, "Registration requests retrieved", result)
}

// Get gets a single registration request
// @Summary Get registration request
// @Description Get a registration request by ID
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/registrations/{id} [get]
func (h *RegistrationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.registrationService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return response.NotFound(c, "Registration request not found")
		}
		return response.InternalServerError(c, "Failed to get registration request")
	}

	return response.Success(c, "Registration request retrieved", fiber.Map{
		"request": request,
	})
}

// Approve approves a pending request and creates the account
// @Summary Approve registration request
// @Description Approve a pending request, creating the user account
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body ApproveRequest true "Account credentials and role"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.ApproveInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     req.Role,
	}

	user, err := h.registrationService.Approve(c.Context(), uint(id), input, adminID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Registration request not found")
		case errors.Is(err, domain.ErrInvalidState):
			return response.Conflict(c, "Registration request has already been resolved")
		case errors.Is(err, domain.ErrDuplicateUsername):
			return response.Conflict(c, "Username already exists")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to approve registration request")
		}
	}

	return response.Created(c, "Registration approved, account created", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Reject rejects a pending request
// @Summary Reject registration request
// @Description Reject a pending request with an optional reason
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body RejectRequest false "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		// Body is optional for rejection
		req.Reason = ""
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	request, err := h.registrationService.Reject(c.Context(), uint(id), strings.TrimSpace(req.Reason), adminID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Registration request not found")
		case errors.Is(err, domain.ErrInvalidState):
			return response.Conflict(c, "Registration request has already been resolved")
		default:
			return response.InternalServerError(c, "Failed to reject registration request")
		}
	}

	return response.Success(c, "Registration request rejected", fiber.Map{
		"request": request,
	})
}
