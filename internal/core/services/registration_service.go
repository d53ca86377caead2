package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/pkg/password"

	"gorm.io/gorm"
)

// RegistrationService handles the signup request workflow: public submission,
// then a single admin resolution (approve or reject).
type RegistrationService struct {
	requestRepo repositories.RegistrationRequestRepository
	userRepo    repositories.UserRepository
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	requestRepo repositories.RegistrationRequestRepository,
	userRepo repositories.UserRepository,
) *RegistrationService {
	return &RegistrationService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// SubmitInput represents a public signup request
type SubmitInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobile_number" validate:"required,max=20"`
	Address      string `json:"address" validate:"required"`
}

// ApproveInput represents admin approval input
type ApproveInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// Submit stores a new pending registration request. Duplicate emails are
// accepted here; uniqueness is only enforced when an admin approves.
func (s *RegistrationService) Submit(ctx context.Context, input *SubmitInput) (*models.RegistrationRequest, error) {
	req := &models.RegistrationRequest{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		MobileNumber: strings.TrimSpace(input.MobileNumber),
		Address:      strings.TrimSpace(input.Address),
		Status:       models.RequestPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("✅ Registration request submitted: %s", req.Email)
	return req, nil
}

// Approve resolves a pending request by creating an approved user account.
// Only valid while the request is still pending; the status transition and
// the user insert share one store transaction, so a concurrent resolution
// loses cleanly with ErrInvalidState.
func (s *RegistrationService) Approve(ctx context.Context, requestID uint, input *ApproveInput, approverID uint) (*models.User, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	if req.IsResolved() {
		return nil, domain.ErrInvalidState
	}

	if !models.ValidRole(input.Role) {
		return nil, domain.ErrInvalidInput
	}

	// Uniqueness checks before the transition; the store's unique indexes
	// back these up if a race slips through.
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        req.Email,
		Password:     hashed,
		Role:         input.Role,
		Status:       models.StatusApproved,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
		CreatedBy:    &approverID,
	}

	matched, err := s.requestRepo.ApproveAndCreateUser(ctx, requestID, approverID, user)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrInvalidState
	}

	log.Printf("✅ Registration request %d approved, user created: %s", requestID, user.Username)
	return user, nil
}

// Reject resolves a pending request without creating an account
func (s *RegistrationService) Reject(ctx context.Context, requestID uint, reason string, adminID uint) (*models.RegistrationRequest, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}

	matched, err := s.requestRepo.Reject(ctx, requestID, adminID, reason)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrInvalidState
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Registration request %d rejected", requestID)
	return req, nil
}

// ListPending lists unresolved requests oldest first
func (s *RegistrationService) ListPending(ctx context.Context) ([]*models.RegistrationRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

// ListRequestsInput represents list input for resolved/unresolved requests
type ListRequestsInput struct {
	Status string
	Page   int
	Limit  int
}

// ListRequestsOutput represents a page of registration requests
type ListRequestsOutput struct {
	Requests   []*models.RegistrationRequest `json:"requests"`
	Total      int64                         `json:"total"`
	Page       int                           `json:"page"`
	Limit      int                           `json:"limit"`
	TotalPages int                           `json:"total_pages"`
}

// List lists requests filtered by status with pagination
func (s *RegistrationService) List(ctx context.Context, input *ListRequestsInput) (*ListRequestsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	reqs, total, err := s.requestRepo.ListByStatus(ctx, input.Status, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListRequestsOutput{
		Requests:   reqs,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets a registration request by ID
func (s *RegistrationService) GetByID(ctx context.Context, id uint) (*models.RegistrationRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}
