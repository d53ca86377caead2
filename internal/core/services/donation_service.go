package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationService handles donation records
type DonationService struct {
	donationRepo repositories.DonationRepository
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo repositories.DonationRepository) *DonationService {
	return &DonationService{donationRepo: donationRepo}
}

// RecordDonationInput represents record donation input
type RecordDonationInput struct {
	DonorName        string  `json:"donor_name" validate:"required,max=100"`
	Email            string  `json:"email" validate:"required,email"`
	MobileNumber     string  `json:"mobile_number" validate:"max=20"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Purpose          string  `json:"purpose" validate:"max=200"`
	PaymentReference string  `json:"payment_reference" validate:"max=100"`
}

// RecordDonation records a completed donation and assigns a receipt number.
// Receipt numbers are Y4D-YYYYMM-<short uuid>, unique by construction plus
// a DB unique index as backstop.
func (s *DonationService) RecordDonation(ctx context.Context, input *RecordDonationInput) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	receiptNo := fmt.Sprintf("Y4D-%s-%s",
		time.Now().Format("200601"),
		strings.ToUpper(uuid.New().String()[:8]))

	donation := &models.Donation{
		ReceiptNo:        receiptNo,
		DonorName:        strings.TrimSpace(input.DonorName),
		Email:            strings.TrimSpace(input.Email),
		MobileNumber:     strings.TrimSpace(input.MobileNumber),
		Amount:           input.Amount,
		Purpose:          strings.TrimSpace(input.Purpose),
		PaymentReference: strings.TrimSpace(input.PaymentReference),
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation recorded: %s (%.2f)", donation.ReceiptNo, donation.Amount)
	return donation, nil
}

// GetDonationByReceipt gets a donation by its receipt number
func (s *DonationService) GetDonationByReceipt(ctx context.Context, receiptNo string) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return donation, nil
}

// ListDonations lists donations, newest first
func (s *DonationService) ListDonations(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	return s.donationRepo.List(ctx, offset, limit)
}
