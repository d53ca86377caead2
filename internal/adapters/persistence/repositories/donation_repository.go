package repositories

import (
	"context"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create creates a new donation record
func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// GetByReceiptNo gets a donation by its receipt number
func (r *donationRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).Where("receipt_no = ?", receiptNo).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// List lists donations newest first with pagination
func (r *donationRepository) List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	var donations []*models.Donation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
