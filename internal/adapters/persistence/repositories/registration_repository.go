package repositories

import (
	"context"
	"time"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// registrationRequestRepository implements RegistrationRequestRepository interface
type registrationRequestRepository struct {
	db *gorm.DB
}

// NewRegistrationRequestRepository creates a new registration request repository
func NewRegistrationRequestRepository(db *gorm.DB) RegistrationRequestRepository {
	return &registrationRequestRepository{db: db}
}

// Create creates a new registration request
func (r *registrationRequestRepository) Create(ctx context.Context, req *models.RegistrationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a registration request by ID
func (r *registrationRequestRepository) GetByID(ctx context.Context, id uint) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending lists pending requests oldest first, so admins clear the
// backlog in submission order.
func (r *registrationRequestRepository) ListPending(ctx context.Context) ([]*models.RegistrationRequest, error) {
	var reqs []*models.RegistrationRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RequestPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListByStatus lists requests with a given status with pagination
func (r *registrationRequestRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.RegistrationRequest, int64, error) {
	var reqs []*models.RegistrationRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&models.RegistrationRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

// Reject marks a pending request rejected. The WHERE status='pending' clause
// makes the transition a compare-and-set: of two concurrent resolutions only
// one update matches a row.
func (r *registrationRequestRepository) Reject(ctx context.Context, id uint, resolvedBy uint, reason string) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.RegistrationRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{
			"status":            models.RequestRejected,
			"resolved_at":       &now,
			"resolved_by":       resolvedBy,
			"resolution_reason": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ApproveAndCreateUser marks a pending request approved and inserts the new
// user in the same transaction. The conditional update runs first; when it
// matches no row the transaction aborts without touching the users table.
func (r *registrationRequestRepository) ApproveAndCreateUser(ctx context.Context, id uint, resolvedBy uint, user *models.User) (bool, error) {
	matched := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.RegistrationRequest{}).
			Where("id = ? AND status = ?", id, models.RequestPending).
			Updates(map[string]interface{}{
				"status":      models.RequestApproved,
				"resolved_at": &now,
				"resolved_by": resolvedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		matched = true
		return tx.Create(user).Error
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}
