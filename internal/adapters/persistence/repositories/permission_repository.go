package repositories

import (
	"context"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// permissionGrantRepository implements PermissionGrantRepository interface
type permissionGrantRepository struct {
	db *gorm.DB
}

// NewPermissionGrantRepository creates a new permission grant repository
func NewPermissionGrantRepository(db *gorm.DB) PermissionGrantRepository {
	return &permissionGrantRepository{db: db}
}

// GetByUser gets all grants for a user
func (r *permissionGrantRepository) GetByUser(ctx context.Context, userID uint) ([]*models.PermissionGrant, error) {
	var grants []*models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("section ASC, sub_section ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// GetByUserSection gets the grant for one (user, section, sub_section) tuple
func (r *permissionGrantRepository) GetByUserSection(ctx context.Context, userID uint, section, subSection string) (*models.PermissionGrant, error) {
	var grant models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND section = ? AND sub_section = ?", userID, section, subSection).
		First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// ReplaceForUser deletes all grants for the user and inserts the given set
// in one transaction. Full replace, not an incremental patch: an empty set
// reverts the user to pure role-based defaults.
func (r *permissionGrantRepository) ReplaceForUser(ctx context.Context, userID uint, grants []*models.PermissionGrant) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.PermissionGrant{}).Error; err != nil {
			return err
		}
		for _, g := range grants {
			g.UserID = userID
			if err := tx.Create(g).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(grants), nil
}
