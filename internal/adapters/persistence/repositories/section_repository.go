package repositories

import (
	"context"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sectionRepository implements SectionRepository interface
type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

// List lists active sections in display order
func (r *sectionRepository) List(ctx context.Context) ([]*models.Section, error) {
	var sections []*models.Section
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&sections).Error
	return sections, err
}
