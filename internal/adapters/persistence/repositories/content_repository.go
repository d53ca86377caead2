package repositories

import (
	"context"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bannerRepository implements BannerRepository interface
type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a new banner repository
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

// Create creates a new banner
func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

// GetByID gets a banner by ID
func (r *bannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).First(&banner, id).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// List lists all banners ordered for the carousel
func (r *bannerRepository) List(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&banners).Error
	return banners, err
}

// ListPublished lists published banners only
func (r *bannerRepository) ListPublished(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&banners).Error
	return banners, err
}

// Update updates a banner
func (r *bannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

// Delete soft deletes a banner
func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Banner{}, id).Error
}

// postRepository implements PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID gets a post by ID
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug gets a post by slug
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ExistsBySlug checks if a slug is already taken
func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// List lists posts with optional type filter and pagination
func (r *postRepository) List(ctx context.Context, postType string, publishedOnly bool, offset, limit int) ([]*models.Post, int64, error) {
	var posts []*models.Post
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Post{})
	if postType != "" {
		q = q.Where("type = ?", postType)
	}
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update updates a post
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete soft deletes a post
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

// programRepository implements ProgramRepository interface
type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

// Create creates a new program
func (r *programRepository) Create(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

// GetByID gets a program by ID
func (r *programRepository) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	var program models.Program
	err := r.db.WithContext(ctx).First(&program, id).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// GetBySlug gets a program by slug
func (r *programRepository) GetBySlug(ctx context.Context, slug string) (*models.Program, error) {
	var program models.Program
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// ExistsBySlug checks if a slug is already taken
func (r *programRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Program{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// List lists programs in display order
func (r *programRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Program, error) {
	var programs []*models.Program
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	err := q.Order("sort_order ASC, id ASC").Find(&programs).Error
	return programs, err
}

// Update updates a program
func (r *programRepository) Update(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

// Delete soft deletes a program
func (r *programRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Program{}, id).Error
}

// teamMemberRepository implements TeamMemberRepository interface
type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

// Create creates a new team member
func (r *teamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a team member by ID
func (r *teamMemberRepository) GetByID(ctx context.Context, id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists team members with optional type filter in display order
func (r *teamMemberRepository) List(ctx context.Context, memberType string, activeOnly bool) ([]*models.TeamMember, error) {
	var members []*models.TeamMember
	q := r.db.WithContext(ctx)
	if memberType != "" {
		q = q.Where("type = ?", memberType)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("sort_order ASC, id ASC").Find(&members).Error
	return members, err
}

// Update updates a team member
func (r *teamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete soft deletes a team member
func (r *teamMemberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeamMember{}, id).Error
}
