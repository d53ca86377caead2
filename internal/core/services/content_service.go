package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/core/domain"

	"gorm.io/gorm"
)

// Content service errors
var (
	ErrDuplicateSlug = errors.New("slug is already in use")
)

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a url-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleanup.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ContentService handles banners, posts, programs and team members
type ContentService struct {
	bannerRepo  repositories.BannerRepository
	postRepo    repositories.PostRepository
	programRepo repositories.ProgramRepository
	teamRepo    repositories.TeamMemberRepository
}

// NewContentService creates a new content service
func NewContentService(
	bannerRepo repositories.BannerRepository,
	postRepo repositories.PostRepository,
	programRepo repositories.ProgramRepository,
	teamRepo repositories.TeamMemberRepository,
) *ContentService {
	return &ContentService{
		bannerRepo:  bannerRepo,
		postRepo:    postRepo,
		programRepo: programRepo,
		teamRepo:    teamRepo,
	}
}

// ============================================================
// Banners
// ============================================================

// BannerInput represents create/update banner input
type BannerInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"max=300"`
	ImageURL    string `json:"image_url" validate:"required,max=500"`
	LinkURL     string `json:"link_url" validate:"max=500"`
	SortOrder   int    `json:"sort_order"`
	IsPublished bool   `json:"is_published"`
}

// CreateBanner creates a new banner
func (s *ContentService) CreateBanner(ctx context.Context, input *BannerInput) (*models.Banner, error) {
	banner := &models.Banner{
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		LinkURL:     strings.TrimSpace(input.LinkURL),
		SortOrder:   input.SortOrder,
		IsPublished: input.IsPublished,
	}
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// GetBanner gets a banner by ID
func (s *ContentService) GetBanner(ctx context.Context, id uint) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return banner, nil
}

// ListBanners lists banners; publishedOnly restricts to the public carousel set
func (s *ContentService) ListBanners(ctx context.Context, publishedOnly bool) ([]*models.Banner, error) {
	if publishedOnly {
		return s.bannerRepo.ListPublished(ctx)
	}
	return s.bannerRepo.List(ctx)
}

// UpdateBanner updates a banner
func (s *ContentService) UpdateBanner(ctx context.Context, id uint, input *BannerInput) (*models.Banner, error) {
	banner, err := s.GetBanner(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = strings.TrimSpace(input.Title)
	banner.Subtitle = strings.TrimSpace(input.Subtitle)
	banner.ImageURL = strings.TrimSpace(input.ImageURL)
	banner.LinkURL = strings.TrimSpace(input.LinkURL)
	banner.SortOrder = input.SortOrder
	banner.IsPublished = input.IsPublished

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteBanner deletes a banner
func (s *ContentService) DeleteBanner(ctx context.Context, id uint) error {
	if _, err := s.GetBanner(ctx, id); err != nil {
		return err
	}
	return s.bannerRepo.Delete(ctx, id)
}

// ============================================================
// Posts (media section)
// ============================================================

// PostInput represents create/update post input
type PostInput struct {
	Type     string `json:"type" validate:"required"`
	Title    string `json:"title" validate:"required,max=300"`
	Slug     string `json:"slug" validate:"max=300"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	CoverURL string `json:"cover_url" validate:"max=500"`
}

// ListPostsInput represents list posts input
type ListPostsInput struct {
	Type          string
	PublishedOnly bool
	Page          int
	Limit         int
}

// ListPostsOutput represents list posts output
type ListPostsOutput struct {
	Posts      []*models.Post `json:"posts"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// CreatePost creates a new draft post
func (s *ContentService) CreatePost(ctx context.Context, input *PostInput, authorID uint) (*models.Post, error) {
	if !models.ValidPostType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Title)
	}
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.postRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	post := &models.Post{
		Type:     input.Type,
		Title:    strings.TrimSpace(input.Title),
		Slug:     slug,
		Summary:  input.Summary,
		Body:     input.Body,
		CoverURL: strings.TrimSpace(input.CoverURL),
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Printf("✅ Post created: %s (%s)", post.Slug, post.Type)
	return post, nil
}

// GetPost gets a post by ID
func (s *ContentService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPostBySlug gets a post by slug. Public callers only see published posts.
func (s *ContentService) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if publishedOnly && !post.IsPublished {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

// ListPosts lists posts with optional type filter and pagination
func (s *ContentService) ListPosts(ctx context.Context, input *ListPostsInput) (*ListPostsOutput, error) {
	if input.Type != "" && !models.ValidPostType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	posts, total, err := s.postRepo.List(ctx, input.Type, input.PublishedOnly, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListPostsOutput{
		Posts:      posts,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdatePost updates a post
func (s *ContentService) UpdatePost(ctx context.Context, id uint, input *PostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidPostType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = post.Slug
	}
	if slug != post.Slug {
		exists, err := s.postRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateSlug
		}
	}

	post.Type = input.Type
	post.Title = strings.TrimSpace(input.Title)
	post.Slug = slug
	post.Summary = input.Summary
	post.Body = input.Body
	post.CoverURL = strings.TrimSpace(input.CoverURL)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SetPostPublished publishes or unpublishes a post. PublishedAt is set on the
// first publish only and kept afterwards.
func (s *ContentService) SetPostPublished(ctx context.Context, id uint, published bool) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	post.IsPublished = published
	if published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post
func (s *ContentService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.GetPost(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// ============================================================
// Programs
// ============================================================

// ProgramInput represents create/update program input
type ProgramInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"max=200"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	ImageURL    string `json:"image_url" validate:"max=500"`
	SortOrder   int    `json:"sort_order"`
	IsPublished bool   `json:"is_published"`
}

// CreateProgram creates a new program
func (s *ContentService) CreateProgram(ctx context.Context, input *ProgramInput) (*models.Program, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Title)
	}
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.programRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	program := &models.Program{
		Title:       strings.TrimSpace(input.Title),
		Slug:        slug,
		Summary:     input.Summary,
		Body:        input.Body,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		SortOrder:   input.SortOrder,
		IsPublished: input.IsPublished,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetProgram gets a program by ID
func (s *ContentService) GetProgram(ctx context.Context, id uint) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return program, nil
}

// GetProgramBySlug gets a program by slug
func (s *ContentService) GetProgramBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Program, error) {
	program, err := s.programRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if publishedOnly && !program.IsPublished {
		return nil, domain.ErrNotFound
	}
	return program, nil
}

// ListPrograms lists programs in display order
func (s *ContentService) ListPrograms(ctx context.Context, publishedOnly bool) ([]*models.Program, error) {
	return s.programRepo.List(ctx, publishedOnly)
}

// UpdateProgram updates a program
func (s *ContentService) UpdateProgram(ctx context.Context, id uint, input *ProgramInput) (*models.Program, error) {
	program, err := s.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = program.Slug
	}
	if slug != program.Slug {
		exists, err := s.programRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateSlug
		}
	}

	program.Title = strings.TrimSpace(input.Title)
	program.Slug = slug
	program.Summary = input.Summary
	program.Body = input.Body
	program.ImageURL = strings.TrimSpace(input.ImageURL)
	program.SortOrder = input.SortOrder
	program.IsPublished = input.IsPublished

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram deletes a program
func (s *ContentService) DeleteProgram(ctx context.Context, id uint) error {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, id)
}

// ============================================================
// Team members
// ============================================================

// TeamMemberInput represents create/update team member input
type TeamMemberInput struct {
	Type      string `json:"type" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Title     string `json:"title" validate:"max=150"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url" validate:"max=500"`
	LinkedIn  string `json:"linkedin" validate:"max=300"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// CreateTeamMember creates a new team member
func (s *ContentService) CreateTeamMember(ctx context.Context, input *TeamMemberInput) (*models.TeamMember, error) {
	if !models.ValidMemberType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	member := &models.TeamMember{
		Type:      input.Type,
		Name:      strings.TrimSpace(input.Name),
		Title:     strings.TrimSpace(input.Title),
		Bio:       input.Bio,
		PhotoURL:  strings.TrimSpace(input.PhotoURL),
		LinkedIn:  strings.TrimSpace(input.LinkedIn),
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	}
	if err := s.teamRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetTeamMember gets a team member by ID
func (s *ContentService) GetTeamMember(ctx context.Context, id uint) (*models.TeamMember, error) {
	member, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return member, nil
}

// ListTeamMembers lists team members with optional type filter
func (s *ContentService) ListTeamMembers(ctx context.Context, memberType string, activeOnly bool) ([]*models.TeamMember, error) {
	if memberType != "" && !models.ValidMemberType(memberType) {
		return nil, domain.ErrInvalidInput
	}
	return s.teamRepo.List(ctx, memberType, activeOnly)
}

// UpdateTeamMember updates a team member
func (s *ContentService) UpdateTeamMember(ctx context.Context, id uint, input *TeamMemberInput) (*models.TeamMember, error) {
	member, err := s.GetTeamMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidMemberType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	member.Type = input.Type
	member.Name = strings.TrimSpace(input.Name)
	member.Title = strings.TrimSpace(input.Title)
	member.Bio = input.Bio
	member.PhotoURL = strings.TrimSpace(input.PhotoURL)
	member.LinkedIn = strings.TrimSpace(input.LinkedIn)
	member.SortOrder = input.SortOrder
	member.IsActive = input.IsActive

	if err := s.teamRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteTeamMember deletes a team member
func (s *ContentService) DeleteTeamMember(ctx context.Context, id uint) error {
	if _, err := s.GetTeamMember(ctx, id); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}
