package repositories

import (
	"context"

	"y4d-cms/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RegistrationRequestRepository defines registration request repository interface
type RegistrationRequestRepository interface {
	Create(ctx context.Context, req *models.RegistrationRequest) error
	GetByID(ctx context.Context, id uint) (*models.RegistrationRequest, error)
	ListPending(ctx context.Context) ([]*models.RegistrationRequest, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.RegistrationRequest, int64, error)
	// Reject transitions the request to rejected only while it is still
	// pending. Returns false when the conditional update matched no row.
	Reject(ctx context.Context, id uint, resolvedBy uint, reason string) (bool, error)
	// ApproveAndCreateUser transitions the request to approved and inserts
	// the new user in one transaction. The status transition is a conditional
	// update on status=pending, so concurrent resolution attempts serialize
	// at the store: the loser sees matched=false.
	ApproveAndCreateUser(ctx context.Context, id uint, resolvedBy uint, user *models.User) (bool, error)
}

// PermissionGrantRepository defines permission grant repository interface
type PermissionGrantRepository interface {
	GetByUser(ctx context.Context, userID uint) ([]*models.PermissionGrant, error)
	GetByUserSection(ctx context.Context, userID uint, section, subSection string) (*models.PermissionGrant, error)
	// ReplaceForUser deletes all grants for the user and inserts the given
	// set in one transaction. An empty set clears all overrides.
	ReplaceForUser(ctx context.Context, userID uint, grants []*models.PermissionGrant) (int, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SectionRepository defines section master data repository interface
type SectionRepository interface {
	List(ctx context.Context) ([]*models.Section, error)
}

// BannerRepository defines banner repository interface
type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, id uint) (*models.Banner, error)
	List(ctx context.Context) ([]*models.Banner, error)
	ListPublished(ctx context.Context) ([]*models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id uint) error
}

// PostRepository defines post repository interface
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, postType string, publishedOnly bool, offset, limit int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// ProgramRepository defines program repository interface
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id uint) (*models.Program, error)
	GetBySlug(ctx context.Context, slug string) (*models.Program, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id uint) error
}

// TeamMemberRepository defines team member repository interface
type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id uint) (*models.TeamMember, error)
	List(ctx context.Context, memberType string, activeOnly bool) ([]*models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uint) error
}

// DonationRepository defines donation repository interface
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByReceiptNo(ctx context.Context, receiptNo string) (*models.Donation, error)
	List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error)
}
