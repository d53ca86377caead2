package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Access Tables
// ============================================================

// User roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// User statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User represents users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'viewer'" json:"role"`
	Status       string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	MobileNumber string         `gorm:"size:20" json:"mobile_number,omitempty"`
	Address      string         `gorm:"type:text" json:"address,omitempty"`
	CreatedBy    *uint          `json:"created_by,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsSuperAdmin reports whether the user holds the super_admin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsApproved reports whether the account may authenticate.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedBy    *uint     `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		MobileNumber: u.MobileNumber,
		Address:      u.Address,
		CreatedBy:    u.CreatedBy,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Registration Workflow Tables
// ============================================================

// Registration request statuses
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// RegistrationRequest represents registration_requests table.
// Requests are audit records: resolved exactly once, never deleted.
type RegistrationRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Email            string     `gorm:"size:100;not null;index" json:"email"`
	MobileNumber     string     `gorm:"size:20;not null" json:"mobile_number"`
	Address          string     `gorm:"type:text;not null" json:"address"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy       *uint      `json:"resolved_by,omitempty"`
	ResolutionReason string     `gorm:"type:text" json:"resolution_reason,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Resolver *User `gorm:"foreignKey:ResolvedBy" json:"-"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}

// IsResolved reports whether the request reached a terminal status.
func (r *RegistrationRequest) IsResolved() bool {
	return r.Status != RequestPending
}

// ============================================================
// Permission Tables
// ============================================================

// PermissionGrant overrides role-default capabilities for one user in one
// content section. At most one grant per (user_id, section, sub_section).
type PermissionGrant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_section" json:"user_id"`
	Section    string    `gorm:"size:50;not null;uniqueIndex:idx_user_section" json:"section"`
	SubSection string    `gorm:"size:50;uniqueIndex:idx_user_section" json:"sub_section,omitempty"`
	CanView    bool      `gorm:"default:false" json:"can_view"`
	CanCreate  bool      `gorm:"default:false" json:"can_create"`
	CanEdit    bool      `gorm:"default:false" json:"can_edit"`
	CanDelete  bool      `gorm:"default:false" json:"can_delete"`
	CanPublish bool      `gorm:"default:false" json:"can_publish"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PermissionGrant) TableName() string {
	return "permission_grants"
}

// Section represents sections master table: the known permission section
// identifiers shown in the permission-management UI.
type Section struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Section) TableName() string {
	return "sections"
}

// ============================================================
// Content Tables
// ============================================================

// Banner represents homepage carousel items
type Banner struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Subtitle    string         `gorm:"size:300" json:"subtitle"`
	ImageURL    string         `gorm:"size:500;not null" json:"image_url"`
	LinkURL     string         `gorm:"size:500" json:"link_url"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banner) TableName() string {
	return "banners"
}

// Post types (media section)
const (
	PostTypeBlog        = "blog"
	PostTypeNewsletter  = "newsletter"
	PostTypeEvent       = "event"
	PostTypeStory       = "story"
	PostTypeDocumentary = "documentary"
)

// ValidPostType reports whether t is one of the known post types.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeBlog, PostTypeNewsletter, PostTypeEvent, PostTypeStory, PostTypeDocumentary:
		return true
	}
	return false
}

// Post represents posts table: blogs, newsletters, events, stories and
// documentaries share one shape and differ only by type.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Type        string         `gorm:"size:20;not null;index" json:"type"`
	Title       string         `gorm:"size:300;not null" json:"title"`
	Slug        string         `gorm:"size:300;uniqueIndex;not null" json:"slug"`
	Summary     string         `gorm:"type:text" json:"summary"`
	Body        string         `gorm:"type:longtext" json:"body"`
	CoverURL    string         `gorm:"size:500" json:"cover_url"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	AuthorID    uint           `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// Program represents "our work" program pages
type Program struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Slug        string         `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Summary     string         `gorm:"type:text" json:"summary"`
	Body        string         `gorm:"type:longtext" json:"body"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Program) TableName() string {
	return "programs"
}

// Team member types
const (
	MemberTypeTeam       = "team"
	MemberTypeMentor     = "mentor"
	MemberTypeManagement = "management"
)

// ValidMemberType reports whether t is one of the known member types.
func ValidMemberType(t string) bool {
	switch t {
	case MemberTypeTeam, MemberTypeMentor, MemberTypeManagement:
		return true
	}
	return false
}

// TeamMember represents team_members table: team, mentor and management
// profiles shown on the site.
type TeamMember struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      string         `gorm:"size:20;not null;index" json:"type"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Title     string         `gorm:"size:150" json:"title"`
	Bio       string         `gorm:"type:text" json:"bio"`
	PhotoURL  string         `gorm:"size:500" json:"photo_url"`
	LinkedIn  string         `gorm:"size:300" json:"linkedin,omitempty"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

// ============================================================
// Donation Tables
// ============================================================

// Donation represents donations table. Gateway mechanics live outside this
// service; PaymentReference is whatever opaque id the gateway returned.
type Donation struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReceiptNo        string    `gorm:"size:40;uniqueIndex;not null" json:"receipt_no"`
	DonorName        string    `gorm:"size:100;not null" json:"donor_name"`
	Email            string    `gorm:"size:100;not null" json:"email"`
	MobileNumber     string    `gorm:"size:20" json:"mobile_number,omitempty"`
	Amount           float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Purpose          string    `gorm:"size:200" json:"purpose,omitempty"`
	PaymentReference string    `gorm:"size:100" json:"payment_reference,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity & access
		&User{},
		&RefreshToken{},
		// Registration workflow
		&RegistrationRequest{},
		// Permissions
		&PermissionGrant{},
		&Section{},
		// Content
		&Banner{},
		&Post{},
		&Program{},
		&TeamMember{},
		// Donations
		&Donation{},
	)
}
