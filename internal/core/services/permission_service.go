package services

import (
	"context"
	"errors"
	"log"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/core/domain"

	"gorm.io/gorm"
)

// Actions that can be granted per section
const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionPublish = "publish"
)

// PermissionSet holds the five capability flags for one section
type PermissionSet struct {
	CanView    bool `json:"can_view"`
	CanCreate  bool `json:"can_create"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanPublish bool `json:"can_publish"`
}

// Allows reports whether the set permits the given action
func (p PermissionSet) Allows(action string) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	case ActionPublish:
		return p.CanPublish
	}
	return false
}

// Role-default permission matrix for content sections. Per-user grants
// override these; super_admin bypasses the matrix entirely.
var roleDefaults = map[string]PermissionSet{
	models.RoleAdmin:  {CanView: true, CanCreate: true, CanEdit: true, CanDelete: true, CanPublish: true},
	models.RoleEditor: {CanView: true, CanCreate: true, CanEdit: true},
	models.RoleViewer: {CanView: true},
}

// Administrative sections where role defaults are stricter: only admins get
// access unless an explicit grant says otherwise.
var adminSections = map[string]bool{
	"users":         true,
	"registrations": true,
	"permissions":   true,
	"donations":     true,
}

// PermissionService resolves effective permissions and manages per-user grants
type PermissionService struct {
	grantRepo   repositories.PermissionGrantRepository
	userRepo    repositories.UserRepository
	sectionRepo repositories.SectionRepository
}

// NewPermissionService creates a new permission service
func NewPermissionService(
	grantRepo repositories.PermissionGrantRepository,
	userRepo repositories.UserRepository,
	sectionRepo repositories.SectionRepository,
) *PermissionService {
	return &PermissionService{
		grantRepo:   grantRepo,
		userRepo:    userRepo,
		sectionRepo: sectionRepo,
	}
}

// RoleDefault returns the role-default permission set for a role in a section
func RoleDefault(role, section string) PermissionSet {
	if role == models.RoleSuperAdmin {
		return PermissionSet{CanView: true, CanCreate: true, CanEdit: true, CanDelete: true, CanPublish: true}
	}
	if adminSections[section] && role != models.RoleAdmin {
		return PermissionSet{}
	}
	return roleDefaults[role]
}

// Authorize decides whether the user may perform action on a section.
// Resolution order: super_admin bypass, then explicit grant, then role
// defaults. Returns domain.ErrForbidden on denial.
func (s *PermissionService) Authorize(ctx context.Context, user *models.User, section, subSection, action string) error {
	if user.IsSuperAdmin() {
		return nil
	}

	grant, err := s.grantRepo.GetByUserSection(ctx, user.ID, section, subSection)
	if err == nil {
		if grantAllows(grant, action) {
			return nil
		}
		return domain.ErrForbidden
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// No explicit grant for (section, sub_section); a section-level grant
	// still overrides role defaults for sub-section requests.
	if subSection != "" {
		grant, err = s.grantRepo.GetByUserSection(ctx, user.ID, section, "")
		if err == nil {
			if grantAllows(grant, action) {
				return nil
			}
			return domain.ErrForbidden
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if RoleDefault(user.Role, section).Allows(action) {
		return nil
	}
	return domain.ErrForbidden
}

func grantAllows(grant *models.PermissionGrant, action string) bool {
	set := PermissionSet{
		CanView:    grant.CanView,
		CanCreate:  grant.CanCreate,
		CanEdit:    grant.CanEdit,
		CanDelete:  grant.CanDelete,
		CanPublish: grant.CanPublish,
	}
	return set.Allows(action)
}

// SectionPermissions is one section's resolved permission set
type SectionPermissions struct {
	Section    string `json:"section"`
	SubSection string `json:"sub_section,omitempty"`
	PermissionSet
}

// EffectivePermissions is the full resolved picture for one user, used by
// the permission-management UI rather than the request gate.
type EffectivePermissions struct {
	RoleBased   bool                 `json:"role_based"`
	Role        string               `json:"role"`
	Permissions []SectionPermissions `json:"permissions"`
}

// GetEffectivePermissions resolves the permission set for every known
// section. RoleBased is true when the user has no custom grants at all.
func (s *PermissionService) GetEffectivePermissions(ctx context.Context, user *models.User) (*EffectivePermissions, error) {
	grants, err := s.grantRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	granted := make(map[string]*models.PermissionGrant, len(grants))
	for _, g := range grants {
		granted[g.Section+"/"+g.SubSection] = g
	}

	out := &EffectivePermissions{
		RoleBased:   len(grants) == 0,
		Role:        user.Role,
		Permissions: make([]SectionPermissions, 0, len(sections)+len(grants)),
	}

	seen := make(map[string]bool, len(sections))
	for _, sec := range sections {
		seen[sec.Code+"/"] = true
		sp := SectionPermissions{Section: sec.Code}
		if g, ok := granted[sec.Code+"/"]; ok && !user.IsSuperAdmin() {
			sp.PermissionSet = PermissionSet{
				CanView:    g.CanView,
				CanCreate:  g.CanCreate,
				CanEdit:    g.CanEdit,
				CanDelete:  g.CanDelete,
				CanPublish: g.CanPublish,
			}
		} else {
			sp.PermissionSet = RoleDefault(user.Role, sec.Code)
		}
		out.Permissions = append(out.Permissions, sp)
	}

	// Grants for sub-sections or sections missing from the master list
	for _, g := range grants {
		key := g.Section + "/" + g.SubSection
		if seen[key] {
			continue
		}
		out.Permissions = append(out.Permissions, SectionPermissions{
			Section:    g.Section,
			SubSection: g.SubSection,
			PermissionSet: PermissionSet{
				CanView:    g.CanView,
				CanCreate:  g.CanCreate,
				CanEdit:    g.CanEdit,
				CanDelete:  g.CanDelete,
				CanPublish: g.CanPublish,
			},
		})
	}

	return out, nil
}

// GrantInput represents one grant in a replace-set request
type GrantInput struct {
	Section    string `json:"section" validate:"required,max=50"`
	SubSection string `json:"sub_section" validate:"max=50"`
	CanView    bool   `json:"can_view"`
	CanCreate  bool   `json:"can_create"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
	CanPublish bool   `json:"can_publish"`
}

// ReplaceGrants replaces the full grant set for a user. An empty list clears
// all overrides, reverting the user to role defaults. Refused for
// super_admin targets: their access is not managed through grants.
func (s *PermissionService) ReplaceGrants(ctx context.Context, targetUserID uint, inputs []GrantInput) (int, error) {
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	if target.IsSuperAdmin() {
		return 0, domain.ErrSuperAdminProtected
	}

	grants := make([]*models.PermissionGrant, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		key := in.Section + "/" + in.SubSection
		if seen[key] {
			return 0, domain.ErrInvalidInput
		}
		seen[key] = true
		grants = append(grants, &models.PermissionGrant{
			UserID:     targetUserID,
			Section:    in.Section,
			SubSection: in.SubSection,
			CanView:    in.CanView,
			CanCreate:  in.CanCreate,
			CanEdit:    in.CanEdit,
			CanDelete:  in.CanDelete,
			CanPublish: in.CanPublish,
		})
	}

	count, err := s.grantRepo.ReplaceForUser(ctx, targetUserID, grants)
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Permission grants replaced for user %d: %d grants", targetUserID, count)
	return count, nil
}

// ListGrants lists the raw grants stored for a user
func (s *PermissionService) ListGrants(ctx context.Context, userID uint) ([]*models.PermissionGrant, error) {
	return s.grantRepo.GetByUser(ctx, userID)
}

// ListSections lists the known permission sections
func (s *PermissionService) ListSections(ctx context.Context) ([]*models.Section, error) {
	return s.sectionRepo.List(ctx)
}
