package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"y4d-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository stubs. They serialize on a mutex and implement the
// same conditional-update contract as the MySQL implementations, so the
// state-machine tests exercise real race outcomes.

type stubUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubRequestRepo struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]*models.RegistrationRequest
	users    *stubUserRepo
}

func newStubRequestRepo(users *stubUserRepo) *stubRequestRepo {
	return &stubRequestRepo{nextID: 1, requests: make(map[uint]*models.RegistrationRequest), users: users}
}

func (r *stubRequestRepo) Create(_ context.Context, req *models.RegistrationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.nextID
	r.nextID++
	req.CreatedAt = time.Now()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *stubRequestRepo) GetByID(_ context.Context, id uint) (*models.RegistrationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *stubRequestRepo) ListPending(_ context.Context) ([]*models.RegistrationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.RegistrationRequest
	for _, req := range r.requests {
		if req.Status == models.RequestPending {
			cp := *req
			out = append(out, &cp)
		}
	}
	sortRequestsOldestFirst(out)
	return out, nil
}

func (r *stubRequestRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]*models.RegistrationRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.RegistrationRequest
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			cp := *req
			all = append(all, &cp)
		}
	}
	sortRequestsOldestFirst(all)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubRequestRepo) Reject(_ context.Context, id uint, resolvedBy uint, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != models.RequestPending {
		return false, nil
	}
	now := time.Now()
	req.Status = models.RequestRejected
	req.ResolvedAt = &now
	req.ResolvedBy = &resolvedBy
	req.ResolutionReason = reason
	return true, nil
}

func (r *stubRequestRepo) ApproveAndCreateUser(ctx context.Context, id uint, resolvedBy uint, user *models.User) (bool, error) {
	r.mu.Lock()
	req, ok := r.requests[id]
	if !ok || req.Status != models.RequestPending {
		r.mu.Unlock()
		return false, nil
	}
	now := time.Now()
	req.Status = models.RequestApproved
	req.ResolvedAt = &now
	req.ResolvedBy = &resolvedBy
	r.mu.Unlock()

	if err := r.users.Create(ctx, user); err != nil {
		// Roll the transition back, mirroring the store transaction
		r.mu.Lock()
		req.Status = models.RequestPending
		req.ResolvedAt = nil
		req.ResolvedBy = nil
		r.mu.Unlock()
		return false, err
	}
	return true, nil
}

// sortRequestsOldestFirst mirrors the MySQL repo's created_at ASC ordering.
// IDs break ties because the stub assigns timestamps at insert speed.
func sortRequestsOldestFirst(reqs []*models.RegistrationRequest) {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID < reqs[j].ID
		}
		return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
	})
}

type stubTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{nextID: 1, tokens: make(map[uint]*models.RefreshToken)}
}

func (r *stubTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = r.nextID
	r.nextID++
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *stubTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTokenRepo) Revoke(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *stubTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *stubTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *stubTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTokenRepo) activeCount(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			n++
		}
	}
	return n
}

type stubGrantRepo struct {
	mu     sync.Mutex
	nextID uint
	grants map[uint]*models.PermissionGrant
}

func newStubGrantRepo() *stubGrantRepo {
	return &stubGrantRepo{nextID: 1, grants: make(map[uint]*models.PermissionGrant)}
}

func (r *stubGrantRepo) GetByUser(_ context.Context, userID uint) ([]*models.PermissionGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PermissionGrant
	for _, g := range r.grants {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubGrantRepo) GetByUserSection(_ context.Context, userID uint, section, subSection string) (*models.PermissionGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grants {
		if g.UserID == userID && g.Section == section && g.SubSection == subSection {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubGrantRepo) ReplaceForUser(_ context.Context, userID uint, grants []*models.PermissionGrant) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.grants {
		if g.UserID == userID {
			delete(r.grants, id)
		}
	}
	for _, g := range grants {
		g.ID = r.nextID
		r.nextID++
		cp := *g
		r.grants[g.ID] = &cp
	}
	return len(grants), nil
}

type stubBannerRepo struct {
	mu      sync.Mutex
	nextID  uint
	banners map[uint]*models.Banner
}

func newStubBannerRepo() *stubBannerRepo {
	return &stubBannerRepo{nextID: 1, banners: make(map[uint]*models.Banner)}
}

func (r *stubBannerRepo) Create(_ context.Context, banner *models.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	banner.ID = r.nextID
	r.nextID++
	cp := *banner
	r.banners[banner.ID] = &cp
	return nil
}

func (r *stubBannerRepo) GetByID(_ context.Context, id uint) (*models.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.banners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBannerRepo) List(_ context.Context) ([]*models.Banner, error) {
	return r.list(func(*models.Banner) bool { return true })
}

func (r *stubBannerRepo) ListPublished(_ context.Context) ([]*models.Banner, error) {
	return r.list(func(b *models.Banner) bool { return b.IsPublished })
}

func (r *stubBannerRepo) list(keep func(*models.Banner) bool) ([]*models.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Banner
	for _, b := range r.banners {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *stubBannerRepo) Update(_ context.Context, banner *models.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banners[banner.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *banner
	r.banners[banner.ID] = &cp
	return nil
}

func (r *stubBannerRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.banners, id)
	return nil
}

type stubPostRepo struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]*models.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{nextID: 1, posts: make(map[uint]*models.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *stubPostRepo) GetByID(_ context.Context, id uint) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPostRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPostRepo) List(_ context.Context, postType string, publishedOnly bool, offset, limit int) ([]*models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Post
	for _, p := range r.posts {
		if postType != "" && p.Type != postType {
			continue
		}
		if publishedOnly && !p.IsPublished {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type stubProgramRepo struct {
	mu       sync.Mutex
	nextID   uint
	programs map[uint]*models.Program
}

func newStubProgramRepo() *stubProgramRepo {
	return &stubProgramRepo{nextID: 1, programs: make(map[uint]*models.Program)}
}

func (r *stubProgramRepo) Create(_ context.Context, program *models.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	program.ID = r.nextID
	r.nextID++
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *stubProgramRepo) GetByID(_ context.Context, id uint) (*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProgramRepo) GetBySlug(_ context.Context, slug string) (*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProgramRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProgramRepo) List(_ context.Context, publishedOnly bool) ([]*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Program
	for _, p := range r.programs {
		if publishedOnly && !p.IsPublished {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *stubProgramRepo) Update(_ context.Context, program *models.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[program.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *stubProgramRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programs, id)
	return nil
}

type stubTeamRepo struct {
	mu      sync.Mutex
	nextID  uint
	members map[uint]*models.TeamMember
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{nextID: 1, members: make(map[uint]*models.TeamMember)}
}

func (r *stubTeamRepo) Create(_ context.Context, member *models.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	member.ID = r.nextID
	r.nextID++
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *stubTeamRepo) GetByID(_ context.Context, id uint) (*models.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubTeamRepo) List(_ context.Context, memberType string, activeOnly bool) ([]*models.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TeamMember
	for _, m := range r.members {
		if memberType != "" && m.Type != memberType {
			continue
		}
		if activeOnly && !m.IsActive {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *stubTeamRepo) Update(_ context.Context, member *models.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *stubTeamRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return nil
}

type stubDonationRepo struct {
	mu        sync.Mutex
	nextID    uint
	donations map[uint]*models.Donation
}

func newStubDonationRepo() *stubDonationRepo {
	return &stubDonationRepo{nextID: 1, donations: make(map[uint]*models.Donation)}
}

func (r *stubDonationRepo) Create(_ context.Context, donation *models.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.donations {
		if d.ReceiptNo == donation.ReceiptNo {
			return gorm.ErrDuplicatedKey
		}
	}
	donation.ID = r.nextID
	r.nextID++
	cp := *donation
	r.donations[donation.ID] = &cp
	return nil
}

func (r *stubDonationRepo) GetByReceiptNo(_ context.Context, receiptNo string) (*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.donations {
		if d.ReceiptNo == receiptNo {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDonationRepo) List(_ context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Donation
	for _, d := range r.donations {
		cp := *d
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type stubSectionRepo struct {
	sections []*models.Section
}

func newStubSectionRepo(codes ...string) *stubSectionRepo {
	r := &stubSectionRepo{}
	for i, code := range codes {
		r.sections = append(r.sections, &models.Section{
			ID:        uint(i + 1),
			Code:      code,
			Name:      code,
			SortOrder: i + 1,
			IsActive:  true,
		})
	}
	return r
}

func (r *stubSectionRepo) List(_ context.Context) ([]*models.Section, error) {
	return r.sections, nil
}
