package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationFixture(t *testing.T) (*services.RegistrationService, *stubRequestRepo, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	requests := newStubRequestRepo(users)
	return services.NewRegistrationService(requests, users), requests, users
}

func submitRequest(t *testing.T, svc *services.RegistrationService, email string) *models.RegistrationRequest {
	t.Helper()
	req, err := svc.Submit(context.Background(), &services.SubmitInput{
		Name:         "Asha Patil",
		Email:        email,
		MobileNumber: "9876543210",
		Address:      "Pune, Maharashtra",
	})
	require.NoError(t, err)
	return req
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	req := submitRequest(t, svc, "asha@example.org")

	assert.Equal(t, models.RequestPending, req.Status)
	assert.False(t, req.IsResolved())
	assert.Nil(t, req.ResolvedAt)
}

func TestSubmitAllowsDuplicateEmails(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	first := submitRequest(t, svc, "asha@example.org")
	second := submitRequest(t, svc, "asha@example.org")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.RequestPending, second.Status)
}

func TestApproveCreatesApprovedUser(t *testing.T) {
	svc, requests, users := newRegistrationFixture(t)
	req := submitRequest(t, svc, "asha@example.org")

	user, err := svc.Approve(context.Background(), req.ID, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     models.RoleEditor,
	}, 42)
	require.NoError(t, err)

	assert.Equal(t, "asha", user.Username)
	assert.Equal(t, "asha@example.org", user.Email)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.Equal(t, models.StatusApproved, user.Status)
	require.NotNil(t, user.CreatedBy)
	assert.Equal(t, uint(42), *user.CreatedBy)

	// Password must be stored hashed
	assert.NotEqual(t, "secret-pass-1", user.Password)
	assert.True(t, password.Verify("secret-pass-1", user.Password))

	// Request transitioned and is auditable
	stored, err := requests.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, stored.Status)
	require.NotNil(t, stored.ResolvedBy)
	assert.Equal(t, uint(42), *stored.ResolvedBy)

	// Account can be found for login
	_, err = users.GetByIdentifier(context.Background(), "asha")
	assert.NoError(t, err)
}

func TestApproveRejectsInvalidRole(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)
	req := submitRequest(t, svc, "asha@example.org")

	_, err := svc.Approve(context.Background(), req.ID, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     "owner",
	}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApproveUnknownRequest(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.Approve(context.Background(), 999, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     models.RoleViewer,
	}, 1)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestApproveDuplicateUsername(t *testing.T) {
	svc, _, users := newRegistrationFixture(t)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Username: "asha",
		Email:    "other@example.org",
		Password: "x",
		Role:     models.RoleViewer,
		Status:   models.StatusApproved,
	}))
	req := submitRequest(t, svc, "asha@example.org")

	_, err := svc.Approve(context.Background(), req.ID, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     models.RoleViewer,
	}, 1)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// The request stays pending so the admin can retry with another username
	stored, err := svc.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, stored.Status)
}

func TestApproveDuplicateEmail(t *testing.T) {
	svc, _, users := newRegistrationFixture(t)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Username: "existing",
		Email:    "asha@example.org",
		Password: "x",
		Role:     models.RoleViewer,
		Status:   models.StatusApproved,
	}))
	req := submitRequest(t, svc, "asha@example.org")

	_, err := svc.Approve(context.Background(), req.ID, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     models.RoleViewer,
	}, 1)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRejectResolvesRequest(t *testing.T) {
	svc, _, users := newRegistrationFixture(t)
	req := submitRequest(t, svc, "asha@example.org")

	rejected, err := svc.Reject(context.Background(), req.ID, "incomplete details", 7)
	require.NoError(t, err)

	assert.Equal(t, models.RequestRejected, rejected.Status)
	assert.Equal(t, "incomplete details", rejected.ResolutionReason)
	require.NotNil(t, rejected.ResolvedBy)
	assert.Equal(t, uint(7), *rejected.ResolvedBy)

	// No account was created
	exists, err := users.ExistsByEmail(context.Background(), "asha@example.org")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResolveIsTerminal(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)
	req := submitRequest(t, svc, "asha@example.org")

	_, err := svc.Reject(context.Background(), req.ID, "", 1)
	require.NoError(t, err)

	// A second rejection fails
	_, err = svc.Reject(context.Background(), req.ID, "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Approval after rejection fails too
	_, err = svc.Approve(context.Background(), req.ID, &services.ApproveInput{
		Username: "asha",
		Password: "secret-pass-1",
		Role:     models.RoleViewer,
	}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConcurrentResolutionSingleWinner(t *testing.T) {
	svc, _, users := newRegistrationFixture(t)
	req := submitRequest(t, svc, "asha@example.org")

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, results[i] = svc.Approve(context.Background(), req.ID, &services.ApproveInput{
					Username: fmt.Sprintf("asha%d", i),
					Password: "secret-pass-1",
					Role:     models.RoleViewer,
				}, uint(i+1))
			} else {
				_, results[i] = svc.Reject(context.Background(), req.ID, "raced", uint(i+1))
			}
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		// Losers fail on the state check; an approve attempt that raced a
		// finished approval may trip the email uniqueness check instead.
		if !errors.Is(err, domain.ErrInvalidState) && !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Errorf("unexpected loser error: %v", err)
		}
	}
	assert.Equal(t, 1, winners, "exactly one resolution must win")

	// At most one account regardless of who won
	_, total, err := users.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, total, int64(1))
}

func TestListByStatus(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)
	first := submitRequest(t, svc, "a@example.org")
	submitRequest(t, svc, "b@example.org")

	_, err := svc.Reject(context.Background(), first.ID, "", 1)
	require.NoError(t, err)

	out, err := svc.List(context.Background(), &services.ListRequestsInput{Status: models.RequestPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Requests, 1)
	assert.Equal(t, "b@example.org", out.Requests[0].Email)

	all, err := svc.List(context.Background(), &services.ListRequestsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b@example.org", pending[0].Email)
}

func TestListPendingOldestFirst(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)
	emails := []string{"first@example.org", "second@example.org", "third@example.org"}
	for _, email := range emails {
		submitRequest(t, svc, email)
	}

	// Admins work the queue in submission order.
	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, email := range emails {
		assert.Equal(t, email, pending[i].Email)
	}

	out, err := svc.List(context.Background(), &services.ListRequestsInput{Status: models.RequestPending})
	require.NoError(t, err)
	require.Len(t, out.Requests, 3)
	assert.Equal(t, "first@example.org", out.Requests[0].Email)
}
