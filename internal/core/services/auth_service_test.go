package services_test

import (
	"context"
	"testing"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/config"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

type authFixture struct {
	svc    *services.AuthService
	otp    *services.OTPService
	users  *stubUserRepo
	tokens *stubTokenRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	otp := services.NewOTPService()
	t.Cleanup(otp.Stop)
	return &authFixture{
		svc:    services.NewAuthService(users, tokens, otp, testConfig()),
		otp:    otp,
		users:  users,
		tokens: tokens,
	}
}

func (f *authFixture) seedUser(t *testing.T, username, email, pass, status string) *models.User {
	t.Helper()
	hashed, err := password.Hash(pass)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleEditor,
		Status:   status,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestLoginByUsername(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	res, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)

	assert.Equal(t, "ravi", res.User.Username)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := f.svc.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ravi", claims.Username)
	assert.Equal(t, models.RoleEditor, claims.Role)
}

func TestLoginByEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	res, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi@example.org",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi", res.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	_, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "nobody",
		Password:   "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginStatusGate(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "pending", "pending@example.org", "open-sesame-9", models.StatusPending)
	f.seedUser(t, "frozen", "frozen@example.org", "open-sesame-9", models.StatusSuspended)

	for _, name := range []string{"pending", "frozen"} {
		_, err := f.svc.Login(context.Background(), &services.LoginInput{
			Identifier: name,
			Password:   "open-sesame-9",
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotApproved, name)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	login, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation, replaying it fails
	_, err = f.svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The new token is still good
	_, err = f.svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRefreshSuspendedUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	login, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)

	user.Status = models.StatusSuspended
	require.NoError(t, f.users.Update(context.Background(), user))

	_, err = f.svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrAccountNotApproved)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	login, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), login.RefreshToken))

	_, err = f.svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Login(context.Background(), &services.LoginInput{
			Identifier: "ravi",
			Password:   "open-sesame-9",
		})
		require.NoError(t, err)
	}
	require.Equal(t, 3, f.tokens.activeCount(user.ID))

	require.NoError(t, f.svc.LogoutAll(context.Background(), user.ID))
	assert.Equal(t, 0, f.tokens.activeCount(user.ID))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	login, err := f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	require.NoError(t, err)

	code, err := f.svc.RequestPasswordReset(context.Background(), "ravi@example.org")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, f.svc.ResetPassword(context.Background(), "ravi@example.org", code, "new-password-1"))

	// Old password no longer works, new one does
	_, err = f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "open-sesame-9",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), &services.LoginInput{
		Identifier: "ravi",
		Password:   "new-password-1",
	})
	assert.NoError(t, err)

	// Existing sessions were revoked by the reset
	_, err = f.svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The code is single use
	err = f.svc.ResetPassword(context.Background(), "ravi@example.org", code, "another-password")
	assert.Error(t, err)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RequestPasswordReset(context.Background(), "nobody@example.org")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPasswordResetWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ravi", "ravi@example.org", "open-sesame-9", models.StatusApproved)

	code, err := f.svc.RequestPasswordReset(context.Background(), "ravi@example.org")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	err = f.svc.ResetPassword(context.Background(), "ravi@example.org", wrong, "new-password-1")
	assert.ErrorIs(t, err, services.ErrOTPMismatch)
}
