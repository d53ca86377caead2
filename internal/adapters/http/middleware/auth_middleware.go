package middleware

import (
	"errors"
	"strings"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/config"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/jwt"
	"y4d-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. The token is validated
// statelessly, then the account is loaded so suspended or deleted users are
// cut off without waiting for token expiry.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Load the account behind the token
		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Account no longer exists")
			}
			return response.InternalServerError(c, "Failed to load account")
		}
		if !user.IsApproved() {
			return response.Unauthorized(c, "Account is not active")
		}

		// 6. Set user info in context
		c.Locals("userID", user.ID)
		c.Locals("username", user.Username)
		c.Locals("role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}

// RequirePermission authorizes the request against the permission system for
// one section and action. Must run after AuthMiddleware.
func RequirePermission(permSvc *services.PermissionService, section, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		err := permSvc.Authorize(c.Context(), user, section, "", action)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return response.Forbidden(c, "You don't have permission to access this resource")
			}
			return response.InternalServerError(c, "Failed to check permissions")
		}

		return c.Next()
	}
}
