package routes

import (
	"time"

	"y4d-cms/internal/adapters/http/handlers"
	"y4d-cms/internal/adapters/http/middleware"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/config"
	"y4d-cms/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the services
// that need lifecycle management (OTP cleanup loop).
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.OTPService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	registrationRepo := repositories.NewRegistrationRequestRepository(db)
	grantRepo := repositories.NewPermissionGrantRepository(db)
	sectionRepo := repositories.NewSectionRepository(db)
	bannerRepo := repositories.NewBannerRepository(db)
	postRepo := repositories.NewPostRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	teamRepo := repositories.NewTeamMemberRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	// Initialize services
	otpService := services.NewOTPService()
	authService := services.NewAuthService(userRepo, refreshTokenRepo, otpService, cfg)
	registrationService := services.NewRegistrationService(registrationRepo, userRepo)
	permissionService := services.NewPermissionService(grantRepo, userRepo, sectionRepo)
	userService := services.NewUserService(userRepo)
	contentService := services.NewContentService(bannerRepo, postRepo, programRepo, teamRepo)
	donationService := services.NewDonationService(donationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	userHandler := handlers.NewUserHandler(userService)
	permissionHandler := handlers.NewPermissionHandler(permissionService)
	bannerHandler := handlers.NewBannerHandler(contentService)
	postHandler := handlers.NewPostHandler(contentService, permissionService)
	programHandler := handlers.NewProgramHandler(contentService)
	teamHandler := handlers.NewTeamHandler(contentService)
	donationHandler := handlers.NewDonationHandler(donationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg, userRepo)

	setupPublicRoutes(apiV1, bannerHandler, postHandler, programHandler, teamHandler, donationHandler)
	setupAuthRoutes(apiV1, authHandler, permissionHandler, auth)
	setupRegistrationRoutes(apiV1, registrationHandler)
	setupSelfServiceRoutes(apiV1, userHandler, auth)
	setupAdminRoutes(apiV1, auth, permissionService,
		registrationHandler, userHandler, permissionHandler,
		bannerHandler, postHandler, programHandler, teamHandler, donationHandler)

	return otpService
}

// setupPublicRoutes configures public website content routes
func setupPublicRoutes(
	router fiber.Router,
	bannerHandler *handlers.BannerHandler,
	postHandler *handlers.PostHandler,
	programHandler *handlers.ProgramHandler,
	teamHandler *handlers.TeamHandler,
	donationHandler *handlers.DonationHandler,
) {
	contentCache := middleware.PublicContentCache(10 * time.Minute)

	router.Get("/banners", contentCache, bannerHandler.ListPublic)
	router.Get("/posts", contentCache, postHandler.ListPublic)
	router.Get("/posts/:slug", contentCache, postHandler.GetPublicBySlug)
	router.Get("/programs", contentCache, programHandler.ListPublic)
	router.Get("/programs/:slug", contentCache, programHandler.GetPublicBySlug)
	router.Get("/team", contentCache, teamHandler.ListPublic)

	// Donations: record after gateway success, lookup by receipt
	router.Post("/donations", middleware.AuthRateLimiter(), donationHandler.Record)
	router.Get("/donations/:receipt_no", donationHandler.GetByReceipt)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, permissionHandler *handlers.PermissionHandler, auth fiber.Handler) {
	authRoutes := router.Group("/auth", middleware.NoCacheHeaders())

	// Public routes with rate limiting
	authRoutes.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	authRoutes.Post("/refresh", handler.RefreshToken)
	authRoutes.Post("/logout", handler.Logout)
	authRoutes.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	authRoutes.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	authRoutes.Get("/me", auth, handler.Me)
	authRoutes.Get("/me/permissions", auth, permissionHandler.MyPermissions)
	authRoutes.Post("/logout-all", auth, handler.LogoutAll)
}

// setupRegistrationRoutes configures the public registration request route
func setupRegistrationRoutes(router fiber.Router, handler *handlers.RegistrationHandler) {
	router.Post("/registrations", middleware.AuthRateLimiter(), handler.Submit)
}

// setupSelfServiceRoutes configures routes any authenticated user can call
func setupSelfServiceRoutes(router fiber.Router, userHandler *handlers.UserHandler, auth fiber.Handler) {
	router.Post("/users/change-password", auth, userHandler.ChangePassword)
}

// setupAdminRoutes configures CMS admin routes, permission gated per section
func setupAdminRoutes(
	router fiber.Router,
	auth fiber.Handler,
	permissionService *services.PermissionService,
	registrationHandler *handlers.RegistrationHandler,
	userHandler *handlers.UserHandler,
	permissionHandler *handlers.PermissionHandler,
	bannerHandler *handlers.BannerHandler,
	postHandler *handlers.PostHandler,
	programHandler *handlers.ProgramHandler,
	teamHandler *handlers.TeamHandler,
	donationHandler *handlers.DonationHandler,
) {
	admin := router.Group("/admin", middleware.NoCacheHeaders(), auth)

	// Registration review
	registrations := admin.Group("/registrations")
	registrations.Get("/", middleware.RequirePermission(permissionService, "registrations", services.ActionView), registrationHandler.List)
	registrations.Get("/:id", middleware.RequirePermission(permissionService, "registrations", services.ActionView), registrationHandler.Get)
	registrations.Post("/:id/approve", middleware.RequirePermission(permissionService, "registrations", services.ActionEdit), registrationHandler.Approve)
	registrations.Post("/:id/reject", middleware.RequirePermission(permissionService, "registrations", services.ActionEdit), registrationHandler.Reject)

	// User management
	users := admin.Group("/users")
	users.Get("/", middleware.RequirePermission(permissionService, "users", services.ActionView), userHandler.List)
	users.Get("/:id", middleware.RequirePermission(permissionService, "users", services.ActionView), userHandler.Get)
	users.Post("/", middleware.RequirePermission(permissionService, "users", services.ActionCreate), userHandler.Create)
	users.Put("/:id", middleware.RequirePermission(permissionService, "users", services.ActionEdit), userHandler.Update)
	users.Delete("/:id", middleware.RequirePermission(permissionService, "users", services.ActionDelete), userHandler.Delete)

	// Per-user permission grants
	users.Get("/:id/permissions", middleware.RequirePermission(permissionService, "permissions", services.ActionView), permissionHandler.ListGrants)
	users.Put("/:id/permissions", middleware.RequirePermission(permissionService, "permissions", services.ActionEdit), permissionHandler.ReplaceGrants)

	// Section catalog
	admin.Get("/sections", middleware.RequirePermission(permissionService, "permissions", services.ActionView), permissionHandler.ListSections)

	// Banners
	banners := admin.Group("/banners")
	banners.Get("/", middleware.RequirePermission(permissionService, "banners", services.ActionView), bannerHandler.List)
	banners.Get("/:id", middleware.RequirePermission(permissionService, "banners", services.ActionView), bannerHandler.Get)
	banners.Post("/", middleware.RequirePermission(permissionService, "banners", services.ActionCreate), bannerHandler.Create)
	banners.Put("/:id", middleware.RequirePermission(permissionService, "banners", services.ActionEdit), bannerHandler.Update)
	banners.Delete("/:id", middleware.RequirePermission(permissionService, "banners", services.ActionDelete), bannerHandler.Delete)

	// Posts: section gate here, per-type sub-section checks in the handler
	posts := admin.Group("/posts")
	posts.Get("/", middleware.RequirePermission(permissionService, "media", services.ActionView), postHandler.List)
	posts.Get("/:id", middleware.RequirePermission(permissionService, "media", services.ActionView), postHandler.Get)
	posts.Post("/", postHandler.Create)
	posts.Put("/:id", postHandler.Update)
	posts.Patch("/:id/publish", postHandler.SetPublished)
	posts.Delete("/:id", postHandler.Delete)

	// Programs
	programs := admin.Group("/programs")
	programs.Get("/", middleware.RequirePermission(permissionService, "programs", services.ActionView), programHandler.List)
	programs.Get("/:id", middleware.RequirePermission(permissionService, "programs", services.ActionView), programHandler.Get)
	programs.Post("/", middleware.RequirePermission(permissionService, "programs", services.ActionCreate), programHandler.Create)
	programs.Put("/:id", middleware.RequirePermission(permissionService, "programs", services.ActionEdit), programHandler.Update)
	programs.Delete("/:id", middleware.RequirePermission(permissionService, "programs", services.ActionDelete), programHandler.Delete)

	// Team members
	team := admin.Group("/team")
	team.Get("/", middleware.RequirePermission(permissionService, "team", services.ActionView), teamHandler.List)
	team.Get("/:id", middleware.RequirePermission(permissionService, "team", services.ActionView), teamHandler.Get)
	team.Post("/", middleware.RequirePermission(permissionService, "team", services.ActionCreate), teamHandler.Create)
	team.Put("/:id", middleware.RequirePermission(permissionService, "team", services.ActionEdit), teamHandler.Update)
	team.Delete("/:id", middleware.RequirePermission(permissionService, "team", services.ActionDelete), teamHandler.Delete)

	// Donation records (read only in the CMS)
	admin.Get("/donations", middleware.RequirePermission(permissionService, "donations", services.ActionView), donationHandler.List)
}
