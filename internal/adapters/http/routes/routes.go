package routes

import (
	"gxas-memberhub/internal/adapters/http/handlers"
	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	// Initialize services
	notifier := services.NewNotificationService(cfg)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	applicationService := services.NewApplicationService(appRepo, notifier)
	membershipService := services.NewMembershipService(memberRepo, feeRepo)
	messageService := services.NewMessageService(messageRepo, userRepo, memberRepo, notifier)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	memberHandler := handlers.NewMemberHandler(membershipService)
	feeHandler := handlers.NewFeeHandler(membershipService)
	messageHandler := handlers.NewMessageHandler(messageService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Shared middleware instances
	auth := middleware.AuthMiddleware(cfg, userRepo)
	adminOnly := middleware.AdminOnly()
	memberOrAdmin := middleware.MemberOrAdmin()

	api := app.Group("/api")

	// ============================================================
	// Auth routes
	// ============================================================
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authGroup.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authGroup.Get("/me", auth, authHandler.Me)
	authGroup.Post("/change-password", auth, authHandler.ChangePassword)

	// Admin user management
	authGroup.Post("/create-admin", auth, adminOnly, authHandler.CreateAdmin)
	authGroup.Get("/users", auth, adminOnly, userHandler.List)
	authGroup.Put("/users/:id", auth, adminOnly, userHandler.Update)
	authGroup.Delete("/users/:id", auth, adminOnly, userHandler.Delete)

	// ============================================================
	// Application routes
	// ============================================================
	appGroup := api.Group("/applications")
	appGroup.Post("/", applicationHandler.Submit) // public
	appGroup.Get("/", auth, adminOnly, applicationHandler.List)
	appGroup.Get("/pending/count", auth, adminOnly, applicationHandler.PendingCount)
	appGroup.Get("/:id", auth, adminOnly, applicationHandler.Get)
	appGroup.Put("/:id/review", auth, adminOnly, applicationHandler.Review)
	appGroup.Delete("/:id", auth, adminOnly, applicationHandler.Delete)

	// ============================================================
	// Member routes
	// ============================================================
	memberGroup := api.Group("/members", auth)
	memberGroup.Post("/profile", memberOrAdmin, memberHandler.CreateProfile)
	memberGroup.Get("/profile", memberOrAdmin, memberHandler.MyProfile)
	memberGroup.Put("/profile", memberOrAdmin, memberHandler.UpdateMyProfile)
	memberGroup.Get("/all", adminOnly, memberHandler.List)
	memberGroup.Post("/:id/message", adminOnly, messageHandler.SendToMember)
	memberGroup.Get("/:id", adminOnly, memberHandler.Get)
	memberGroup.Put("/:id", adminOnly, memberHandler.AdminUpdate)
	memberGroup.Delete("/:id", adminOnly, memberHandler.Delete)

	// ============================================================
	// Fee routes
	// ============================================================
	feeGroup := api.Group("/fees", auth)
	feeGroup.Get("/my-status", memberOrAdmin, feeHandler.MyStatus)
	feeGroup.Get("/my-records", memberOrAdmin, feeHandler.MyRecords)
	feeGroup.Post("/add", adminOnly, feeHandler.Add)
	feeGroup.Get("/all", adminOnly, feeHandler.ListAll)
	feeGroup.Get("/member/:id", adminOnly, feeHandler.MemberRecords)
	feeGroup.Put("/:id", adminOnly, feeHandler.Update)

	// ============================================================
	// Message routes
	// ============================================================
	messageGroup := api.Group("/messages", auth)
	messageGroup.Post("/", memberOrAdmin, messageHandler.SendToAdmin)
	messageGroup.Get("/", memberOrAdmin, messageHandler.MyMessages)
	messageGroup.Get("/admin", adminOnly, messageHandler.ListAll)
	messageGroup.Get("/unread/count", memberOrAdmin, messageHandler.UnreadCount)
	messageGroup.Get("/:id", memberOrAdmin, messageHandler.Get)
	messageGroup.Put("/:id/read", memberOrAdmin, messageHandler.MarkRead)

	// ============================================================
	// Dashboard routes
	// ============================================================
	api.Get("/dashboard/admin", auth, adminOnly, dashboardHandler.Admin)
}
