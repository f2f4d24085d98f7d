package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/handler"
	"github.com/milkyano-media/aspire-backend/internal/middleware"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Webhook   *handler.WebhookHandler
	Course    *handler.CourseHandler
	Subject   *handler.SubjectHandler
	Lead      *handler.LeadHandler
	BulkMail  *handler.BulkMailHandler
	AdminUser *handler.AdminUserHandler
	AdminRole *handler.AdminRoleHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/courses", handlers.Course.ListPublished)
		publicAPI.GET("/subjects", handlers.Subject.List)
		publicAPI.GET("/subjects/:slug", handlers.Subject.GetBySlug)
	}

	// Lead intake is public but rate limited (10 submissions per minute per IP).
	leadLimiter := middleware.NewRateLimiter(10, time.Minute)
	publicAPI.POST("/leads", leadLimiter.Middleware(), handlers.Lead.Create)

	// ─── 1. Webhook (Shared-Secret Auth) ───────────────────────────────
	// Path and auth are fixed by the WiseLMS webhook registration, which is
	// why it sits outside the versioned API groups. Authenticated by exact
	// match on the Authorization header inside the handler.
	router.POST("/api/wiselms/webhook", handlers.Webhook.HandleWiseLMSEvent)

	// ─── 2. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 3. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Dashboard
		adminAPI.GET("/dashboard",
			handlers.Dashboard.Get, // Open to all admins
		)

		// Course management
		coursesGroup := adminAPI.Group("/courses")
		{
			coursesGroup.GET("", middleware.RequirePermission(string(model.PermissionCoursesRead)), handlers.Course.List)
			coursesGroup.GET("/:id", middleware.RequirePermission(string(model.PermissionCoursesRead)), handlers.Course.Get)
			coursesGroup.POST("", middleware.RequirePermission(string(model.PermissionCoursesWrite)), handlers.Course.Create)
			coursesGroup.PUT("/:id", middleware.RequirePermission(string(model.PermissionCoursesWrite)), handlers.Course.Update)
			coursesGroup.DELETE("/:id", middleware.RequirePermission(string(model.PermissionCoursesWrite)), handlers.Course.Delete)
		}

		// Subject management
		subjectsGroup := adminAPI.Group("/subjects")
		{
			subjectsGroup.POST("", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.Create)
			subjectsGroup.PUT("/:id", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.Update)
			subjectsGroup.DELETE("/:id", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.Delete)
		}

		// Lead management
		leadsGroup := adminAPI.Group("/leads")
		{
			leadsGroup.GET("", middleware.RequirePermission(string(model.PermissionLeadsRead)), handlers.Lead.List)
			leadsGroup.GET("/export", middleware.RequirePermission(string(model.PermissionLeadsRead)), handlers.Lead.Export)
			leadsGroup.PATCH("/:id/status", middleware.RequirePermission(string(model.PermissionLeadsWrite)), handlers.Lead.UpdateStatus)
		}

		// Bulk email composer
		emailsGroup := adminAPI.Group("/emails")
		{
			emailsGroup.GET("/classes", middleware.RequirePermission(string(model.PermissionEmailsSend)), handlers.BulkMail.ListClasses)
			emailsGroup.POST("/send", middleware.RequirePermission(string(model.PermissionEmailsSend)), handlers.BulkMail.Send)
		}

		// Admin User Management
		adminAPI.GET("/users",
			middleware.RequirePermission(string(model.PermissionAdminsRead)),
			handlers.AdminUser.List,
		)
		adminAPI.POST("/users",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.Create,
		)
		adminAPI.PUT("/users/:id",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.Update,
		)
		adminAPI.DELETE("/users/:id",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.Delete,
		)

		// Admin Role Management
		// Role selection uses the admins:read permission since it backs the
		// user form, not the role editor.
		adminAPI.GET("/roles/selection",
			middleware.RequirePermission(string(model.PermissionAdminsRead)),
			handlers.AdminRole.ListForSelection,
		)
		adminAPI.GET("/roles",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.List,
		)
		adminAPI.GET("/roles/permissions",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.ListPermissions,
		)
		adminAPI.GET("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.Get,
		)
		adminAPI.POST("/roles",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.Create,
		)
		adminAPI.PUT("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.Update,
		)
		adminAPI.DELETE("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.Delete,
		)
	}

	return router
}
