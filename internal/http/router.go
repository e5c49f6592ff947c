package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/movalearn/movalearn-backend/internal/http/handlers"
	httpMW "github.com/movalearn/movalearn-backend/internal/http/middleware"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler        *httpH.AuthHandler
	AuthMiddleware     *httpMW.AuthMiddleware
	UserHandler        *httpH.UserHandler
	LessonHandler      *httpH.LessonHandler
	AchievementHandler *httpH.AchievementHandler
	ProgressHandler    *httpH.ProgressHandler
	AdminHandler       *httpH.AdminHandler
	HealthHandler      *httpH.HealthHandler

	ServiceName    string
	TracingEnabled bool
	CORSOrigins    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/verify-email", cfg.AuthHandler.VerifyEmail)
			api.POST("/auth/resend-verification", cfg.AuthHandler.ResendVerification)
		}

		// Public catalog
		if cfg.LessonHandler != nil {
			api.GET("/lessons", cfg.LessonHandler.List)
			api.GET("/lessons/:id", cfg.LessonHandler.Get)
			api.GET("/lessons/:id/exercises", cfg.LessonHandler.Exercises)
		}
		if cfg.AchievementHandler != nil {
			api.GET("/achievements", cfg.AchievementHandler.Catalog)
		}
		if cfg.UserHandler != nil {
			api.GET("/users/leaderboard", cfg.UserHandler.Leaderboard)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/auth/profile", cfg.AuthHandler.Profile)
			protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Users
		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.GetMe)
			protected.PATCH("/users/me", cfg.UserHandler.UpdateMe)
			protected.GET("/users/:id", cfg.UserHandler.GetByID)
		}

		// Lessons
		if cfg.LessonHandler != nil {
			protected.GET("/lessons/my", cfg.LessonHandler.ListMine)
			protected.POST("/lessons/:id/complete", cfg.LessonHandler.Complete)
		}

		// Achievements
		if cfg.AchievementHandler != nil {
			protected.GET("/achievements/my", cfg.AchievementHandler.Mine)
			protected.GET("/achievements/progress", cfg.AchievementHandler.Progress)
			protected.POST("/achievements/check", cfg.AchievementHandler.Check)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			protected.GET("/progress", cfg.ProgressHandler.Summary)
			protected.GET("/progress/streak", cfg.ProgressHandler.Streak)
			protected.GET("/progress/daily", cfg.ProgressHandler.Daily)
		}
	}

	if cfg.AdminHandler != nil && cfg.AuthMiddleware != nil {
		admin := api.Group("/admin")
		admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.PATCH("/users/:id", cfg.AdminHandler.UpdateUser)
	}

	return r
}
