package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/movalearn/movalearn-backend/internal/http"
	"github.com/movalearn/movalearn-backend/internal/observability"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:                log,
		AuthHandler:        handlerset.Auth,
		AuthMiddleware:     middleware.Auth,
		UserHandler:        handlerset.User,
		LessonHandler:      handlerset.Lesson,
		AchievementHandler: handlerset.Achievement,
		ProgressHandler:    handlerset.Progress,
		AdminHandler:       handlerset.Admin,
		HealthHandler:      handlerset.Health,
		ServiceName:        cfg.ServiceName,
		TracingEnabled:     observability.Enabled(),
		CORSOrigins:        cfg.CORSOrigins,
	})
}
