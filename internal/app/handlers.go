package app

import (
	httpH "github.com/movalearn/movalearn-backend/internal/http/handlers"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type Handlers struct {
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Lesson      *httpH.LessonHandler
	Achievement *httpH.AchievementHandler
	Progress    *httpH.ProgressHandler
	Admin       *httpH.AdminHandler
	Health      *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        httpH.NewAuthHandler(serviceset.Auth, serviceset.User),
		User:        httpH.NewUserHandler(serviceset.User, serviceset.Leaderboard),
		Lesson:      httpH.NewLessonHandler(serviceset.Lesson),
		Achievement: httpH.NewAchievementHandler(serviceset.Achievement),
		Progress:    httpH.NewProgressHandler(serviceset.Progress),
		Admin:       httpH.NewAdminHandler(serviceset.Admin),
		Health:      httpH.NewHealthHandler(),
	}
}
