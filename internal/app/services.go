package app

import (
	"gorm.io/gorm"

	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Lesson      services.LessonService
	Achievement services.AchievementService
	Progression services.ProgressionService
	Progress    services.ProgressService
	Leaderboard services.LeaderboardService
	Admin       services.AdminService
	Email       services.EmailService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	email := services.NewEmailService(log)
	leaderboard := services.NewLeaderboardService(log, clients.Redis, reposet.User)
	progression := services.NewProgressionService(db, log, reposet.User, leaderboard)
	achievement := services.NewAchievementService(
		db, log,
		reposet.User,
		reposet.Achievement,
		reposet.UserAchievement,
		reposet.CompletedLesson,
		progression,
	)
	lesson := services.NewLessonService(
		db, log,
		reposet.Lesson,
		reposet.Exercise,
		reposet.CompletedLesson,
		reposet.ProgressEvent,
		reposet.User,
		progression,
		achievement,
	)
	auth := services.NewAuthService(
		db, log,
		reposet.User,
		reposet.UserToken,
		reposet.VerificationToken,
		email,
		progression,
	)
	user := services.NewUserService(log, reposet.User)
	progress := services.NewProgressService(
		log,
		reposet.User,
		reposet.Lesson,
		reposet.CompletedLesson,
		reposet.ProgressEvent,
	)
	admin := services.NewAdminService(log, reposet.User, leaderboard)

	return Services{
		Auth:        auth,
		User:        user,
		Lesson:      lesson,
		Achievement: achievement,
		Progression: progression,
		Progress:    progress,
		Leaderboard: leaderboard,
		Admin:       admin,
		Email:       email,
	}
}
