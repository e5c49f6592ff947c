package app

import (
	"gorm.io/gorm"

	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	VerificationToken repos.EmailVerificationTokenRepo
	Lesson            repos.LessonRepo
	Exercise          repos.ExerciseRepo
	CompletedLesson   repos.CompletedLessonRepo
	ProgressEvent     repos.ProgressEventRepo
	Achievement       repos.AchievementRepo
	UserAchievement   repos.UserAchievementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		VerificationToken: repos.NewEmailVerificationTokenRepo(db, log),
		Lesson:            repos.NewLessonRepo(db, log),
		Exercise:          repos.NewExerciseRepo(db, log),
		CompletedLesson:   repos.NewCompletedLessonRepo(db, log),
		ProgressEvent:     repos.NewProgressEventRepo(db, log),
		Achievement:       repos.NewAchievementRepo(db, log),
		UserAchievement:   repos.NewUserAchievementRepo(db, log),
	}
}
