package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpH "github.com/movalearn/movalearn-backend/internal/http/handlers"
	httpMW "github.com/movalearn/movalearn-backend/internal/http/middleware"
	"github.com/movalearn/movalearn-backend/internal/repos"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
	"github.com/movalearn/movalearn-backend/internal/services"
)

func TestLessonCatalogRoutesArePublic(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	lessonRepo := repos.NewLessonRepo(tx, log)
	exerciseRepo := repos.NewExerciseRepo(tx, log)
	completedRepo := repos.NewCompletedLessonRepo(tx, log)
	eventRepo := repos.NewProgressEventRepo(tx, log)
	achievementRepo := repos.NewAchievementRepo(tx, log)
	unlockRepo := repos.NewUserAchievementRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	verificationRepo := repos.NewEmailVerificationTokenRepo(tx, log)

	progressionSvc := services.NewProgressionService(tx, log, userRepo, nil)
	achievementSvc := services.NewAchievementService(tx, log, userRepo, achievementRepo, unlockRepo, completedRepo, progressionSvc)
	lessonSvc := services.NewLessonService(tx, log, lessonRepo, exerciseRepo, completedRepo, eventRepo, userRepo, progressionSvc, achievementSvc)
	authSvc := services.NewAuthService(tx, log, userRepo, tokenRepo, verificationRepo, services.NewEmailService(log), progressionSvc)

	router := NewRouter(RouterConfig{
		Log:            log,
		LessonHandler:  httpH.NewLessonHandler(lessonSvc),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authSvc),
	})

	ctx := context.Background()
	lesson := testutil.SeedLesson(t, ctx, tx, "Public catalog lesson", 1)

	// Anonymous clients can browse a lesson and its exercises.
	for _, path := range []string{
		fmt.Sprintf("/api/lessons/%s", lesson.ID),
		fmt.Sprintf("/api/lessons/%s/exercises", lesson.ID),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s without a token: expected 200, got %d (%s)", path, w.Code, w.Body.String())
		}
	}

	// The personalized listing still requires a token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lessons/my", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/lessons/my without a token: expected 401, got %d", w.Code)
	}
}
