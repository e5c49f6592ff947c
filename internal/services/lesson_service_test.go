package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/movalearn/movalearn-backend/internal/repos"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
)

func TestCompleteFirstTime(t *testing.T) {
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

	progressionSvc := NewProgressionService(tx, log, userRepo, nil)
	achievementSvc := NewAchievementService(tx, log, userRepo, achievementRepo, unlockRepo, completedRepo, progressionSvc)
	svc := NewLessonService(tx, log, lessonRepo, exerciseRepo, completedRepo, eventRepo, userRepo, progressionSvc, achievementSvc)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "complete@example.com")
	lesson := testutil.SeedLesson(t, ctx, tx, "Completion lesson", 1)

	result, err := svc.Complete(ctx, user.ID, lesson.ID, 80, 120)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !result.FirstFinish {
		t.Fatal("expected FirstFinish on initial completion")
	}
	if result.XPEarned != lesson.XPReward {
		t.Fatalf("expected xp %d, got %d", lesson.XPReward, result.XPEarned)
	}
	if result.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", result.Streak)
	}
	if result.TotalXP != lesson.XPReward {
		t.Fatalf("expected total xp %d, got %d", lesson.XPReward, result.TotalXP)
	}
}

func TestCompletePerfectScoreBonus(t *testing.T) {
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

	progressionSvc := NewProgressionService(tx, log, userRepo, nil)
	achievementSvc := NewAchievementService(tx, log, userRepo, achievementRepo, unlockRepo, completedRepo, progressionSvc)
	svc := NewLessonService(tx, log, lessonRepo, exerciseRepo, completedRepo, eventRepo, userRepo, progressionSvc, achievementSvc)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "perfect@example.com")
	lesson := testutil.SeedLesson(t, ctx, tx, "Perfect lesson", 1)

	result, err := svc.Complete(ctx, user.ID, lesson.ID, 100, 60)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if want := lesson.XPReward + perfectScoreBonus; result.XPEarned != want {
		t.Fatalf("expected xp %d with perfect bonus, got %d", want, result.XPEarned)
	}
}

func TestCompleteRepeatPaysOnlyImprovement(t *testing.T) {
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

	progressionSvc := NewProgressionService(tx, log, userRepo, nil)
	achievementSvc := NewAchievementService(tx, log, userRepo, achievementRepo, unlockRepo, completedRepo, progressionSvc)
	svc := NewLessonService(tx, log, lessonRepo, exerciseRepo, completedRepo, eventRepo, userRepo, progressionSvc, achievementSvc)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "repeat@example.com")
	lesson := testutil.SeedLesson(t, ctx, tx, "Repeat lesson", 1)

	first, err := svc.Complete(ctx, user.ID, lesson.ID, 90, 60)
	if err != nil {
		t.Fatalf("Complete (first): %v", err)
	}

	// A worse repeat keeps the best score and pays nothing.
	second, err := svc.Complete(ctx, user.ID, lesson.ID, 70, 60)
	if err != nil {
		t.Fatalf("Complete (worse repeat): %v", err)
	}
	if second.FirstFinish {
		t.Fatal("repeat should not report FirstFinish")
	}
	if second.XPEarned != 0 {
		t.Fatalf("worse repeat should pay no xp, got %d", second.XPEarned)
	}
	if second.BestScore != 90 {
		t.Fatalf("best score should stay 90, got %d", second.BestScore)
	}

	// A perfect repeat pays only the improvement over the first payout.
	third, err := svc.Complete(ctx, user.ID, lesson.ID, 100, 60)
	if err != nil {
		t.Fatalf("Complete (perfect repeat): %v", err)
	}
	if want := perfectScoreBonus; third.XPEarned != want {
		t.Fatalf("perfect repeat should pay the %d bonus delta, got %d", want, third.XPEarned)
	}
	if third.BestScore != 100 {
		t.Fatalf("best score should be 100, got %d", third.BestScore)
	}

	if total := first.XPEarned + third.XPEarned; total != lesson.XPReward+perfectScoreBonus {
		t.Fatalf("lifetime payout should cap at reward+bonus, got %d", total)
	}
}

func TestCompleteValidation(t *testing.T) {
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

	progressionSvc := NewProgressionService(tx, log, userRepo, nil)
	achievementSvc := NewAchievementService(tx, log, userRepo, achievementRepo, unlockRepo, completedRepo, progressionSvc)
	svc := NewLessonService(tx, log, lessonRepo, exerciseRepo, completedRepo, eventRepo, userRepo, progressionSvc, achievementSvc)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "validate@example.com")
	lesson := testutil.SeedLesson(t, ctx, tx, "Validation lesson", 1)

	if _, err := svc.Complete(ctx, user.ID, lesson.ID, 101, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for score > 100, got %v", err)
	}
	if _, err := svc.Complete(ctx, user.ID, lesson.ID, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}
	if _, err := svc.Complete(ctx, user.ID, uuid.New(), 50, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown lesson, got %v", err)
	}
}
