package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

// perfectScoreBonus is the extra XP for finishing a lesson at 100%.
const perfectScoreBonus = 5

// LessonStatus is a catalog lesson overlaid with the caller's completion.
type LessonStatus struct {
	Lesson    *types.Lesson `json:"lesson"`
	Completed bool          `json:"completed"`
	BestScore int           `json:"best_score"`
}

// CompletionResult reports everything that changed when a lesson was
// completed.
type CompletionResult struct {
	LessonID    uuid.UUID            `json:"lesson_id"`
	Score       int                  `json:"score"`
	BestScore   int                  `json:"best_score"`
	XPEarned    int                  `json:"xp_earned"`
	TotalXP     int                  `json:"total_xp"`
	Level       types.Level          `json:"level"`
	LeveledUp   bool                 `json:"leveled_up"`
	Streak      int                  `json:"streak"`
	Unlocked    []*types.Achievement `json:"unlocked_achievements"`
	FirstFinish bool                 `json:"first_finish"`
}

type LessonService interface {
	List(ctx context.Context, category string) ([]*types.Lesson, error)
	// ListForUser overlays the active catalog with the user's completions.
	ListForUser(ctx context.Context, userID uuid.UUID, category string) ([]LessonStatus, error)
	Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
	Exercises(ctx context.Context, lessonID uuid.UUID) ([]*types.Exercise, error)
	// Complete records a lesson attempt: best score wins, XP is credited
	// only for the positive delta over what the lesson already paid out,
	// and the day counts toward the streak exactly once.
	Complete(ctx context.Context, userID, lessonID uuid.UUID, score, timeSpent int) (*CompletionResult, error)
}

type lessonService struct {
	db             *gorm.DB
	log            *logger.Logger
	lessonRepo     repos.LessonRepo
	exerciseRepo   repos.ExerciseRepo
	completedRepo  repos.CompletedLessonRepo
	eventRepo      repos.ProgressEventRepo
	userRepo       repos.UserRepo
	progressionSvc ProgressionService
	achievementSvc AchievementService
}

func NewLessonService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	exerciseRepo repos.ExerciseRepo,
	completedRepo repos.CompletedLessonRepo,
	eventRepo repos.ProgressEventRepo,
	userRepo repos.UserRepo,
	progressionSvc ProgressionService,
	achievementSvc AchievementService,
) LessonService {
	return &lessonService{
		db:             db,
		log:            log.With("service", "LessonService"),
		lessonRepo:     lessonRepo,
		exerciseRepo:   exerciseRepo,
		completedRepo:  completedRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		progressionSvc: progressionSvc,
		achievementSvc: achievementSvc,
	}
}

func (s *lessonService) List(ctx context.Context, category string) ([]*types.Lesson, error) {
	return s.lessonRepo.ListActive(ctx, nil, category)
}

func (s *lessonService) ListForUser(ctx context.Context, userID uuid.UUID, category string) ([]LessonStatus, error) {
	lessons, err := s.lessonRepo.ListActive(ctx, nil, category)
	if err != nil {
		return nil, err
	}
	completions, err := s.completedRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	bestScores := make(map[uuid.UUID]int, len(completions))
	for _, c := range completions {
		bestScores[c.LessonID] = c.Score
	}

	statuses := make([]LessonStatus, 0, len(lessons))
	for _, l := range lessons {
		score, done := bestScores[l.ID]
		statuses = append(statuses, LessonStatus{
			Lesson:    l,
			Completed: done,
			BestScore: score,
		})
	}
	return statuses, nil
}

func (s *lessonService) Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !lesson.IsActive {
		return nil, ErrNotFound
	}
	return lesson, nil
}

func (s *lessonService) Exercises(ctx context.Context, lessonID uuid.UUID) ([]*types.Exercise, error) {
	if _, err := s.Get(ctx, lessonID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.ListByLesson(ctx, nil, lessonID)
}

func (s *lessonService) Complete(ctx context.Context, userID, lessonID uuid.UUID, score, timeSpent int) (*CompletionResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", ErrInvalidInput)
	}
	if timeSpent < 0 {
		return nil, fmt.Errorf("%w: time spent cannot be negative", ErrInvalidInput)
	}

	lesson, err := s.Get(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	attemptXP := lesson.XPReward
	if score == 100 {
		attemptXP += perfectScoreBonus
	}

	result := &CompletionResult{LessonID: lessonID, Score: score}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.completedRepo.GetByUserAndLesson(ctx, tx, userID, lessonID)
		if err != nil {
			return fmt.Errorf("load completion: %w", err)
		}

		now := time.Now()
		if existing == nil {
			result.FirstFinish = true
			result.BestScore = score
			result.XPEarned = attemptXP
			if err := s.completedRepo.Create(ctx, tx, &types.CompletedLesson{
				ID:          uuid.New(),
				UserID:      userID,
				LessonID:    lessonID,
				Score:       score,
				XPEarned:    attemptXP,
				TimeSpent:   timeSpent,
				CompletedAt: now,
			}); err != nil {
				return fmt.Errorf("create completion: %w", err)
			}
		} else {
			result.BestScore = existing.Score
			fields := map[string]any{"completed_at": now}
			if score > existing.Score {
				result.BestScore = score
				fields["score"] = score
			}
			// A repeat only pays the XP it improves on.
			if delta := attemptXP - existing.XPEarned; delta > 0 {
				result.XPEarned = delta
				fields["xp_earned"] = existing.XPEarned + delta
			}
			if timeSpent > 0 {
				fields["time_spent"] = existing.TimeSpent + timeSpent
			}
			if err := s.completedRepo.UpdateResult(ctx, tx, existing.ID, fields); err != nil {
				return fmt.Errorf("update completion: %w", err)
			}
		}

		return s.eventRepo.Create(ctx, tx, &types.ProgressEvent{
			ID:        uuid.New(),
			UserID:    userID,
			LessonID:  &lessonID,
			XPGained:  result.XPEarned,
			Accuracy:  score,
			TimeSpent: timeSpent,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	// The day counts toward the streak once, however the attempt scored.
	user, err := s.progressionSvc.RecordActivity(ctx, userID)
	if err != nil {
		return nil, err
	}
	levelBefore := user.Level
	result.TotalXP = user.XP
	result.Level = user.Level
	result.Streak = user.Streak

	if result.XPEarned > 0 {
		user, err = s.progressionSvc.GrantXP(ctx, userID, result.XPEarned)
		if err != nil {
			return nil, err
		}
		result.TotalXP = user.XP
		result.Level = user.Level
	}

	unlocked, err := s.achievementSvc.EvaluateAndUnlock(ctx, userID)
	if err != nil {
		// The completion itself succeeded; report it even when the
		// evaluator had trouble.
		s.log.Error("Achievement evaluation failed", "user_id", userID, "error", err)
	}
	result.Unlocked = unlocked
	if len(unlocked) > 0 {
		// Unlock rewards may have moved xp and level again.
		if fresh, err := s.userRepo.GetByID(ctx, nil, userID); err == nil {
			result.TotalXP = fresh.XP
			result.Level = fresh.Level
			result.Streak = fresh.Streak
		}
	}
	result.LeveledUp = result.Level != levelBefore

	s.log.Info("Lesson completed",
		"user_id", userID,
		"lesson_id", lessonID,
		"score", score,
		"xp_earned", result.XPEarned,
		"streak", result.Streak)
	return result, nil
}
