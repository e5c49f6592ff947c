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
	"github.com/movalearn/movalearn-backend/internal/progression"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

// AchievementProgress is one catalog row annotated with how close the
// user is to unlocking it.
type AchievementProgress struct {
	Achievement *types.Achievement `json:"achievement"`
	Unlocked    bool               `json:"unlocked"`
	UnlockedAt  *time.Time         `json:"unlocked_at,omitempty"`
	Current     int                `json:"current"`
	Target      int                `json:"target"`
}

type AchievementService interface {
	Catalog(ctx context.Context) ([]*types.Achievement, error)
	Mine(ctx context.Context, userID uuid.UUID) ([]*types.UserAchievement, error)
	Progress(ctx context.Context, userID uuid.UUID) ([]AchievementProgress, error)
	// EvaluateAndUnlock walks the catalog against a snapshot of the user's
	// stats and unlocks everything newly satisfied. It returns the
	// achievements unlocked by this call only.
	EvaluateAndUnlock(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	achievementRepo repos.AchievementRepo
	unlockRepo      repos.UserAchievementRepo
	completedRepo   repos.CompletedLessonRepo
	progressionSvc  ProgressionService
}

func NewAchievementService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	achievementRepo repos.AchievementRepo,
	unlockRepo repos.UserAchievementRepo,
	completedRepo repos.CompletedLessonRepo,
	progressionSvc ProgressionService,
) AchievementService {
	return &achievementService{
		db:              db,
		log:             log.With("service", "AchievementService"),
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		unlockRepo:      unlockRepo,
		completedRepo:   completedRepo,
		progressionSvc:  progressionSvc,
	}
}

func (as *achievementService) Catalog(ctx context.Context) ([]*types.Achievement, error) {
	return as.achievementRepo.ListAll(ctx, nil)
}

func (as *achievementService) Mine(ctx context.Context, userID uuid.UUID) ([]*types.UserAchievement, error) {
	return as.unlockRepo.ListByUser(ctx, nil, userID)
}

func (as *achievementService) Progress(ctx context.Context, userID uuid.UUID) ([]AchievementProgress, error) {
	stats, err := as.snapshotStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := as.achievementRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load achievement catalog: %w", err)
	}
	unlocks, err := as.unlockRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load unlocks: %w", err)
	}
	unlockedAt := make(map[uuid.UUID]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	rows := make([]AchievementProgress, 0, len(catalog))
	for _, a := range catalog {
		req, err := progression.ParseRequirement(a.Requirement)
		if err != nil {
			as.log.Warn("Skipping achievement with bad requirement", "achievement", a.Name, "error", err)
			continue
		}
		row := AchievementProgress{
			Achievement: a,
			Current:     req.Current(stats),
			Target:      req.Target(),
		}
		if at, ok := unlockedAt[a.ID]; ok {
			row.Unlocked = true
			row.UnlockedAt = &at
			row.Current = row.Target
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (as *achievementService) EvaluateAndUnlock(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	stats, err := as.snapshotStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := as.achievementRepo.ListByCreation(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load achievement catalog: %w", err)
	}

	var unlocked []*types.Achievement
	for _, a := range catalog {
		req, err := progression.ParseRequirement(a.Requirement)
		if err != nil {
			as.log.Warn("Skipping achievement with bad requirement", "achievement", a.Name, "error", err)
			continue
		}
		if !req.Met(stats) {
			continue
		}

		created, err := as.unlockOnce(ctx, userID, a.ID)
		if err != nil {
			as.log.Error("Achievement unlock failed", "achievement", a.Name, "user_id", userID, "error", err)
			continue
		}
		if !created {
			continue
		}

		as.log.Info("Achievement unlocked", "achievement", a.Name, "user_id", userID)
		unlocked = append(unlocked, a)

		if a.XPReward > 0 {
			if _, err := as.progressionSvc.GrantXP(ctx, userID, a.XPReward); err != nil {
				as.log.Error("Achievement xp grant failed", "achievement", a.Name, "user_id", userID, "error", err)
			}
		}
	}
	return unlocked, nil
}

// unlockOnce inserts the unlock row unless it already exists. The
// check-then-insert runs in one transaction and the composite unique
// index catches the remaining race, so a concurrent duplicate surfaces
// as an insert error rather than a double unlock.
func (as *achievementService) unlockOnce(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	created := false
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.unlockRepo.Exists(ctx, tx, userID, achievementID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if err := as.unlockRepo.Create(ctx, tx, &types.UserAchievement{
			ID:            uuid.New(),
			UserID:        userID,
			AchievementID: achievementID,
			UnlockedAt:    time.Now(),
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (as *achievementService) snapshotStats(ctx context.Context, userID uuid.UUID) (progression.Stats, error) {
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.Stats{}, ErrNotFound
		}
		return progression.Stats{}, fmt.Errorf("load user: %w", err)
	}
	lessons, err := as.completedRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return progression.Stats{}, fmt.Errorf("count completed lessons: %w", err)
	}
	return progression.Stats{
		LessonsCompleted: int(lessons),
		Streak:           user.Streak,
		Level:            user.Level,
	}, nil
}
