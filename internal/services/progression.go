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

// ProgressionService owns the user's xp/level/streak state. Every write
// here is a read-modify-write, so each one runs in its own transaction
// with the user row locked for update.
type ProgressionService interface {
	// GrantXP adds delta XP and resolves at most one level promotion.
	GrantXP(ctx context.Context, userID uuid.UUID, delta int) (*types.User, error)
	// RecordActivity updates the streak for "the user was active now".
	RecordActivity(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type progressionService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	leaderboard LeaderboardService
	now         func() time.Time
}

func NewProgressionService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, leaderboard LeaderboardService) ProgressionService {
	return &progressionService{
		db:          db,
		log:         log.With("service", "ProgressionService"),
		userRepo:    userRepo,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

func (ps *progressionService) GrantXP(ctx context.Context, userID uuid.UUID, delta int) (*types.User, error) {
	var user *types.User
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		user, txErr = ps.grantXPInTx(ctx, tx, userID, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	ps.publishScore(ctx, user)
	return user, nil
}

func (ps *progressionService) grantXPInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (*types.User, error) {
	user, err := ps.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user for xp grant: %w", err)
	}

	newXP := user.XP + delta
	if newXP < 0 {
		newXP = 0
	}
	newLevel := progression.NextLevel(user.Level, newXP)

	if err := ps.userRepo.UpdateProgression(ctx, tx, userID, newXP, newLevel); err != nil {
		return nil, fmt.Errorf("persist xp grant: %w", err)
	}

	if newLevel != user.Level {
		ps.log.Info("Level up", "user_id", userID, "from", user.Level, "to", newLevel, "xp", newXP)
	}

	user.XP = newXP
	user.Level = newLevel
	return user, nil
}

func (ps *progressionService) RecordActivity(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	now := ps.now()
	var user *types.User
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		user, txErr = ps.userRepo.GetByIDForUpdate(ctx, tx, userID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load user for activity: %w", txErr)
		}

		newStreak := progression.NextStreak(user.LastActiveDate, user.Streak, now)
		if txErr := ps.userRepo.UpdateActivity(ctx, tx, userID, newStreak, now); txErr != nil {
			return fmt.Errorf("persist activity: %w", txErr)
		}

		user.Streak = newStreak
		user.LastActiveDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (ps *progressionService) publishScore(ctx context.Context, user *types.User) {
	if ps.leaderboard == nil || user == nil {
		return
	}
	if err := ps.leaderboard.RecordScore(ctx, user.ID, user.XP); err != nil {
		ps.log.Warn("Leaderboard score publish failed", "user_id", user.ID, "error", err)
	}
}
