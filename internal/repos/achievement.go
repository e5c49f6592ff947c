package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type AchievementRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
	// ListByCreation returns the catalog in insertion order, which is the
	// order the evaluator walks it in.
	ListByCreation(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *achievementRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	var achievements []*types.Achievement
	if err := r.conn(tx).WithContext(ctx).
		Order("xp_reward asc").
		Order("name asc").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *achievementRepo) ListByCreation(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	var achievements []*types.Achievement
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at asc").
		Order("name asc").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}
