package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

// ProgressTotals aggregates a user's whole progress ledger.
type ProgressTotals struct {
	XPGained    int
	TimeSpent   int
	AvgAccuracy float64
	Events      int64
}

type ProgressEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.ProgressEvent) error
	ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.ProgressEvent, error)
	TotalsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (ProgressTotals, error)
}

type progressEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressEventRepo(db *gorm.DB, baseLog *logger.Logger) ProgressEventRepo {
	return &progressEventRepo{db: db, log: baseLog.With("repo", "ProgressEventRepo")}
}

func (r *progressEventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *progressEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.ProgressEvent) error {
	return r.conn(tx).WithContext(ctx).Create(event).Error
}

func (r *progressEventRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.ProgressEvent, error) {
	var events []*types.ProgressEvent
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *progressEventRepo) TotalsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (ProgressTotals, error) {
	var row struct {
		XPGained    int
		TimeSpent   int
		AvgAccuracy float64
		Events      int64
	}
	err := r.conn(tx).WithContext(ctx).
		Model(&types.ProgressEvent{}).
		Select("COALESCE(SUM(xp_gained),0) as xp_gained, COALESCE(SUM(time_spent),0) as time_spent, COALESCE(AVG(accuracy),0) as avg_accuracy, COUNT(*) as events").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return ProgressTotals{}, err
	}
	return ProgressTotals{
		XPGained:    row.XPGained,
		TimeSpent:   row.TimeSpent,
		AvgAccuracy: row.AvgAccuracy,
		Events:      row.Events,
	}, nil
}
