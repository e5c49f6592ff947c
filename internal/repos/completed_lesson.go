package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type CompletedLessonRepo interface {
	GetByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.CompletedLesson, error)
	Create(ctx context.Context, tx *gorm.DB, completion *types.CompletedLesson) error
	UpdateResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CompletedLesson, error)
}

type completedLessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletedLessonRepo(db *gorm.DB, baseLog *logger.Logger) CompletedLessonRepo {
	return &completedLessonRepo{db: db, log: baseLog.With("repo", "CompletedLessonRepo")}
}

func (r *completedLessonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetByUserAndLesson returns (nil, nil) when there is no completion yet.
func (r *completedLessonRepo) GetByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.CompletedLesson, error) {
	var completion types.CompletedLesson
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *completedLessonRepo) Create(ctx context.Context, tx *gorm.DB, completion *types.CompletedLesson) error {
	return r.conn(tx).WithContext(ctx).Create(completion).Error
}

func (r *completedLessonRepo) UpdateResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.CompletedLesson{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *completedLessonRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.CompletedLesson{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *completedLessonRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CompletedLesson, error) {
	var completions []*types.CompletedLesson
	if err := r.conn(tx).WithContext(ctx).
		Preload("Lesson").
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}
