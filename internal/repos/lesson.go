package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type LessonRepo interface {
	// ListActive returns active lessons ordered by level then lesson order.
	// An empty category means all categories.
	ListActive(ctx context.Context, tx *gorm.DB, category string) ([]*types.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, withExercises bool) (*types.Lesson, error)
	CountActive(ctx context.Context, tx *gorm.DB) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonRepo) ListActive(ctx context.Context, tx *gorm.DB, category string) ([]*types.Lesson, error) {
	q := r.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("level asc").
		Order("sort_order asc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var lessons []*types.Lesson
	if err := q.Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, withExercises bool) (*types.Lesson, error) {
	q := r.conn(tx).WithContext(ctx)
	if withExercises {
		q = q.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		})
	}
	var lesson types.Lesson
	if err := q.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Lesson{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
