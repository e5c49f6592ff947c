package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type EmailVerificationTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.EmailVerificationToken) error
	Get(ctx context.Context, tx *gorm.DB, token string) (*types.EmailVerificationToken, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type emailVerificationTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmailVerificationTokenRepo(db *gorm.DB, baseLog *logger.Logger) EmailVerificationTokenRepo {
	return &emailVerificationTokenRepo{db: db, log: baseLog.With("repo", "EmailVerificationTokenRepo")}
}

func (r *emailVerificationTokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *emailVerificationTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.EmailVerificationToken) error {
	return r.conn(tx).WithContext(ctx).Create(token).Error
}

func (r *emailVerificationTokenRepo) Get(ctx context.Context, tx *gorm.DB, token string) (*types.EmailVerificationToken, error) {
	var row types.EmailVerificationToken
	if err := r.conn(tx).WithContext(ctx).
		Where("token = ?", token).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *emailVerificationTokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.EmailVerificationToken{}).Error
}
