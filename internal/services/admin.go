package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

// AdminUserUpdate carries the fields an administrator may override.
// Nil means leave the field alone.
type AdminUserUpdate struct {
	Name          *string
	Email         *string
	Role          *string
	Level         *string
	XP            *int
	Streak        *int
	EmailVerified *bool
}

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users []*types.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

type AdminService interface {
	ListUsers(ctx context.Context, page, size int) (*UserPage, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, update AdminUserUpdate) (*types.User, error)
}

type adminService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	leaderboard LeaderboardService
}

func NewAdminService(log *logger.Logger, userRepo repos.UserRepo, leaderboard LeaderboardService) AdminService {
	return &adminService{
		log:         log.With("service", "AdminService"),
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

func (s *adminService) ListUsers(ctx context.Context, page, size int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	total, err := s.userRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	users, err := s.userRepo.List(ctx, nil, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &UserPage{Users: users, Total: total, Page: page, Size: size}, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uuid.UUID, update AdminUserUpdate) (*types.User, error) {
	fields := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		// The target user may keep their own email.
		owner, err := s.userRepo.GetByEmail(ctx, nil, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if owner != nil && owner.ID != userID {
			return nil, ErrEmailTaken
		}
		fields["email"] = email
	}
	if update.Role != nil {
		role := *update.Role
		if role != types.RoleUser && role != types.RoleAdmin {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		fields["role"] = role
	}
	if update.Level != nil {
		level, err := types.ParseLevel(*update.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fields["level"] = level
	}
	if update.XP != nil {
		if *update.XP < 0 {
			return nil, fmt.Errorf("%w: xp cannot be negative", ErrInvalidInput)
		}
		fields["xp"] = *update.XP
	}
	if update.Streak != nil {
		if *update.Streak < 0 {
			return nil, fmt.Errorf("%w: streak cannot be negative", ErrInvalidInput)
		}
		fields["streak"] = *update.Streak
	}
	if update.EmailVerified != nil {
		fields["email_verified"] = *update.EmailVerified
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		s.log.Info("User updated by admin", "user_id", userID)
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// An xp override has to reach the leaderboard too.
	if update.XP != nil && s.leaderboard != nil {
		if err := s.leaderboard.RecordScore(ctx, user.ID, user.XP); err != nil {
			s.log.Warn("Leaderboard score publish failed", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}
