package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
		Role:     types.RoleUser,
		Level:    types.LevelA1,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, order int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:       uuid.New(),
		Title:    title,
		Category: types.CategoryGreetings,
		Level:    types.LevelA1,
		Order:    order,
		XPReward: 10,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedAchievement(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, requirement string, xpReward int) *types.Achievement {
	tb.Helper()
	a := &types.Achievement{
		ID:          uuid.New(),
		Name:        name,
		Description: name,
		Icon:        "⭐",
		Requirement: datatypes.JSON([]byte(requirement)),
		XPReward:    xpReward,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed achievement: %v", err)
	}
	return a
}

func SeedCompletedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, score int) *types.CompletedLesson {
	tb.Helper()
	c := &types.CompletedLesson{
		ID:       uuid.New(),
		UserID:   userID,
		LessonID: lessonID,
		Score:    score,
		XPEarned: 10,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed completed lesson: %v", err)
	}
	return c
}
