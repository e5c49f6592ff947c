package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/progression"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

// CategoryProgress counts completions inside one lesson category.
type CategoryProgress struct {
	Category  string `json:"category"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// ProgressSummary is the aggregate view behind the progress endpoint.
type ProgressSummary struct {
	XP               int                      `json:"xp"`
	Level            types.Level              `json:"level"`
	Streak           int                      `json:"streak"`
	LessonsCompleted int                      `json:"lessons_completed"`
	TotalLessons     int                      `json:"total_lessons"`
	TotalTimeSpent   int                      `json:"total_time_spent"`
	AverageAccuracy  float64                  `json:"average_accuracy"`
	Categories       []CategoryProgress       `json:"categories"`
	Recent           []*types.CompletedLesson `json:"recent"`
}

// StreakInfo describes the current streak state.
type StreakInfo struct {
	Streak        int        `json:"streak"`
	ActiveToday   bool       `json:"active_today"`
	NextMilestone int        `json:"next_milestone"`
	LastActive    *time.Time `json:"last_active,omitempty"`
}

// DailyStat aggregates one calendar day of the progress ledger.
type DailyStat struct {
	Date            string  `json:"date"`
	XPGained        int     `json:"xp_gained"`
	Lessons         int     `json:"lessons"`
	TimeSpent       int     `json:"time_spent"`
	AverageAccuracy float64 `json:"average_accuracy"`
}

type ProgressService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*ProgressSummary, error)
	Streak(ctx context.Context, userID uuid.UUID) (*StreakInfo, error)
	// Daily aggregates the ledger per calendar day over the last N days.
	Daily(ctx context.Context, userID uuid.UUID, days int) ([]DailyStat, error)
}

type progressService struct {
	log           *logger.Logger
	userRepo      repos.UserRepo
	lessonRepo    repos.LessonRepo
	completedRepo repos.CompletedLessonRepo
	eventRepo     repos.ProgressEventRepo
	now           func() time.Time
}

func NewProgressService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	lessonRepo repos.LessonRepo,
	completedRepo repos.CompletedLessonRepo,
	eventRepo repos.ProgressEventRepo,
) ProgressService {
	return &progressService{
		log:           log.With("service", "ProgressService"),
		userRepo:      userRepo,
		lessonRepo:    lessonRepo,
		completedRepo: completedRepo,
		eventRepo:     eventRepo,
		now:           time.Now,
	}
}

func (ps *progressService) Summary(ctx context.Context, userID uuid.UUID) (*ProgressSummary, error) {
	user, err := ps.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		totals      repos.ProgressTotals
		lessons     []*types.Lesson
		completions []*types.CompletedLesson
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = ps.eventRepo.TotalsByUser(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load progress totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lessons, err = ps.lessonRepo.ListActive(gctx, nil, "")
		if err != nil {
			return fmt.Errorf("load lesson catalog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completions, err = ps.completedRepo.ListByUser(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load completions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	completedByLesson := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		completedByLesson[c.LessonID] = true
	}

	perCategory := map[string]*CategoryProgress{}
	order := []string{}
	for _, l := range lessons {
		cp, ok := perCategory[l.Category]
		if !ok {
			cp = &CategoryProgress{Category: l.Category}
			perCategory[l.Category] = cp
			order = append(order, l.Category)
		}
		cp.Total++
		if completedByLesson[l.ID] {
			cp.Completed++
		}
	}
	categories := make([]CategoryProgress, 0, len(order))
	for _, name := range order {
		categories = append(categories, *perCategory[name])
	}

	recent := completions
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &ProgressSummary{
		XP:               user.XP,
		Level:            user.Level,
		Streak:           user.Streak,
		LessonsCompleted: len(completions),
		TotalLessons:     len(lessons),
		TotalTimeSpent:   totals.TimeSpent,
		AverageAccuracy:  totals.AvgAccuracy,
		Categories:       categories,
		Recent:           recent,
	}, nil
}

func (ps *progressService) Streak(ctx context.Context, userID uuid.UUID) (*StreakInfo, error) {
	user, err := ps.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StreakInfo{
		Streak:        user.Streak,
		ActiveToday:   progression.ActiveToday(user.LastActiveDate, ps.now()),
		NextMilestone: progression.NextMilestone(user.Streak),
		LastActive:    user.LastActiveDate,
	}, nil
}

func (ps *progressService) Daily(ctx context.Context, userID uuid.UUID, days int) ([]DailyStat, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}
	if _, err := ps.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	now := ps.now()
	since := now.AddDate(0, 0, -(days - 1))
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	events, err := ps.eventRepo.ListByUserSince(ctx, nil, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load progress events: %w", err)
	}

	type bucket struct {
		xp, lessons, timeSpent, accuracySum int
	}
	buckets := map[string]*bucket{}
	for _, e := range events {
		day := e.CreatedAt.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.xp += e.XPGained
		b.lessons++
		b.timeSpent += e.TimeSpent
		b.accuracySum += e.Accuracy
	}

	// Every day in the window gets a row, empty days included, so
	// clients can chart without filling gaps themselves.
	stats := make([]DailyStat, 0, days)
	for d := 0; d < days; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		stat := DailyStat{Date: day}
		if b, ok := buckets[day]; ok {
			stat.XPGained = b.xp
			stat.Lessons = b.lessons
			stat.TimeSpent = b.timeSpent
			stat.AverageAccuracy = float64(b.accuracySum) / float64(b.lessons)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (ps *progressService) loadUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := ps.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
