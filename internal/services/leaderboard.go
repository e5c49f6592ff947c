package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

const leaderboardKey = "leaderboard:xp"

// Entry is one leaderboard row, ranked from 1.
type Entry struct {
	Rank   int         `json:"rank"`
	UserID uuid.UUID   `json:"user_id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
	Level  types.Level `json:"level"`
	XP     int         `json:"xp"`
	Streak int         `json:"streak"`
}

// LeaderboardService keeps a redis sorted set of user XP scores and
// serves the top-N ranking from it. When redis is absent or failing it
// falls back to ordering the user table directly.
type LeaderboardService interface {
	RecordScore(ctx context.Context, userID uuid.UUID, xp int) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

type leaderboardService struct {
	log      *logger.Logger
	rdb      *redis.Client
	userRepo repos.UserRepo
}

func NewLeaderboardService(log *logger.Logger, rdb *redis.Client, userRepo repos.UserRepo) LeaderboardService {
	return &leaderboardService{
		log:      log.With("service", "LeaderboardService"),
		rdb:      rdb,
		userRepo: userRepo,
	}
}

func (ls *leaderboardService) RecordScore(ctx context.Context, userID uuid.UUID, xp int) error {
	if ls.rdb == nil {
		return nil
	}
	return ls.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(xp),
		Member: userID.String(),
	}).Err()
}

func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if ls.rdb != nil {
		entries, err := ls.topFromRedis(ctx, limit)
		if err == nil {
			return entries, nil
		}
		ls.log.Warn("Leaderboard read from redis failed, falling back to database", "error", err)
	}
	return ls.topFromDB(ctx, limit)
}

func (ls *leaderboardService) topFromRedis(ctx context.Context, limit int) ([]Entry, error) {
	members, err := ls.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		// Empty set usually means the cache was never warmed.
		return ls.topFromDB(ctx, limit)
	}

	entries := make([]Entry, 0, len(members))
	for i, m := range members {
		id, err := uuid.Parse(m.Member.(string))
		if err != nil {
			ls.log.Warn("Skipping malformed leaderboard member", "member", m.Member)
			continue
		}
		user, err := ls.userRepo.GetByID(ctx, nil, id)
		if err != nil {
			// The user may have been deleted since the score was recorded.
			ls.log.Warn("Skipping leaderboard member without user row", "user_id", id)
			continue
		}
		entries = append(entries, Entry{
			Rank:   i + 1,
			UserID: user.ID,
			Name:   user.Name,
			Avatar: user.Avatar,
			Level:  user.Level,
			XP:     int(m.Score),
			Streak: user.Streak,
		})
	}
	return entries, nil
}

func (ls *leaderboardService) topFromDB(ctx context.Context, limit int) ([]Entry, error) {
	users, err := ls.userRepo.TopByXP(ctx, nil, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(users))
	for i, user := range users {
		entries = append(entries, Entry{
			Rank:   i + 1,
			UserID: user.ID,
			Name:   user.Name,
			Avatar: user.Avatar,
			Level:  user.Level,
			XP:     user.XP,
			Streak: user.Streak,
		})
	}
	return entries, nil
}
