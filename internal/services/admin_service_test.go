package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/movalearn/movalearn-backend/internal/repos"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
)

// recordingLeaderboard captures published scores for assertions.
type recordingLeaderboard struct {
	LeaderboardService
	userID uuid.UUID
	xp     int
	calls  int
}

func (rl *recordingLeaderboard) RecordScore(ctx context.Context, userID uuid.UUID, xp int) error {
	rl.userID = userID
	rl.xp = xp
	rl.calls++
	return nil
}

func TestAdminUpdateKeepsOwnEmail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	svc := NewAdminService(log, userRepo, nil)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "keeper@example.com")
	other := testutil.SeedUser(t, ctx, tx, "taken@example.com")

	// Resending the user's current email is not a conflict.
	email := "keeper@example.com"
	name := "Renamed Keeper"
	updated, err := svc.UpdateUser(ctx, user.ID, AdminUserUpdate{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser with own email: %v", err)
	}
	if updated.Email != "keeper@example.com" || updated.Name != "Renamed Keeper" {
		t.Fatalf("unexpected user after update: %q %q", updated.Email, updated.Name)
	}

	// Another user's email still is.
	theirs := other.Email
	if _, err := svc.UpdateUser(ctx, user.ID, AdminUserUpdate{Email: &theirs}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for another user's email, got %v", err)
	}
}

func TestAdminXPOverridePublishesScore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	board := &recordingLeaderboard{}
	svc := NewAdminService(log, userRepo, board)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "override@example.com")

	xp := 500
	updated, err := svc.UpdateUser(ctx, user.ID, AdminUserUpdate{XP: &xp})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.XP != 500 {
		t.Fatalf("expected xp 500, got %d", updated.XP)
	}
	if board.calls != 1 || board.userID != user.ID || board.xp != 500 {
		t.Fatalf("expected one published score of 500 for %s, got calls=%d user=%s xp=%d",
			user.ID, board.calls, board.userID, board.xp)
	}

	// A role-only change leaves the leaderboard alone.
	role := "admin"
	if _, err := svc.UpdateUser(ctx, user.ID, AdminUserUpdate{Role: &role}); err != nil {
		t.Fatalf("UpdateUser (role): %v", err)
	}
	if board.calls != 1 {
		t.Fatalf("role change should not publish a score, calls=%d", board.calls)
	}
}
