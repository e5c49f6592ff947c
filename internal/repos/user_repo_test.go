package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := &types.User{
		ID:       uuid.New(),
		Email:    "userrepo@example.com",
		Password: "pw",
		Name:     "A",
		Role:     types.RoleUser,
		Level:    types.LevelA1,
	}
	if err := repo.Create(ctx, tx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != u.Email {
		t.Fatalf("GetByID: unexpected user: %+v", got)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("GetByEmail: unexpected user: %+v", byEmail)
	}

	exists, err := repo.EmailExists(ctx, tx, u.Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatal("EmailExists: expected true")
	}
	exists, err = repo.EmailExists(ctx, tx, "nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatal("EmailExists (missing): expected false")
	}

	if err := repo.UpdateProgression(ctx, tx, u.ID, 150, types.LevelA2); err != nil {
		t.Fatalf("UpdateProgression: %v", err)
	}
	now := time.Now()
	if err := repo.UpdateActivity(ctx, tx, u.ID, 3, now); err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}

	got, err = repo.GetByID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByID after updates: %v", err)
	}
	if got.XP != 150 || got.Level != types.LevelA2 || got.Streak != 3 {
		t.Fatalf("updates not persisted: xp=%d level=%s streak=%d", got.XP, got.Level, got.Streak)
	}
	if got.LastActiveDate == nil {
		t.Fatal("LastActiveDate not persisted")
	}
}

func TestUserRepoTopByXP(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	for i, xp := range []int{50, 200, 120} {
		u := testutil.SeedUser(t, ctx, tx, uuid.New().String()+"@example.com")
		if err := repo.UpdateProgression(ctx, tx, u.ID, xp, types.LevelA1); err != nil {
			t.Fatalf("UpdateProgression %d: %v", i, err)
		}
	}

	top, err := repo.TopByXP(ctx, tx, 2)
	if err != nil {
		t.Fatalf("TopByXP: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopByXP: expected 2 users, got %d", len(top))
	}
	if top[0].XP < top[1].XP {
		t.Fatalf("TopByXP: not ordered by xp desc: %d then %d", top[0].XP, top[1].XP)
	}
}
