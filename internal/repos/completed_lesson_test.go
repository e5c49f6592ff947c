package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
)

func TestCompletedLessonRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCompletedLessonRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "completions@example.com")
	lesson := testutil.SeedLesson(t, ctx, tx, "Lesson one", 1)

	got, err := repo.GetByUserAndLesson(ctx, tx, user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("GetByUserAndLesson (empty): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByUserAndLesson (empty): expected nil, got %+v", got)
	}

	completion := &types.CompletedLesson{
		ID:       uuid.New(),
		UserID:   user.ID,
		LessonID: lesson.ID,
		Score:    80,
		XPEarned: 10,
	}
	if err := repo.Create(ctx, tx, completion); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = repo.GetByUserAndLesson(ctx, tx, user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("GetByUserAndLesson: %v", err)
	}
	if got == nil || got.Score != 80 {
		t.Fatalf("GetByUserAndLesson: unexpected completion: %+v", got)
	}

	if err := repo.UpdateResult(ctx, tx, completion.ID, map[string]any{"score": 95, "xp_earned": 15}); err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}
	got, err = repo.GetByUserAndLesson(ctx, tx, user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("GetByUserAndLesson after update: %v", err)
	}
	if got.Score != 95 || got.XPEarned != 15 {
		t.Fatalf("UpdateResult not persisted: %+v", got)
	}

	count, err := repo.CountByUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByUser: expected 1, got %d", count)
	}

	list, err := repo.ListByUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].Lesson == nil || list[0].Lesson.Title != "Lesson one" {
		t.Fatalf("ListByUser: unexpected result: %+v", list)
	}
}
