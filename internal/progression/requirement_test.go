package progression

import (
	"testing"

	types "github.com/movalearn/movalearn-backend/internal/domain"
)

func TestRequirementMet(t *testing.T) {
	tests := []struct {
		name string
		req  Requirement
		s    Stats
		want bool
	}{
		{
			name: "lessons below",
			req:  Requirement{Type: RequirementLessonsCompleted, Value: 10},
			s:    Stats{LessonsCompleted: 9},
			want: false,
		},
		{
			name: "lessons at",
			req:  Requirement{Type: RequirementLessonsCompleted, Value: 10},
			s:    Stats{LessonsCompleted: 10},
			want: true,
		},
		{
			name: "streak above",
			req:  Requirement{Type: RequirementStreakDays, Value: 7},
			s:    Stats{Streak: 12},
			want: true,
		},
		{
			name: "level exact",
			req:  Requirement{Type: RequirementReachesLevel, Level: types.LevelB1},
			s:    Stats{Level: types.LevelB1},
			want: true,
		},
		{
			name: "level past target still satisfies",
			req:  Requirement{Type: RequirementReachesLevel, Level: types.LevelB1},
			s:    Stats{Level: types.LevelC1},
			want: true,
		},
		{
			name: "level below target",
			req:  Requirement{Type: RequirementReachesLevel, Level: types.LevelB2},
			s:    Stats{Level: types.LevelB1},
			want: false,
		},
		{
			name: "unknown type never matches",
			req:  Requirement{Type: "perfect_scores", Value: 1},
			s:    Stats{LessonsCompleted: 100, Streak: 100, Level: types.LevelC2},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Met(tt.s); got != tt.want {
				t.Fatalf("Met(%+v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestRequirementProgress(t *testing.T) {
	req := Requirement{Type: RequirementLessonsCompleted, Value: 10}
	if got := req.Current(Stats{LessonsCompleted: 25}); got != 10 {
		t.Fatalf("Current capped: got %d, want 10", got)
	}
	if got := req.Current(Stats{LessonsCompleted: 4}); got != 4 {
		t.Fatalf("Current: got %d, want 4", got)
	}
	if got := req.Target(); got != 10 {
		t.Fatalf("Target: got %d, want 10", got)
	}

	lvl := Requirement{Type: RequirementReachesLevel, Level: types.LevelB2}
	if got := lvl.Target(); got != types.LevelB2.Number() {
		t.Fatalf("level Target: got %d, want %d", got, types.LevelB2.Number())
	}
	if got := lvl.Current(Stats{Level: types.LevelA2}); got != types.LevelA2.Number() {
		t.Fatalf("level Current: got %d, want %d", got, types.LevelA2.Number())
	}
}

func TestParseRequirement(t *testing.T) {
	r, err := ParseRequirement([]byte(`{"type":"streak_days","value":7}`))
	if err != nil {
		t.Fatalf("ParseRequirement: %v", err)
	}
	if r.Type != RequirementStreakDays || r.Value != 7 {
		t.Fatalf("unexpected requirement: %+v", r)
	}

	if _, err := ParseRequirement([]byte(`{"type":"nope"}`)); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := ParseRequirement([]byte(`{`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	lvl, err := ParseRequirement([]byte(`{"type":"reaches_level","level":"B1"}`))
	if err != nil {
		t.Fatalf("ParseRequirement level: %v", err)
	}
	if lvl.Level != types.LevelB1 {
		t.Fatalf("unexpected level: %+v", lvl)
	}
}
