package progression

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	now := day(2026, time.March, 10, 14)

	tests := []struct {
		name       string
		lastActive *time.Time
		streak     int
		want       int
	}{
		{name: "first ever activity", lastActive: nil, streak: 0, want: 1},
		{name: "same day keeps streak", lastActive: ptr(day(2026, time.March, 10, 8)), streak: 4, want: 4},
		{name: "consecutive day increments", lastActive: ptr(day(2026, time.March, 9, 23)), streak: 4, want: 5},
		{name: "two day gap resets to one", lastActive: ptr(day(2026, time.March, 8, 8)), streak: 12, want: 1},
		{name: "long gap resets to one", lastActive: ptr(day(2026, time.January, 1, 8)), streak: 300, want: 1},
		{name: "future last active keeps streak", lastActive: ptr(day(2026, time.March, 11, 8)), streak: 4, want: 4},
		{name: "yesterday late night still counts as one day", lastActive: ptr(day(2026, time.March, 9, 0)), streak: 1, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.lastActive, tt.streak, now)
			if got != tt.want {
				t.Fatalf("NextStreak(%v, %d) = %d, want %d", tt.lastActive, tt.streak, got, tt.want)
			}
		})
	}
}

func TestNextStreakContinuity(t *testing.T) {
	// Activity on N consecutive days yields a streak of N.
	var last *time.Time
	streak := 0
	start := day(2026, time.May, 1, 9)
	for i := 0; i < 40; i++ {
		now := start.AddDate(0, 0, i)
		streak = NextStreak(last, streak, now)
		last = &now
		if streak != i+1 {
			t.Fatalf("day %d: streak = %d, want %d", i, streak, i+1)
		}
	}
}

func TestNextStreakSameDayIdempotent(t *testing.T) {
	morning := day(2026, time.June, 2, 7)
	evening := day(2026, time.June, 2, 22)

	streak := NextStreak(nil, 0, morning)
	if streak != 1 {
		t.Fatalf("first activity: streak = %d, want 1", streak)
	}
	streak = NextStreak(&morning, streak, evening)
	if streak != 1 {
		t.Fatalf("second activity same day: streak = %d, want 1", streak)
	}
}

func TestActiveToday(t *testing.T) {
	now := day(2026, time.March, 10, 14)
	if ActiveToday(nil, now) {
		t.Fatal("nil lastActive should not be active today")
	}
	if !ActiveToday(ptr(day(2026, time.March, 10, 1)), now) {
		t.Fatal("same day should be active today")
	}
	if ActiveToday(ptr(day(2026, time.March, 9, 23)), now) {
		t.Fatal("yesterday should not be active today")
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 3},
		{3, 7},
		{6, 7},
		{7, 14},
		{29, 30},
		{100, 365},
		{365, 465},
		{500, 600},
	}
	for _, tt := range tests {
		if got := NextMilestone(tt.current); got != tt.want {
			t.Fatalf("NextMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
