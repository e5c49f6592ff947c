package progression

import "time"

// streakMilestones are the celebrated streak lengths surfaced by the
// progress API. Past the last one the next milestone is current+100.
var streakMilestones = []int{3, 7, 14, 30, 60, 100, 365}

// truncateToDay drops the time-of-day component in the timestamp's own
// location. Day arithmetic is done on these midnight-anchored values.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b (b after a is
// positive).
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// NextStreak computes the streak value after an activity signal at now.
//
//	nil lastActive         -> 1 (first ever activity)
//	same calendar day      -> unchanged
//	previous calendar day  -> +1
//	gap of 2+ days         -> 1 (streak broken)
//
// A lastActive in the future (clock skew, out-of-order calls) is treated
// like "already active today" and leaves the streak unchanged.
func NextStreak(lastActive *time.Time, streak int, now time.Time) int {
	if lastActive == nil {
		return 1
	}
	switch diff := daysBetween(*lastActive, now); {
	case diff == 1:
		return streak + 1
	case diff > 1:
		return 1
	default:
		return streak
	}
}

// ActiveToday reports whether lastActive falls on the same calendar day
// as now.
func ActiveToday(lastActive *time.Time, now time.Time) bool {
	if lastActive == nil {
		return false
	}
	return daysBetween(*lastActive, now) == 0
}

// NextMilestone returns the next streak milestone strictly above current.
func NextMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	return current + 100
}
