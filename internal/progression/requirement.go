package progression

import (
	"encoding/json"
	"fmt"

	types "github.com/movalearn/movalearn-backend/internal/domain"
)

const (
	RequirementLessonsCompleted = "lessons_completed"
	RequirementStreakDays       = "streak_days"
	RequirementReachesLevel     = "reaches_level"
)

// Requirement is the machine-readable unlock rule stored on an
// achievement catalog row.
type Requirement struct {
	Type string `json:"type"`
	// Value is the lesson count or streak length for the counting types,
	// ignored for reaches_level.
	Value int `json:"value,omitempty"`
	// Level is the target level for reaches_level.
	Level types.Level `json:"level,omitempty"`
}

// Stats is the user snapshot a requirement is evaluated against.
type Stats struct {
	LessonsCompleted int
	Streak           int
	Level            types.Level
}

// Met reports whether the stats satisfy the requirement. Level
// requirements use threshold semantics: a user who reached B2 without
// pausing at B1 still satisfies a reaches_level B1 rule.
func (r Requirement) Met(s Stats) bool {
	switch r.Type {
	case RequirementLessonsCompleted:
		return s.LessonsCompleted >= r.Value
	case RequirementStreakDays:
		return s.Streak >= r.Value
	case RequirementReachesLevel:
		return s.Level.AtLeast(r.Level)
	default:
		return false
	}
}

// Target returns the numeric goal used by the progress endpoint.
func (r Requirement) Target() int {
	if r.Type == RequirementReachesLevel {
		return r.Level.Number()
	}
	return r.Value
}

// Current returns how far the stats are toward the goal, capped at it.
func (r Requirement) Current(s Stats) int {
	var cur int
	switch r.Type {
	case RequirementLessonsCompleted:
		cur = s.LessonsCompleted
	case RequirementStreakDays:
		cur = s.Streak
	case RequirementReachesLevel:
		cur = s.Level.Number()
	}
	if target := r.Target(); cur > target {
		return target
	}
	return cur
}

// ParseRequirement decodes a catalog requirement column.
func ParseRequirement(raw []byte) (Requirement, error) {
	var r Requirement
	if err := json.Unmarshal(raw, &r); err != nil {
		return Requirement{}, fmt.Errorf("decode requirement: %w", err)
	}
	switch r.Type {
	case RequirementLessonsCompleted, RequirementStreakDays, RequirementReachesLevel:
		return r, nil
	default:
		return Requirement{}, fmt.Errorf("unknown requirement type %q", r.Type)
	}
}
