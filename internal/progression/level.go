package progression

import (
	types "github.com/movalearn/movalearn-backend/internal/domain"
)

// levelStep is one rung of the promotion ladder: holding From with at
// least MinXP total XP promotes to To.
type levelStep struct {
	From  types.Level
	MinXP int
	To    types.Level
}

// levelLadder is evaluated against the pre-grant level, so a single XP
// grant can climb at most one rung no matter how large the delta is.
// B2 and above have no rung; they only change via admin override.
var levelLadder = []levelStep{
	{From: types.LevelA1, MinXP: 101, To: types.LevelA2},
	{From: types.LevelA2, MinXP: 301, To: types.LevelB1},
	{From: types.LevelB1, MinXP: 601, To: types.LevelB2},
}

// NextLevel resolves the level after a grant that brought the user's
// total XP to newXP while they held current.
func NextLevel(current types.Level, newXP int) types.Level {
	for _, step := range levelLadder {
		if step.From == current && newXP >= step.MinXP {
			return step.To
		}
	}
	return current
}
