package domain

import "fmt"

// Level is a CEFR proficiency level. Ordering matters: progression only
// ever moves forward through the sequence A1..C2.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

var levelOrder = map[Level]int{
	LevelA1: 1,
	LevelA2: 2,
	LevelB1: 3,
	LevelB2: 4,
	LevelC1: 5,
	LevelC2: 6,
}

// Number returns the 1-based position of the level in the CEFR sequence,
// or 0 for an unknown level.
func (l Level) Number() int {
	return levelOrder[l]
}

func (l Level) Valid() bool {
	_, ok := levelOrder[l]
	return ok
}

// AtLeast reports whether l is the same as or past target in the sequence.
// Unknown levels are never at least anything.
func (l Level) AtLeast(target Level) bool {
	ln, tn := l.Number(), target.Number()
	return ln != 0 && tn != 0 && ln >= tn
}

func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}
