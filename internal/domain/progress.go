package domain

import (
	"time"

	"github.com/google/uuid"
)

type CompletedLesson struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completed_user_lesson,priority:1" json:"user_id"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completed_user_lesson,priority:2" json:"lesson_id"`
	Score       int       `gorm:"not null;column:score" json:"score"`
	XPEarned    int       `gorm:"not null;column:xp_earned" json:"xp_earned"`
	TimeSpent   int       `gorm:"not null;default:0;column:time_spent" json:"time_spent"`
	CompletedAt time.Time `gorm:"not null;default:now();column:completed_at" json:"completed_at"`

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (CompletedLesson) TableName() string { return "completed_lesson" }

// ProgressEvent is an append-only ledger row written on every lesson
// completion; the daily stats and summary endpoints aggregate over it.
type ProgressEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	LessonID  *uuid.UUID `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	XPGained  int        `gorm:"not null;default:0;column:xp_gained" json:"xp_gained"`
	Accuracy  int        `gorm:"not null;default:0;column:accuracy" json:"accuracy"`
	TimeSpent int        `gorm:"not null;default:0;column:time_spent" json:"time_spent"`
	CreatedAt time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (ProgressEvent) TableName() string { return "progress_event" }
