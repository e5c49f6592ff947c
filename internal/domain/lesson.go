package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CategoryGreetings = "GREETINGS"
	CategoryFood      = "FOOD"
	CategoryTravel    = "TRAVEL"
	CategoryFamily    = "FAMILY"
	CategoryNumbers   = "NUMBERS"
	CategoryGrammar   = "GRAMMAR"
)

const (
	ExerciseMultipleChoice = "MULTIPLE_CHOICE"
	ExerciseTextInput      = "TEXT_INPUT"
	ExerciseTranslation    = "TRANSLATION"
)

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Category    string    `gorm:"not null;index;column:category" json:"category"`
	Level       Level     `gorm:"type:varchar(2);not null;default:'A1';column:level" json:"level"`
	Order       int       `gorm:"not null;default:0;column:sort_order" json:"order"`
	XPReward    int       `gorm:"not null;default:10;column:xp_reward" json:"xp_reward"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	Exercises []Exercise `gorm:"foreignKey:LessonID" json:"exercises,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

type Exercise struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_exercise_lesson_order,priority:1" json:"lesson_id"`
	Type     string    `gorm:"not null;column:type" json:"type"`
	Question string    `gorm:"not null;column:question" json:"question"`
	// Options holds the choice list for MULTIPLE_CHOICE exercises as a JSON
	// array; empty for free-input types.
	Options       datatypes.JSON `gorm:"column:options" json:"options,omitempty"`
	CorrectAnswer string         `gorm:"not null;column:correct_answer" json:"correct_answer"`
	Order         int            `gorm:"not null;column:sort_order;uniqueIndex:idx_exercise_lesson_order,priority:2" json:"order"`
	XPReward      int            `gorm:"not null;default:1;column:xp_reward" json:"xp_reward"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Exercise) TableName() string { return "exercise" }
