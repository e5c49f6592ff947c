package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Achievement is an immutable catalog row. Requirement holds the machine
// readable unlock rule as JSON ({"type": ..., "value": ...}); the evaluator
// interprets it rather than hardcoding thresholds.
type Achievement struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string         `gorm:"not null;column:description" json:"description"`
	Icon        string         `gorm:"column:icon" json:"icon"`
	Requirement datatypes.JSON `gorm:"not null;column:requirement" json:"requirement"`
	XPReward    int            `gorm:"not null;default:0;column:xp_reward" json:"xp_reward"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Achievement) TableName() string { return "achievement" }

// UserAchievement records an unlock. The composite unique index is what
// guarantees at-most-one unlock per (user, achievement) pair.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"not null;default:now();column:unlocked_at" json:"unlocked_at"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string { return "user_achievement" }
