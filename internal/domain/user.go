package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	Name          string    `gorm:"column:name" json:"name"`
	Avatar        string    `gorm:"column:avatar" json:"avatar"`
	Role          string    `gorm:"not null;default:'user';column:role" json:"role"`
	EmailVerified bool      `gorm:"not null;default:false;column:email_verified" json:"email_verified"`

	XP             int        `gorm:"not null;default:0;column:xp" json:"xp"`
	Level          Level      `gorm:"type:varchar(2);not null;default:'A1';column:level" json:"level"`
	Streak         int        `gorm:"not null;default:0;column:streak" json:"streak"`
	LastActiveDate *time.Time `gorm:"column:last_active_date" json:"last_active_date,omitempty"`

	CompletedLessons []CompletedLesson `gorm:"foreignKey:UserID" json:"completed_lessons,omitempty"`
	Achievements     []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// PublicUser is the sanitized shape returned by the API.
type PublicUser struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Avatar         string     `json:"avatar"`
	Role           string     `json:"role"`
	XP             int        `json:"xp"`
	Level          Level      `json:"level"`
	Streak         int        `json:"streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Avatar:         u.Avatar,
		Role:           u.Role,
		XP:             u.XP,
		Level:          u.Level,
		Streak:         u.Streak,
		LastActiveDate: u.LastActiveDate,
		CreatedAt:      u.CreatedAt,
	}
}
