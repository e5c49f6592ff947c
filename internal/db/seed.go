package db

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/env"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Achievements []seedAchievement `yaml:"achievements"`
	Lessons      []seedLesson      `yaml:"lessons"`
}

type seedAchievement struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Requirement struct {
		Type  string `yaml:"type"`
		Value int    `yaml:"value"`
		Level string `yaml:"level"`
	} `yaml:"requirement"`
	XPReward int `yaml:"xp_reward"`
}

type seedLesson struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	Level       string         `yaml:"level"`
	Order       int            `yaml:"order"`
	XPReward    int            `yaml:"xp_reward"`
	Exercises   []seedExercise `yaml:"exercises"`
}

type seedExercise struct {
	Type          string   `yaml:"type"`
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Order         int      `yaml:"order"`
	XPReward      int      `yaml:"xp_reward"`
}

// Seed loads the achievement catalog and starter lessons. Existing rows
// are left alone, so it is safe to run on every boot. SEED_FILE overrides
// the embedded catalog.
func (s *Service) Seed() error {
	raw := defaultSeed
	if path := env.Get("SEED_FILE", "", s.log); path != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed file %s: %w", path, err)
		}
		raw = fileRaw
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := seedAchievements(tx, sf.Achievements); err != nil {
			return err
		}
		if err := seedLessons(tx, sf.Lessons); err != nil {
			return err
		}
		s.log.Info("Seed complete", "achievements", len(sf.Achievements), "lessons", len(sf.Lessons))
		return nil
	})
}

func seedAchievements(tx *gorm.DB, rows []seedAchievement) error {
	for _, row := range rows {
		req := map[string]any{"type": row.Requirement.Type}
		if row.Requirement.Value > 0 {
			req["value"] = row.Requirement.Value
		}
		if row.Requirement.Level != "" {
			req["level"] = row.Requirement.Level
		}
		reqJSON, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal requirement for %q: %w", row.Name, err)
		}
		a := types.Achievement{
			Name:        row.Name,
			Description: row.Description,
			Icon:        row.Icon,
			Requirement: datatypes.JSON(reqJSON),
			XPReward:    row.XPReward,
		}
		if err := tx.Where(types.Achievement{Name: row.Name}).FirstOrCreate(&a).Error; err != nil {
			return fmt.Errorf("seed achievement %q: %w", row.Name, err)
		}
	}
	return nil
}

func seedLessons(tx *gorm.DB, rows []seedLesson) error {
	for _, row := range rows {
		lesson := types.Lesson{
			Title:       row.Title,
			Description: row.Description,
			Category:    row.Category,
			Level:       types.Level(row.Level),
			Order:       row.Order,
			XPReward:    row.XPReward,
			IsActive:    true,
		}
		if err := tx.Where(types.Lesson{Title: row.Title}).FirstOrCreate(&lesson).Error; err != nil {
			return fmt.Errorf("seed lesson %q: %w", row.Title, err)
		}
		for _, ex := range row.Exercises {
			var options datatypes.JSON
			if len(ex.Options) > 0 {
				raw, err := json.Marshal(ex.Options)
				if err != nil {
					return fmt.Errorf("marshal options for %q: %w", row.Title, err)
				}
				options = datatypes.JSON(raw)
			}
			e := types.Exercise{
				LessonID:      lesson.ID,
				Type:          ex.Type,
				Question:      ex.Question,
				Options:       options,
				CorrectAnswer: ex.CorrectAnswer,
				Order:         ex.Order,
				XPReward:      ex.XPReward,
			}
			if err := tx.Where(types.Exercise{LessonID: lesson.ID, Order: ex.Order}).FirstOrCreate(&e).Error; err != nil {
				return fmt.Errorf("seed exercise %d of %q: %w", ex.Order, row.Title, err)
			}
		}
	}
	return nil
}
