package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

type seedCard struct {
	ID         int      `yaml:"id"`
	Level      int      `yaml:"level"`
	Category   string   `yaml:"category"`
	PromptText string   `yaml:"prompt_text"`
	GoalText   string   `yaml:"goal_text"`
	Tip        string   `yaml:"tip"`
	ThemeTags  []string `yaml:"theme_tags"`
	FilterTags []string `yaml:"filter_tags"`
}

type seedFile struct {
	Cards []seedCard `yaml:"cards"`
}

// SeedCatalog imports catalog cards from a YAML file into an empty card
// table. In production the catalog collaborator owns these rows; the seed
// exists so local development has something to filter and select.
func SeedCatalog(ctx context.Context, db *gorm.DB, log *logger.Logger, cardRepo repos.ContentCardRepo, path string) error {
	count, err := cardRepo.Count(ctx, db)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if count > 0 {
		log.Debug("Catalog already populated, skipping seed", "count", count)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog seed: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse catalog seed: %w", err)
	}

	rows := make([]*types.ContentCard, 0, len(file.Cards))
	for _, c := range file.Cards {
		row := &types.ContentCard{
			ID:         c.ID,
			Level:      c.Level,
			Category:   c.Category,
			PromptText: c.PromptText,
			GoalText:   c.GoalText,
			ThemeTags:  types.JSONStrings(c.ThemeTags),
			FilterTags: types.JSONStrings(c.FilterTags),
		}
		if c.Tip != "" {
			tip := c.Tip
			row.Tip = &tip
		}
		rows = append(rows, row)
	}

	if err := cardRepo.Seed(ctx, db, rows); err != nil {
		return fmt.Errorf("insert catalog seed: %w", err)
	}
	log.Info("Catalog seeded", "cards", len(rows), "path", path)
	return nil
}
