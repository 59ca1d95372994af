package types

import (
	"time"

	"gorm.io/datatypes"
)

// ContentCard is a catalog activity card. The catalog collaborator owns these
// rows; this service only ever reads them. ID is the catalog's stable key,
// Level is one-indexed (1..3), Category is the free-text pillar label as the
// content editors typed it.
type ContentCard struct {
	ID         int            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Level      int            `gorm:"column:level;not null" json:"level"`
	Category   string         `gorm:"column:category;not null" json:"category"`
	PromptText string         `gorm:"column:prompt_text;not null" json:"prompt_text"`
	GoalText   string         `gorm:"column:goal_text;not null" json:"goal_text"`
	Tip        *string        `gorm:"column:tip" json:"tip,omitempty"`
	ThemeTags  datatypes.JSON `gorm:"type:jsonb;column:theme_tags" json:"theme_tags"`
	FilterTags datatypes.JSON `gorm:"type:jsonb;column:filter_tags" json:"filter_tags"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContentCard) TableName() string { return "content_card" }

func (c *ContentCard) ThemeTagList() []string  { return StringsFromJSON(c.ThemeTags) }
func (c *ContentCard) FilterTagList() []string { return StringsFromJSON(c.FilterTags) }
