package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgramRecord is one day's persisted copy of a stage's program. Every
// record of a stage carries identical Level, ThemeTitles and CardIDs; only
// Date varies. Records are created and deleted in whole batches, never
// updated, and their identities are not stable across saves.
type ProgramRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StageID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"stage_id"`
	Stage          *Stage         `gorm:"constraint:OnDelete:CASCADE;foreignKey:StageID;references:ID" json:"stage,omitempty"`
	Date           time.Time      `gorm:"column:date;not null" json:"date"`
	DerivedTitle   string         `gorm:"column:derived_title;not null" json:"derived_title"`
	DerivedSummary string         `gorm:"column:derived_summary" json:"derived_summary"`
	FullText       string         `gorm:"column:full_text;type:text" json:"full_text"`
	Level          int            `gorm:"column:level;not null" json:"level"`
	ThemeTitles    datatypes.JSON `gorm:"type:jsonb;column:theme_titles" json:"theme_titles"`
	CardIDs        datatypes.JSON `gorm:"type:jsonb;column:card_ids" json:"card_ids"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ProgramRecord) TableName() string { return "program_record" }

func (r *ProgramRecord) ThemeTitleList() []string { return StringsFromJSON(r.ThemeTitles) }
func (r *ProgramRecord) CardIDList() []int        { return IntsFromJSON(r.CardIDs) }
