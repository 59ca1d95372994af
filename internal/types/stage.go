package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stage is one multi-day training stage. Title carries a derived suffix
// (" - <level> - <themes>") appended on program save; the text before the
// first " - " is the base title and is the only part an instructor edits.
type Stage struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Type             string         `gorm:"column:type" json:"type"`
	ParticipantCount int            `gorm:"column:participant_count;not null;default:0" json:"participant_count"`
	StartDate        time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate          time.Time      `gorm:"column:end_date;not null" json:"end_date"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Stage) TableName() string { return "stage" }
