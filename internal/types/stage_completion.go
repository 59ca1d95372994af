package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StageCompletion is the remote, authoritative completion set for a stage:
// the ids of the cards already covered with the group. The local cache tier
// in internal/cache overrides this value on load (cache-wins reconciliation).
type StageCompletion struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StageID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"stage_id"`
	Stage     *Stage         `gorm:"constraint:OnDelete:CASCADE;foreignKey:StageID;references:ID" json:"stage,omitempty"`
	CardIDs   datatypes.JSON `gorm:"type:jsonb;column:card_ids" json:"card_ids"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (StageCompletion) TableName() string { return "stage_completion" }

func (s *StageCompletion) CardIDList() []int { return IntsFromJSON(s.CardIDs) }
