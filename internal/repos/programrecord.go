package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// ProgramRecordRepo stores the per-day program rows. DeleteByStageID clears a
// stage's program wholesale; rebuilt rows go in one CreateOne per day so a
// single bad day cannot sink the rest. There is no update path.
type ProgramRecordRepo interface {
	CreateOne(ctx context.Context, tx *gorm.DB, row *types.ProgramRecord) error
	GetByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) ([]*types.ProgramRecord, error)
	DeleteByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) error
}

type programRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgramRecordRepo(db *gorm.DB, baseLog *logger.Logger) ProgramRecordRepo {
	return &programRecordRepo{db: db, log: baseLog.With("repo", "ProgramRecordRepo")}
}

func (r *programRecordRepo) CreateOne(ctx context.Context, tx *gorm.DB, row *types.ProgramRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *programRecordRepo) GetByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) ([]*types.ProgramRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgramRecord
	if stageID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *programRecordRepo) DeleteByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if stageID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Delete(&types.ProgramRecord{}).Error; err != nil {
		return err
	}
	return nil
}
