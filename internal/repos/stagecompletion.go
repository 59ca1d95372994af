package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// StageCompletionRepo is the remote, authoritative completion store. The
// completion service treats writes here as best-effort: a failure surfaces as
// a warning, never as a rollback of the local tier.
type StageCompletionRepo interface {
	GetByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) (*types.StageCompletion, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.StageCompletion) error
}

type stageCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageCompletionRepo(db *gorm.DB, baseLog *logger.Logger) StageCompletionRepo {
	return &stageCompletionRepo{db: db, log: baseLog.With("repo", "StageCompletionRepo")}
}

func (r *stageCompletionRepo) GetByStageID(ctx context.Context, tx *gorm.DB, stageID uuid.UUID) (*types.StageCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if stageID == uuid.Nil {
		return nil, nil
	}

	var result types.StageCompletion
	err := transaction.WithContext(ctx).
		Where("stage_id = ?", stageID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *stageCompletionRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.StageCompletion) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.StageID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	// Upsert by unique stage_id
	if err := transaction.WithContext(ctx).
		Where("stage_id = ?", row.StageID).
		Assign(map[string]interface{}{"card_ids": row.CardIDs}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
