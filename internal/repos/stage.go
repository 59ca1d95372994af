package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// ErrStageNotFound is returned when a stage id resolves to no row.
var ErrStageNotFound = errors.New("stage not found")

type StageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Stage) (*types.Stage, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Stage, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Stage, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Stage) error
}

type stageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageRepo(db *gorm.DB, baseLog *logger.Logger) StageRepo {
	return &stageRepo{db: db, log: baseLog.With("repo", "StageRepo")}
}

func (r *stageRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Stage) (*types.Stage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *stageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Stage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Stage
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *stageRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Stage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Stage
	if err := transaction.WithContext(ctx).
		Order("start_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stageRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Stage) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}
