package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// ContentCardRepo reads the catalog. The catalog collaborator owns the rows;
// nothing here writes them (Seed exists only to populate empty local-dev
// databases).
type ContentCardRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.ContentCard, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.ContentCard, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Seed(ctx context.Context, tx *gorm.DB, rows []*types.ContentCard) error
}

type contentCardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentCardRepo(db *gorm.DB, baseLog *logger.Logger) ContentCardRepo {
	return &contentCardRepo{db: db, log: baseLog.With("repo", "ContentCardRepo")}
}

func (r *contentCardRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ContentCard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentCard
	if err := transaction.WithContext(ctx).
		Order("prompt_text ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentCardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.ContentCard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentCard
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentCardRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContentCard{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contentCardRepo) Seed(ctx context.Context, tx *gorm.DB, rows []*types.ContentCard) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	return nil
}
