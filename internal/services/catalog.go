package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

type CatalogService interface {
	ListCards(ctx context.Context, tx *gorm.DB) ([]*types.ContentCard, error)
}

type catalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	cardRepo repos.ContentCardRepo
}

func NewCatalogService(db *gorm.DB, baseLog *logger.Logger, cardRepo repos.ContentCardRepo) CatalogService {
	return &catalogService{
		db:       db,
		log:      baseLog.With("service", "CatalogService"),
		cardRepo: cardRepo,
	}
}

func (s *catalogService) ListCards(ctx context.Context, tx *gorm.DB) ([]*types.ContentCard, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	cards, err := s.cardRepo.List(ctx, transaction)
	if err != nil {
		s.log.Warn("ListCards: catalog load failed", "error", err)
		return nil, err
	}
	return cards, nil
}
