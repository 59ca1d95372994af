package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

type StageService interface {
	CreateStage(ctx context.Context, title, stageType string, participantCount int, startDate, endDate time.Time) (*types.Stage, error)
	GetStage(ctx context.Context, stageID uuid.UUID) (*types.Stage, error)
	ListStages(ctx context.Context) ([]*types.Stage, error)
}

type stageService struct {
	db        *gorm.DB
	log       *logger.Logger
	stageRepo repos.StageRepo
}

func NewStageService(db *gorm.DB, baseLog *logger.Logger, stageRepo repos.StageRepo) StageService {
	return &stageService{
		db:        db,
		log:       baseLog.With("service", "StageService"),
		stageRepo: stageRepo,
	}
}

func (s *stageService) CreateStage(ctx context.Context, title, stageType string, participantCount int, startDate, endDate time.Time) (*types.Stage, error) {
	if title == "" {
		return nil, fmt.Errorf("missing stage title")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("stage end date before start date")
	}

	row := &types.Stage{
		Title:            title,
		Type:             stageType,
		ParticipantCount: participantCount,
		StartDate:        startDate,
		EndDate:          endDate,
	}
	created, err := s.stageRepo.Create(ctx, s.db, row)
	if err != nil {
		s.log.Warn("CreateStage failed", "error", err)
		return nil, err
	}
	s.log.Info("Stage created", "stage_id", created.ID, "title", created.Title)
	return created, nil
}

func (s *stageService) GetStage(ctx context.Context, stageID uuid.UUID) (*types.Stage, error) {
	return s.stageRepo.GetByID(ctx, s.db, stageID)
}

func (s *stageService) ListStages(ctx context.Context) ([]*types.Stage, error) {
	return s.stageRepo.List(ctx, s.db)
}
