package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/config"
	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

const maxConcurrentDayInserts = 4

// ProgramService owns the save path of the builder: a destructive rebuild of
// the stage's per-day program records plus the derived stage title.
//
// Two sessions saving the same stage concurrently race; the last save wins in
// full. That is the accepted consequence of the snapshot-replace model, not
// something this service detects.
type ProgramService interface {
	// SyncProgram rebuilds the program from the finalized selection.
	// cardIDs that no longer resolve against the catalog are dropped.
	// An empty (post-resolution) selection clears the program.
	SyncProgram(ctx context.Context, stageID uuid.UUID, levelIndex int, themeTitles []string, cardIDs []int) error
	GetProgram(ctx context.Context, stageID uuid.UUID) ([]*types.ProgramRecord, error)
}

type programService struct {
	db          *gorm.DB
	log         *logger.Logger
	cfg         config.Config
	stageRepo   repos.StageRepo
	cardRepo    repos.ContentCardRepo
	programRepo repos.ProgramRecordRepo
}

func NewProgramService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg config.Config,
	stageRepo repos.StageRepo,
	cardRepo repos.ContentCardRepo,
	programRepo repos.ProgramRecordRepo,
) ProgramService {
	return &programService{
		db:          db,
		log:         baseLog.With("service", "ProgramService"),
		cfg:         cfg,
		stageRepo:   stageRepo,
		cardRepo:    cardRepo,
		programRepo: programRepo,
	}
}

func (s *programService) SyncProgram(ctx context.Context, stageID uuid.UUID, levelIndex int, themeTitles []string, cardIDs []int) error {
	stage, err := s.stageRepo.GetByID(ctx, s.db, stageID)
	if err != nil {
		return err
	}

	cards, err := s.resolveCards(ctx, cardIDs)
	if err != nil {
		return err
	}

	// Destructive rebuild: the old batch goes first. If the delete fails the
	// previous program is still intact and the save aborts here.
	if err := s.programRepo.DeleteByStageID(ctx, s.db, stageID); err != nil {
		s.log.Error("SyncProgram: delete failed", "stage_id", stageID, "error", err)
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	if len(cards) == 0 {
		s.log.Info("SyncProgram: empty selection, program cleared", "stage_id", stageID)
		return nil
	}

	if len(themeTitles) == 0 {
		return ErrMissingTheme
	}

	levelLabel := s.cfg.LevelLabel(levelIndex)
	fullText := renderProgramText(cards, levelLabel, themeTitles)
	summary := shortSummary(fullText)
	title := derivedTitle(baseTitle(stage.Title), levelLabel, themeTitles)

	resolvedIDs := make([]int, 0, len(cards))
	for _, card := range cards {
		resolvedIDs = append(resolvedIDs, card.ID)
	}

	days := daysBetween(stage.StartDate, stage.EndDate)
	var (
		mu     sync.Mutex
		failed []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDayInserts)
	for _, day := range days {
		record := &types.ProgramRecord{
			StageID:        stageID,
			Date:           day,
			DerivedTitle:   title,
			DerivedSummary: summary,
			FullText:       fullText,
			Level:          levelIndex,
			ThemeTitles:    types.JSONStrings(themeTitles),
			CardIDs:        types.JSONInts(resolvedIDs),
		}
		g.Go(func() error {
			if err := s.programRepo.CreateOne(gctx, s.db, record); err != nil {
				mu.Lock()
				failed = append(failed, fmt.Errorf("day %s: %w", record.Date.Format("2006-01-02"), err))
				mu.Unlock()
			}
			// Failures are collected, not propagated: one bad day must not
			// cancel the remaining inserts.
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		s.log.Error("SyncProgram: some day inserts failed", "stage_id", stageID, "failed", len(failed), "total", len(days), "first_error", failed[0])
		return fmt.Errorf("%w: %d of %d days", ErrPartialWrite, len(failed), len(days))
	}

	// Title update is cosmetic next to the program itself; a failure is
	// reported but the freshly written records stand.
	stage.Title = title
	if err := s.stageRepo.Update(ctx, s.db, stage); err != nil {
		s.log.Error("SyncProgram: stage title update failed", "stage_id", stageID, "error", err)
		return fmt.Errorf("update stage title: %w", err)
	}

	s.log.Info("SyncProgram: program saved", "stage_id", stageID, "days", len(days), "cards", len(resolvedIDs), "themes", len(themeTitles))
	return nil
}

func (s *programService) GetProgram(ctx context.Context, stageID uuid.UUID) ([]*types.ProgramRecord, error) {
	return s.programRepo.GetByStageID(ctx, s.db, stageID)
}

// resolveCards maps the selection's card ids back to catalog rows, keeping
// selection order. Ids with no catalog match are dropped: they are stale
// leftovers from an earlier catalog version, not a reason to fail the save.
func (s *programService) resolveCards(ctx context.Context, cardIDs []int) ([]*types.ContentCard, error) {
	if len(cardIDs) == 0 {
		return []*types.ContentCard{}, nil
	}
	rows, err := s.cardRepo.GetByIDs(ctx, s.db, cardIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*types.ContentCard, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	resolved := make([]*types.ContentCard, 0, len(cardIDs))
	var dropped []int
	for _, id := range cardIDs {
		if card, ok := byID[id]; ok {
			resolved = append(resolved, card)
		} else {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		s.log.Warn("SyncProgram: dropping card ids with no catalog match", "dropped", dropped)
	}
	return resolved, nil
}

// daysBetween lists every calendar day in [start, end] inclusive, normalized
// to midnight. An end before start yields just the start day.
func daysBetween(start, end time.Time) []time.Time {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	days := []time.Time{startDay}
	for day := startDay.AddDate(0, 0, 1); !day.After(endDay); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
