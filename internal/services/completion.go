package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/cache"
	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// CompletionService tracks which of a stage's program cards have been covered
// with the group. Reads and writes go local-first: the in-process tier always
// succeeds, redis mirrors it best-effort, and the remote store is updated
// last. On load a populated local tier wins verbatim over the remote value;
// the remote only ever seeds an empty local tier. A remote correction made on
// another device is therefore not seen until the local tiers expire — the
// staleness trade-off that keeps toggling usable offline.
type CompletionService interface {
	Toggle(ctx context.Context, stageID uuid.UUID, cardID int) (bool, error)
	IsComplete(ctx context.Context, stageID uuid.UUID, cardID int) (bool, error)
	Load(ctx context.Context, stageID uuid.UUID) ([]int, error)
}

type completionService struct {
	db          *gorm.DB
	log         *logger.Logger
	memory      *cache.MemoryCache
	redis       cache.CompletionCache // nil when redis is not configured
	remoteRepo  repos.StageCompletionRepo
	programRepo repos.ProgramRecordRepo

	mu sync.Mutex
}

func NewCompletionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	memory *cache.MemoryCache,
	redis cache.CompletionCache,
	remoteRepo repos.StageCompletionRepo,
	programRepo repos.ProgramRecordRepo,
) CompletionService {
	return &completionService{
		db:          db,
		log:         baseLog.With("service", "CompletionService"),
		memory:      memory,
		redis:       redis,
		remoteRepo:  remoteRepo,
		programRepo: programRepo,
	}
}

// Toggle flips cardID in the stage's completion set. The flip is applied to
// the local tiers before the remote write is attempted; a remote failure
// returns ErrRemoteWrite with the local state already standing, so callers
// surface a warning rather than revert anything.
func (s *completionService) Toggle(ctx context.Context, stageID uuid.UUID, cardID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The scope guard only applies when the program store answers; toggling
	// must stay usable while the remote side is unreachable.
	inProgram, err := s.cardInProgram(ctx, stageID, cardID)
	if err != nil {
		s.log.Warn("Toggle: program read failed, skipping scope check", "stage_id", stageID, "card_id", cardID, "error", err)
	} else if !inProgram {
		s.log.Warn("Toggle rejected: card outside stage program", "stage_id", stageID, "card_id", cardID)
		return false, ErrCardNotInProgram
	}

	current := s.loadLocked(ctx, stageID)

	nowComplete := true
	next := make([]int, 0, len(current)+1)
	for _, id := range current {
		if id == cardID {
			nowComplete = false
			continue
		}
		next = append(next, id)
	}
	if nowComplete {
		next = append(next, cardID)
		sort.Ints(next)
	}

	s.writeLocal(ctx, stageID, next)

	if err := s.remoteRepo.Upsert(ctx, s.db, &types.StageCompletion{
		StageID: stageID,
		CardIDs: types.JSONInts(next),
	}); err != nil {
		s.log.Warn("Toggle: remote completion write failed, local state kept", "stage_id", stageID, "card_id", cardID, "error", err)
		return nowComplete, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}
	return nowComplete, nil
}

func (s *completionService) IsComplete(ctx context.Context, stageID uuid.UUID, cardID int) (bool, error) {
	ids, err := s.Load(ctx, stageID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == cardID {
			return true, nil
		}
	}
	return false, nil
}

func (s *completionService) Load(ctx context.Context, stageID uuid.UUID) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, stageID), nil
}

func (s *completionService) loadLocked(ctx context.Context, stageID uuid.UUID) []int {
	if ids, ok, _ := s.memory.Get(ctx, stageID); ok {
		return ids
	}

	if s.redis != nil {
		ids, ok, err := s.redis.Get(ctx, stageID)
		if err != nil {
			s.log.Warn("Load: redis tier unavailable", "stage_id", stageID, "error", err)
		} else if ok {
			_ = s.memory.Put(ctx, stageID, ids)
			return ids
		}
	}

	row, err := s.remoteRepo.GetByStageID(ctx, s.db, stageID)
	if err != nil {
		// No local value and no remote: start empty rather than fail a read.
		s.log.Warn("Load: remote completion read failed", "stage_id", stageID, "error", err)
		return []int{}
	}
	ids := []int{}
	if row != nil {
		ids = row.CardIDList()
	}
	s.writeLocal(ctx, stageID, ids)
	return ids
}

// writeLocal updates the memory tier (cannot fail) and mirrors to redis
// best-effort, including the legacy per-card toggle blob.
func (s *completionService) writeLocal(ctx context.Context, stageID uuid.UUID, ids []int) {
	_ = s.memory.Put(ctx, stageID, ids)
	_ = s.memory.PutToggleState(ctx, stageID, toggleState(ids))

	if s.redis == nil {
		return
	}
	if err := s.redis.Put(ctx, stageID, ids); err != nil {
		s.log.Warn("writeLocal: redis mirror failed", "stage_id", stageID, "error", err)
		return
	}
	if err := s.redis.PutToggleState(ctx, stageID, toggleState(ids)); err != nil {
		s.log.Warn("writeLocal: redis toggle blob failed", "stage_id", stageID, "error", err)
	}
}

func (s *completionService) cardInProgram(ctx context.Context, stageID uuid.UUID, cardID int) (bool, error) {
	records, err := s.programRepo.GetByStageID(ctx, s.db, stageID)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	// Every record of a stage carries the same card list; the first one is
	// as authoritative as any.
	for _, id := range records[0].CardIDList() {
		if id == cardID {
			return true, nil
		}
	}
	return false, nil
}

func toggleState(ids []int) map[string]bool {
	state := make(map[string]bool, len(ids))
	for _, id := range ids {
		state[strconv.Itoa(id)] = true
	}
	return state
}
