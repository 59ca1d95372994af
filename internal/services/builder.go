package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/selection"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// BuilderSession is one instructor's in-progress program assembly for a
// stage. Sessions live in process memory only; nothing is persisted until
// the program is explicitly saved through ProgramService.SyncProgram.
type BuilderSession struct {
	ID         uuid.UUID
	StageID    uuid.UUID
	State      *selection.State
	LevelIndex int
	ThemeIDs   []string
	TagIDs     []string
	CreatedAt  time.Time
}

// Candidates is the filtered view the builder UI renders: the visible
// candidate cards plus the tag vocabulary derived from the upstream filters.
type Candidates struct {
	Cards         []*types.ContentCard
	AvailableTags []string
}

type BuilderService interface {
	StartSession(ctx context.Context, stageID uuid.UUID) (*BuilderSession, error)
	GetSession(sessionID uuid.UUID) (*BuilderSession, error)
	SetFilters(sessionID uuid.UUID, levelIndex int, themeIDs, tagIDs []string) (*BuilderSession, error)
	Candidates(sessionID uuid.UUID) (*Candidates, error)
	Select(sessionID uuid.UUID, cardID int) (*BuilderSession, error)
	Deselect(sessionID uuid.UUID, cardID int) (*BuilderSession, error)
	Reorder(sessionID uuid.UUID, fromCardID, toCardID int) (*BuilderSession, error)
}

type builderService struct {
	db        *gorm.DB
	log       *logger.Logger
	stageRepo repos.StageRepo
	cardRepo  repos.ContentCardRepo

	// One mutex for the whole registry. Sessions are single-writer by
	// contract; the lock only protects against racing session creation.
	mu       sync.Mutex
	sessions map[uuid.UUID]*BuilderSession
}

func NewBuilderService(db *gorm.DB, baseLog *logger.Logger, stageRepo repos.StageRepo, cardRepo repos.ContentCardRepo) BuilderService {
	return &builderService{
		db:        db,
		log:       baseLog.With("service", "BuilderService"),
		stageRepo: stageRepo,
		cardRepo:  cardRepo,
		sessions:  map[uuid.UUID]*BuilderSession{},
	}
}

func (s *builderService) StartSession(ctx context.Context, stageID uuid.UUID) (*BuilderSession, error) {
	if _, err := s.stageRepo.GetByID(ctx, s.db, stageID); err != nil {
		return nil, err
	}
	catalog, err := s.cardRepo.List(ctx, s.db)
	if err != nil {
		s.log.Warn("StartSession: catalog load failed", "error", err, "stage_id", stageID)
		return nil, err
	}

	session := &BuilderSession{
		ID:        uuid.New(),
		StageID:   stageID,
		State:     selection.NewState(catalog),
		ThemeIDs:  []string{},
		TagIDs:    []string{},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info("Builder session started", "session_id", session.ID, "stage_id", stageID, "catalog_size", len(catalog))
	return session, nil
}

func (s *builderService) GetSession(sessionID uuid.UUID) (*BuilderSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *builderService) SetFilters(sessionID uuid.UUID, levelIndex int, themeIDs, tagIDs []string) (*BuilderSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if themeIDs == nil {
		themeIDs = []string{}
	}
	if tagIDs == nil {
		tagIDs = []string{}
	}
	session.LevelIndex = levelIndex
	session.ThemeIDs = themeIDs
	session.TagIDs = tagIDs
	return session, nil
}

func (s *builderService) Candidates(sessionID uuid.UUID) (*Candidates, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return &Candidates{
		Cards:         selection.VisibleCandidates(session.State.Available, session.LevelIndex, session.ThemeIDs, session.TagIDs),
		AvailableTags: selection.AvailableTags(session.State.Available, session.LevelIndex, session.ThemeIDs),
	}, nil
}

func (s *builderService) Select(sessionID uuid.UUID, cardID int) (*BuilderSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.State.Add(cardID); err != nil {
		// Contract violation from a stale UI; log it, don't surface details.
		s.log.Warn("Select rejected", "session_id", sessionID, "card_id", cardID, "error", err)
		return nil, err
	}
	return session, nil
}

func (s *builderService) Deselect(sessionID uuid.UUID, cardID int) (*BuilderSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.State.Remove(cardID); err != nil {
		s.log.Warn("Deselect rejected", "session_id", sessionID, "card_id", cardID, "error", err)
		return nil, err
	}
	return session, nil
}

func (s *builderService) Reorder(sessionID uuid.UUID, fromCardID, toCardID int) (*BuilderSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.State.Reorder(fromCardID, toCardID); err != nil {
		s.log.Warn("Reorder rejected", "session_id", sessionID, "from", fromCardID, "to", toCardID, "error", err)
		return nil, err
	}
	return session, nil
}
