package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

var errBoom = errors.New("boom")

type fakeStageRepo struct {
	stages     map[uuid.UUID]*types.Stage
	failUpdate bool
	updates    int
}

func newFakeStageRepo(stages ...*types.Stage) *fakeStageRepo {
	m := map[uuid.UUID]*types.Stage{}
	for _, s := range stages {
		m[s.ID] = s
	}
	return &fakeStageRepo{stages: m}
}

func (f *fakeStageRepo) Create(_ context.Context, _ *gorm.DB, row *types.Stage) (*types.Stage, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.stages[row.ID] = row
	return row, nil
}

func (f *fakeStageRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Stage, error) {
	s, ok := f.stages[id]
	if !ok {
		return nil, repos.ErrStageNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStageRepo) List(_ context.Context, _ *gorm.DB) ([]*types.Stage, error) {
	out := make([]*types.Stage, 0, len(f.stages))
	for _, s := range f.stages {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStageRepo) Update(_ context.Context, _ *gorm.DB, row *types.Stage) error {
	if f.failUpdate {
		return errBoom
	}
	f.updates++
	f.stages[row.ID] = row
	return nil
}

type fakeCardRepo struct {
	cards []*types.ContentCard
	fail  bool
}

func (f *fakeCardRepo) List(_ context.Context, _ *gorm.DB) ([]*types.ContentCard, error) {
	if f.fail {
		return nil, errBoom
	}
	return f.cards, nil
}

func (f *fakeCardRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.ContentCard, error) {
	if f.fail {
		return nil, errBoom
	}
	want := map[int]struct{}{}
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*types.ContentCard
	for _, c := range f.cards {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCardRepo) Count(_ context.Context, _ *gorm.DB) (int64, error) {
	return int64(len(f.cards)), nil
}

func (f *fakeCardRepo) Seed(_ context.Context, _ *gorm.DB, rows []*types.ContentCard) error {
	f.cards = append(f.cards, rows...)
	return nil
}

type fakeProgramRepo struct {
	mu         sync.Mutex
	records    map[uuid.UUID][]*types.ProgramRecord
	failDelete bool
	failRead   bool
	// failDates marks day inserts (keyed by YYYY-MM-DD) that must error.
	failDates map[string]bool
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{records: map[uuid.UUID][]*types.ProgramRecord{}}
}

func (f *fakeProgramRepo) CreateOne(_ context.Context, _ *gorm.DB, row *types.ProgramRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDates[row.Date.Format("2006-01-02")] {
		return errBoom
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.records[row.StageID] = append(f.records[row.StageID], row)
	return nil
}

func (f *fakeProgramRepo) GetByStageID(_ context.Context, _ *gorm.DB, stageID uuid.UUID) ([]*types.ProgramRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return nil, errBoom
	}
	out := make([]*types.ProgramRecord, len(f.records[stageID]))
	copy(out, f.records[stageID])
	return out, nil
}

func (f *fakeProgramRepo) DeleteByStageID(_ context.Context, _ *gorm.DB, stageID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errBoom
	}
	delete(f.records, stageID)
	return nil
}

type fakeCompletionRepo struct {
	rows      map[uuid.UUID]*types.StageCompletion
	failWrite bool
	failRead  bool
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{rows: map[uuid.UUID]*types.StageCompletion{}}
}

func (f *fakeCompletionRepo) GetByStageID(_ context.Context, _ *gorm.DB, stageID uuid.UUID) (*types.StageCompletion, error) {
	if f.failRead {
		return nil, errBoom
	}
	return f.rows[stageID], nil
}

func (f *fakeCompletionRepo) Upsert(_ context.Context, _ *gorm.DB, row *types.StageCompletion) error {
	if f.failWrite {
		return errBoom
	}
	f.rows[row.StageID] = row
	return nil
}
