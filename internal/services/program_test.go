package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/config"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

func testConfig() config.Config {
	return config.Config{LevelLabels: []string{"Niveau 1", "Niveau 2", "Niveau 3"}}
}

func catalogCard(id int, category, prompt string) *types.ContentCard {
	return &types.ContentCard{
		ID:         id,
		Level:      2,
		Category:   category,
		PromptText: prompt,
		GoalText:   "objectif " + prompt,
		ThemeTags:  types.JSONStrings([]string{"foret"}),
		FilterTags: types.JSONStrings([]string{"tag"}),
	}
}

func fiveDayStage() *types.Stage {
	return &types.Stage{
		ID:        uuid.New(),
		Title:     "Stage de printemps",
		StartDate: time.Date(2026, 4, 6, 9, 30, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 10, 17, 0, 0, 0, time.UTC),
	}
}

func newProgramFixture(stage *types.Stage) (ProgramService, *fakeStageRepo, *fakeProgramRepo) {
	stageRepo := newFakeStageRepo(stage)
	cardRepo := &fakeCardRepo{cards: []*types.ContentCard{
		catalogCard(1, "Comprendre", "La vie du sol"),
		catalogCard(2, "Observer", "Traces d'animaux"),
		catalogCard(3, "Protéger", "Nettoyer la berge"),
	}}
	programRepo := newFakeProgramRepo()
	svc := NewProgramService(nil, testLogger(), testConfig(), stageRepo, cardRepo, programRepo)
	return svc, stageRepo, programRepo
}

func TestSyncProgramFiveDayScenario(t *testing.T) {
	stage := fiveDayStage()
	svc, stageRepo, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	themes := []string{"Forêt", "Rivière"}
	if err := svc.SyncProgram(ctx, stage.ID, 1, themes, []int{2, 1, 3}); err != nil {
		t.Fatalf("SyncProgram: %v", err)
	}

	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 5 {
		t.Fatalf("expected 5 records (one per day), got %d", len(records))
	}
	for _, r := range records {
		if r.Level != 1 {
			t.Fatalf("record level = %d, want 1", r.Level)
		}
		if got := r.ThemeTitleList(); len(got) != 2 {
			t.Fatalf("record themes = %v, want 2 entries", got)
		}
		if got := r.CardIDList(); len(got) != 3 || got[0] != 2 || got[1] != 1 || got[2] != 3 {
			t.Fatalf("record card ids = %v, want [2 1 3] in selection order", got)
		}
		if r.FullText == "" || r.DerivedSummary == "" {
			t.Fatal("expected rendered program text on every record")
		}
	}

	saved := stageRepo.stages[stage.ID]
	if !strings.HasSuffix(saved.Title, "Niveau 2 - Forêt & Rivière") {
		t.Fatalf("stage title = %q, want suffix %q", saved.Title, "Niveau 2 - Forêt & Rivière")
	}
	if !strings.HasPrefix(saved.Title, "Stage de printemps - ") {
		t.Fatalf("stage title = %q, want base prefix preserved", saved.Title)
	}
}

func TestSyncProgramIdempotentAcrossSaves(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	args := []int{1, 3}
	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, args); err != nil {
		t.Fatalf("first save: %v", err)
	}
	first, _ := programRepo.GetByStageID(ctx, nil, stage.ID)

	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, args); err != nil {
		t.Fatalf("second save: %v", err)
	}
	second, _ := programRepo.GetByStageID(ctx, nil, stage.ID)

	if len(first) != len(second) {
		t.Fatalf("record count changed across saves: %d vs %d", len(first), len(second))
	}
	firstIDs := map[uuid.UUID]bool{}
	for _, r := range first {
		firstIDs[r.ID] = true
	}
	for i, r := range second {
		if firstIDs[r.ID] {
			t.Fatal("record identity survived a re-save; identities must not be stable")
		}
		if r.FullText != first[i].FullText {
			t.Fatal("program text changed across identical saves")
		}
	}
}

func TestSyncProgramTitleDoesNotAccumulateSuffixes(t *testing.T) {
	stage := fiveDayStage()
	svc, stageRepo, _ := newProgramFixture(stage)
	ctx := context.Background()

	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.SyncProgram(ctx, stage.ID, 2, []string{"Montagne", "Rivière"}, []int{2}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	title := stageRepo.stages[stage.ID].Title
	want := "Stage de printemps - Niveau 3 - Montagne & Rivière"
	if title != want {
		t.Fatalf("title = %q, want %q (exactly one level label, one theme list)", title, want)
	}
}

func TestSyncProgramDeleteFailureLeavesProgramUntouched(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1, 2}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	programRepo.failDelete = true
	err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{3})
	if !errors.Is(err, ErrDeleteFailed) {
		t.Fatalf("err = %v, want ErrDeleteFailed", err)
	}

	programRepo.failDelete = false
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 5 {
		t.Fatalf("previous program should be intact, got %d records", len(records))
	}
	for _, r := range records {
		if got := r.CardIDList(); len(got) != 2 {
			t.Fatalf("previous card ids overwritten: %v", got)
		}
	}
}

func TestSyncProgramEmptySelectionClears(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1}); err != nil {
		t.Fatalf("initial save: %v", err)
	}
	if err := svc.SyncProgram(ctx, stage.ID, 0, nil, nil); err != nil {
		t.Fatalf("clearing save: %v", err)
	}
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 0 {
		t.Fatalf("expected cleared program, got %d records", len(records))
	}
}

func TestSyncProgramMissingTheme(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	err := svc.SyncProgram(ctx, stage.ID, 0, nil, []int{1})
	if !errors.Is(err, ErrMissingTheme) {
		t.Fatalf("err = %v, want ErrMissingTheme", err)
	}
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 0 {
		t.Fatalf("no records expected after aborted save, got %d", len(records))
	}
}

func TestSyncProgramPartialWriteKeepsSuccessfulDays(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	programRepo.failDates = map[string]bool{"2026-04-08": true}
	err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1})
	if !errors.Is(err, ErrPartialWrite) {
		t.Fatalf("err = %v, want ErrPartialWrite", err)
	}
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 4 {
		t.Fatalf("expected the 4 successful days to stand, got %d records", len(records))
	}
}

func TestSyncProgramDropsStaleCardIDs(t *testing.T) {
	stage := fiveDayStage()
	svc, _, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	if err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1, 99, 2}); err != nil {
		t.Fatalf("SyncProgram: %v", err)
	}
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if got := records[0].CardIDList(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("card ids = %v, want [1 2] with stale id dropped", got)
	}
}

func TestSyncProgramUnknownStage(t *testing.T) {
	svc, _, _ := newProgramFixture(fiveDayStage())
	err := svc.SyncProgram(context.Background(), uuid.New(), 0, []string{"Forêt"}, []int{1})
	if !errors.Is(err, repos.ErrStageNotFound) {
		t.Fatalf("err = %v, want ErrStageNotFound", err)
	}
}

func TestSyncProgramTitleFailureKeepsRecords(t *testing.T) {
	stage := fiveDayStage()
	svc, stageRepo, programRepo := newProgramFixture(stage)
	ctx := context.Background()

	stageRepo.failUpdate = true
	err := svc.SyncProgram(ctx, stage.ID, 0, []string{"Forêt"}, []int{1})
	if err == nil {
		t.Fatal("expected title update failure to be reported")
	}
	records, _ := programRepo.GetByStageID(ctx, nil, stage.ID)
	if len(records) != 5 {
		t.Fatalf("records must stand despite title failure, got %d", len(records))
	}
}
