package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

func newBuilderFixture() (BuilderService, *types.Stage) {
	stage := fiveDayStage()
	stageRepo := newFakeStageRepo(stage)
	cardRepo := &fakeCardRepo{cards: []*types.ContentCard{
		{ID: 1, Level: 1, Category: "Comprendre", PromptText: "b", ThemeTags: types.JSONStrings([]string{"foret"}), FilterTags: types.JSONStrings([]string{"arbres"})},
		{ID: 2, Level: 1, Category: "Observer", PromptText: "a", ThemeTags: types.JSONStrings([]string{"riviere"}), FilterTags: types.JSONStrings([]string{"eau"})},
		{ID: 3, Level: 2, Category: "Protéger", PromptText: "c", ThemeTags: types.JSONStrings([]string{"foret"}), FilterTags: types.JSONStrings([]string{"dechets"})},
	}}
	return NewBuilderService(nil, testLogger(), stageRepo, cardRepo), stage
}

func TestStartSessionUnknownStage(t *testing.T) {
	svc, _ := newBuilderFixture()
	if _, err := svc.StartSession(context.Background(), uuid.New()); !errors.Is(err, repos.ErrStageNotFound) {
		t.Fatalf("err = %v, want ErrStageNotFound", err)
	}
}

func TestBuilderSelectionFlow(t *testing.T) {
	svc, stage := newBuilderFixture()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, stage.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(session.State.Available) != 3 || len(session.State.Selected) != 0 {
		t.Fatalf("fresh session containers = %d/%d, want 3/0", len(session.State.Available), len(session.State.Selected))
	}

	if _, err := svc.SetFilters(session.ID, 0, []string{"foret"}, nil); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	candidates, err := svc.Candidates(session.ID)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(candidates.Cards) != 1 || candidates.Cards[0].ID != 1 {
		t.Fatalf("candidates = %v, want only card 1 (level 1, theme foret)", candidates.Cards)
	}
	if len(candidates.AvailableTags) != 1 || candidates.AvailableTags[0] != "arbres" {
		t.Fatalf("tag vocabulary = %v, want [arbres]", candidates.AvailableTags)
	}

	if _, err := svc.Select(session.ID, 1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	after, _ := svc.Candidates(session.ID)
	if len(after.Cards) != 0 {
		t.Fatalf("selected card still listed as candidate: %v", after.Cards)
	}
	if got := session.State.SelectedIDs(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("selection = %v, want [1]", got)
	}
}

func TestBuilderUnknownSession(t *testing.T) {
	svc, _ := newBuilderFixture()
	if _, err := svc.Candidates(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Select(uuid.New(), 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
