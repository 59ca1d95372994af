package selection

import (
	"errors"
	"sort"

	"github.com/tmaziere/naturecamp-backend/internal/types"
)

var (
	// ErrNotAvailable signals an Add for a card that is not in the available
	// container. Well-formed UI calls never trigger it; log, don't surface.
	ErrNotAvailable = errors.New("card is not available")
	// ErrNotSelected signals a Remove or Reorder for a card that is not in
	// the selected sequence.
	ErrNotSelected = errors.New("card is not selected")
)

// State is the two-container selection backing one builder session. Available
// and Selected are always disjoint and together hold exactly the cards the
// session was initialized with. Selected order is significant (it drives the
// rendered program order); Available is kept alphabetical by prompt text so
// the candidate list stays browsable. Methods leave the state untouched when
// they return an error.
type State struct {
	Available []*types.ContentCard
	Selected  []*types.ContentCard
}

func NewState(catalog []*types.ContentCard) *State {
	available := make([]*types.ContentCard, len(catalog))
	copy(available, catalog)
	sortByPrompt(available)
	return &State{
		Available: available,
		Selected:  []*types.ContentCard{},
	}
}

// Add moves a card from Available to the end of Selected.
func (s *State) Add(cardID int) error {
	idx := indexOf(s.Available, cardID)
	if idx < 0 {
		return ErrNotAvailable
	}
	card := s.Available[idx]
	s.Available = append(s.Available[:idx], s.Available[idx+1:]...)
	s.Selected = append(s.Selected, card)
	return nil
}

// Remove returns a card from Selected to Available and re-sorts Available
// alphabetically; the card's original position in the candidate list is not
// preserved.
func (s *State) Remove(cardID int) error {
	idx := indexOf(s.Selected, cardID)
	if idx < 0 {
		return ErrNotSelected
	}
	card := s.Selected[idx]
	s.Selected = append(s.Selected[:idx], s.Selected[idx+1:]...)
	s.Available = append(s.Available, card)
	sortByPrompt(s.Available)
	return nil
}

// Reorder moves the card fromID to the position currently occupied by toID,
// shifting the cards in between. fromID == toID is a no-op, not an error.
func (s *State) Reorder(fromID, toID int) error {
	if fromID == toID {
		if indexOf(s.Selected, fromID) < 0 {
			return ErrNotSelected
		}
		return nil
	}
	from := indexOf(s.Selected, fromID)
	to := indexOf(s.Selected, toID)
	if from < 0 || to < 0 {
		return ErrNotSelected
	}
	card := s.Selected[from]
	s.Selected = append(s.Selected[:from], s.Selected[from+1:]...)
	s.Selected = append(s.Selected[:to], append([]*types.ContentCard{card}, s.Selected[to:]...)...)
	return nil
}

// SelectedIDs returns the ordered card ids of the selected sequence.
func (s *State) SelectedIDs() []int {
	ids := make([]int, 0, len(s.Selected))
	for _, card := range s.Selected {
		ids = append(ids, card.ID)
	}
	return ids
}

func indexOf(cards []*types.ContentCard, cardID int) int {
	for i, card := range cards {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}

func sortByPrompt(cards []*types.ContentCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].PromptText < cards[j].PromptText
	})
}
