package selection

import (
	"sort"

	"github.com/tmaziere/naturecamp-backend/internal/pillar"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

// VisibleCandidates runs the hard filter stages over the available cards:
// level, then themes, then tags. The builder UI works with zero-based levels
// while catalog data is one-based, so a card passes when
// card.Level == levelIndex+1. Theme and tag filters use OR semantics and an
// empty filter list excludes nothing.
func VisibleCandidates(available []*types.ContentCard, levelIndex int, themeIDs, tagIDs []string) []*types.ContentCard {
	byTheme := filterByTheme(filterByLevel(available, levelIndex), themeIDs)
	if len(tagIDs) == 0 {
		return byTheme
	}
	want := toSet(tagIDs)
	out := make([]*types.ContentCard, 0, len(byTheme))
	for _, card := range byTheme {
		if intersects(card.FilterTagList(), want) {
			out = append(out, card)
		}
	}
	return out
}

// AvailableTags derives the tag vocabulary offered for the tag filter: the
// sorted, de-duplicated union of filter tags over the cards that already pass
// the level and theme stages. The vocabulary narrows as upstream filters do.
func AvailableTags(available []*types.ContentCard, levelIndex int, themeIDs []string) []string {
	seen := map[string]struct{}{}
	for _, card := range filterByTheme(filterByLevel(available, levelIndex), themeIDs) {
		for _, tag := range card.FilterTagList() {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Dimmed reports whether a card should be rendered de-emphasized under an
// engaged pillar filter. The pillar filter never excludes cards from the
// candidate list; it only dims the ones outside the chosen pillar.
func Dimmed(card *types.ContentCard, p pillar.Pillar) bool {
	return pillar.Classify(card.Category) != p
}

func filterByLevel(cards []*types.ContentCard, levelIndex int) []*types.ContentCard {
	out := make([]*types.ContentCard, 0, len(cards))
	for _, card := range cards {
		if card.Level == levelIndex+1 {
			out = append(out, card)
		}
	}
	return out
}

func filterByTheme(cards []*types.ContentCard, themeIDs []string) []*types.ContentCard {
	if len(themeIDs) == 0 {
		return cards
	}
	want := toSet(themeIDs)
	out := make([]*types.ContentCard, 0, len(cards))
	for _, card := range cards {
		if intersects(card.ThemeTagList(), want) {
			out = append(out, card)
		}
	}
	return out
}

func toSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

func intersects(vals []string, set map[string]struct{}) bool {
	for _, v := range vals {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
