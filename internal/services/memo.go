package services

import (
	"fmt"
	"strings"

	"github.com/tmaziere/naturecamp-backend/internal/pillar"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

const shortSummaryLimit = 150

// renderProgramText builds the free-text program memo: a checklist of the
// selected cards grouped by pillar, pillars in canonical order, cards in
// selection order within each group. The output is deterministic for a given
// selection so re-saving an unchanged program yields byte-identical records.
func renderProgramText(cards []*types.ContentCard, levelLabel string, themeTitles []string) string {
	var b strings.Builder
	b.WriteString("PROGRAMME\n")
	fmt.Fprintf(&b, "Niveau : %s\n", levelLabel)
	fmt.Fprintf(&b, "Thèmes : %s\n", strings.Join(themeTitles, " & "))

	grouped := map[pillar.Pillar][]*types.ContentCard{}
	for _, card := range cards {
		p := pillar.Classify(card.Category)
		grouped[p] = append(grouped[p], card)
	}

	for _, p := range pillar.All {
		group := grouped[p]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n== %s ==\n", p.Label())
		for _, card := range group {
			fmt.Fprintf(&b, "[ ] %s — %s\n", card.PromptText, card.GoalText)
			if card.Tip != nil && *card.Tip != "" {
				fmt.Fprintf(&b, "    Astuce : %s\n", *card.Tip)
			}
		}
	}
	return b.String()
}

// shortSummary is the list-view excerpt: the first 150 characters of the
// full memo, counted in runes so an accent never gets cut in half.
func shortSummary(fullText string) string {
	runes := []rune(fullText)
	if len(runes) <= shortSummaryLimit {
		return fullText
	}
	return string(runes[:shortSummaryLimit])
}

// baseTitle strips a previously derived suffix from a stage title. Everything
// before the first " - " is the instructor-edited base; recomputing from it
// keeps repeated saves from stacking suffixes.
func baseTitle(title string) string {
	if idx := strings.Index(title, " - "); idx >= 0 {
		return title[:idx]
	}
	return title
}

// derivedTitle composes "<base> - <levelLabel> - <theme1> & <theme2>…".
func derivedTitle(base, levelLabel string, themeTitles []string) string {
	return fmt.Sprintf("%s - %s - %s", base, levelLabel, strings.Join(themeTitles, " & "))
}
