package pillar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pillar is one of the three pedagogical categories a catalog card belongs
// to. It is always derived from the card's free-text category label and never
// stored; every surface that needs pillar grouping or pillar styling goes
// through Classify so the normalization rules live in exactly one place.
type Pillar int

const (
	Understand Pillar = iota
	Observe
	Protect
)

// All lists the pillars in their canonical grouping order.
var All = []Pillar{Understand, Observe, Protect}

func (p Pillar) String() string {
	switch p {
	case Observe:
		return "observe"
	case Protect:
		return "protect"
	default:
		return "understand"
	}
}

// Label is the French display label used in rendered program documents.
func (p Pillar) Label() string {
	switch p {
	case Observe:
		return "Observer"
	case Protect:
		return "Protéger"
	default:
		return "Comprendre"
	}
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Classify maps a free-text category label to its pillar. Labels come from
// content editors with inconsistent casing and accents ("PROTÉGER",
// "Proteger le site", ...), so the label is lower-cased and stripped of
// combining marks before substring matching. Unrecognized labels fall through
// to Understand; this never fails.
func Classify(category string) Pillar {
	normalized, _, err := transform.String(stripMarks, strings.ToLower(category))
	if err != nil {
		normalized = strings.ToLower(category)
	}
	switch {
	case strings.Contains(normalized, "observ"):
		return Observe
	case strings.Contains(normalized, "proteg"), strings.Contains(normalized, "protect"):
		return Protect
	default:
		return Understand
	}
}
