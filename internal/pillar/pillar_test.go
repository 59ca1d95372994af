package pillar

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		category string
		want     Pillar
	}{
		{name: "observer_plain", category: "observer", want: Observe},
		{name: "observer_upper", category: "OBSERVER", want: Observe},
		{name: "observation_noun", category: "Observation du ciel", want: Observe},
		{name: "proteger_accent", category: "Protéger le site", want: Protect},
		{name: "proteger_upper_no_accent", category: "PROTEGER", want: Protect},
		{name: "protect_english", category: "Protect", want: Protect},
		{name: "comprendre", category: "Comprendre", want: Understand},
		{name: "comprendre_upper", category: "COMPRENDRE", want: Understand},
		{name: "unknown_falls_through", category: "Bricolage", want: Understand},
		{name: "empty_falls_through", category: "", want: Understand},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.category); got != tc.want {
				t.Fatalf("Classify(%q)=%v, want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestClassifyCaseAndAccentStable(t *testing.T) {
	variants := [][]string{
		{"Observer", "OBSERVER", "observer", "Öbserver"},
		{"Protéger", "PROTÉGER", "proteger", "PROTEGER"},
		{"Comprendre", "COMPRENDRE", "comprendre"},
	}
	for _, group := range variants {
		want := Classify(group[0])
		for _, v := range group[1:] {
			if got := Classify(v); got != want {
				t.Fatalf("Classify(%q)=%v, want %v (same as %q)", v, got, want, group[0])
			}
		}
	}
}

func TestLabelOrdering(t *testing.T) {
	if len(All) != 3 {
		t.Fatalf("expected 3 pillars, got %d", len(All))
	}
	if All[0] != Understand || All[1] != Observe || All[2] != Protect {
		t.Fatalf("unexpected pillar order: %v", All)
	}
	if Understand.Label() != "Comprendre" || Observe.Label() != "Observer" || Protect.Label() != "Protéger" {
		t.Fatalf("unexpected labels: %q %q %q", Understand.Label(), Observe.Label(), Protect.Label())
	}
}
