package config

import "testing"

func TestLevelLabel(t *testing.T) {
	cfg := Config{LevelLabels: []string{"Graines", "Pousses", "Chênes"}}

	cases := []struct {
		name  string
		index int
		want  string
	}{
		{name: "first", index: 0, want: "Graines"},
		{name: "last", index: 2, want: "Chênes"},
		{name: "out_of_range_falls_back", index: 5, want: "Niveau 6"},
		{name: "negative_falls_back", index: -1, want: "Niveau 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.LevelLabel(tc.index); got != tc.want {
				t.Fatalf("LevelLabel(%d) = %q, want %q", tc.index, got, tc.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" http://a , http://b ,, ")
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("splitAndTrim = %v, want [http://a http://b]", got)
	}
}
