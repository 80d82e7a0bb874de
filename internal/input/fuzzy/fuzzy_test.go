package fuzzy

import (
	"reflect"
	"testing"
)

func texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Text
	}
	return out
}

func TestRank(t *testing.T) {
	items := []Item{
		{Text: "Toggle theme"},
		{Text: "Go to top"},
		{Text: "Go to bottom"},
		{Text: "Search"},
	}

	tests := []struct {
		query string
		limit int
		want  []string
	}{
		{"", 0, []string{"Toggle theme", "Go to top", "Go to bottom", "Search"}},
		{"", 2, []string{"Toggle theme", "Go to top"}},
		{"gtt", 0, []string{"Go to top", "Go to bottom"}},
		{"go to", 0, []string{"Go to top", "Go to bottom"}},
		{"SEA", 0, []string{"Search"}},
		{"xyz", 0, nil},
		{"t", 1, []string{"Toggle theme"}},
	}

	for _, tt := range tests {
		got := Rank(tt.query, items, tt.limit)
		if g := texts(got); !reflect.DeepEqual(g, tt.want) && !(len(g) == 0 && len(tt.want) == 0) {
			t.Errorf("Rank(%q, %d) = %v, want %v", tt.query, tt.limit, g, tt.want)
		}
	}
}

func TestScorePrefersWordStarts(t *testing.T) {
	q := []rune("gt")
	boundary, _, ok := Score(q, "Go Top")
	if !ok {
		t.Fatal("no match for Go Top")
	}
	inner, _, ok := Score(q, "bigtop")
	if !ok {
		t.Fatal("no match for bigtop")
	}
	if boundary <= inner {
		t.Errorf("word-start score %d <= inner score %d", boundary, inner)
	}
}

func TestScoreMatches(t *testing.T) {
	_, matches, ok := Score([]rune("ot"), "goToTop")
	if !ok {
		t.Fatal("no match")
	}
	if !reflect.DeepEqual(matches, []int{1, 2}) {
		t.Errorf("matches = %v, want [1 2]", matches)
	}

	if _, _, ok := Score([]rune("zz"), "goToTop"); ok {
		t.Error("matched missing runes")
	}
	if _, _, ok := Score(nil, "text"); ok {
		t.Error("empty query matched")
	}
}
