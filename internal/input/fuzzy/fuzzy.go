package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Item is a searchable text with attached data.
type Item struct {
	Text string
	Data any
}

// Result is a ranked item.
type Result struct {
	Item Item

	// Score is higher for better matches.
	Score int

	// Matches holds the rune indices of the matched characters.
	Matches []int
}

// Rank returns the items matching query, best first, at most limit of them
// (limit <= 0 keeps all). An empty query returns every item in input order.
func Rank(query string, items []Item, limit int) []Result {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []Result
	if query == "" {
		results = make([]Result, len(items))
		for i, it := range items {
			results[i] = Result{Item: it}
		}
		return truncate(results, limit)
	}

	q := []rune(query)
	for _, it := range items {
		if score, matches, ok := Score(q, it.Text); ok {
			results = append(results, Result{Item: it, Score: score, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Text < results[j].Item.Text
	})
	return truncate(results, limit)
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// Score matches the lower-cased query runes against text. It reports false
// when some query rune is missing.
func Score(query []rune, text string) (int, []int, bool) {
	if len(query) == 0 || text == "" {
		return 0, nil, false
	}

	original := []rune(text)
	lower := []rune(strings.ToLower(text))
	if len(lower) != len(original) {
		// Lower-casing changed the rune count; match without it.
		lower = original
	}

	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(lower) && qi < len(query); i++ {
		if lower[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil, false
	}

	score := 100
	for i, idx := range matches {
		if i > 0 && idx == matches[i-1]+1 {
			score += 20
		}
		if wordStart(original, idx) {
			score += 15
		}
	}

	first, last := matches[0], matches[len(matches)-1]
	if first == 0 {
		score += 25
	} else {
		score -= first
	}
	if gap := last - first - len(matches) + 1; gap > 0 {
		score -= 2 * gap
	}
	if n := len(lower); n < 20 {
		score += 20 - n
	}
	if hasPrefix(lower, query) {
		score += 50
	}

	if score < 1 {
		score = 1
	}
	return score, matches, true
}

func hasPrefix(text, prefix []rune) bool {
	if len(prefix) > len(text) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// wordStart reports whether runes[idx] begins a word: the first rune, a rune
// after a space or punctuation, or an upper-case rune after a lower-case one.
func wordStart(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
