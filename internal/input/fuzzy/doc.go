// Package fuzzy ranks short labels against a typed query.
//
// Every query rune must appear in the text in order. Matches score higher
// when they are consecutive, start words ("Go To Top", "goToTop") or start
// the text, and lower when spread out or far from the start. Shorter texts
// win ties.
//
//	results := fuzzy.Rank("gtt", []fuzzy.Item{
//	    {Text: "Go to top", Data: top},
//	    {Text: "Toggle theme", Data: theme},
//	}, 10)
package fuzzy
