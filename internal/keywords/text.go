package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wordbubble/internal/tokenizer"
)

// isWordRune matches the \w class: letters, numbers and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Normalize lowercases text and drops every rune that is neither a word rune
// nor whitespace.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))
}

// pipeline runs normalize -> tokenize -> stopword and length filter.
func (r *Resources) pipeline(text string) []string {
	words := tokenizer.Words(Normalize(text))

	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if r.IsStopword(w) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// termCount is a token with its frequency; a slice of them keeps first
// occurrence order.
type termCount struct {
	term  string
	count int
}

func countTerms(tokens []string) []termCount {
	index := make(map[string]int, len(tokens))
	counts := make([]termCount, 0, len(tokens))
	for _, t := range tokens {
		if i, ok := index[t]; ok {
			counts[i].count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, termCount{term: t, count: 1})
	}
	return counts
}
