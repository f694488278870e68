package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/baxromumarov/lead-sieve/internal/keywords"
)

const maxSuggestions = 25

// tokenPattern matches alphabetic runs of at least three letters; digits,
// punctuation and underscores never join a token.
var tokenPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

var stopwords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "you": {}, "are": {}, "have": {}, "has": {}, "not": {},
	"all": {}, "any": {}, "can": {}, "but": {}, "out": {}, "via": {},
	"its": {}, "his": {}, "her": {}, "our": {}, "your": {}, "they": {},
	"them": {}, "on": {}, "at": {}, "in": {}, "to": {}, "by": {},
	"of": {}, "is": {}, "as": {}, "an": {}, "or": {}, "be": {},
	"a": {}, "we": {}, "i": {}, "it": {},
}

// Suggestion is a candidate keyword mined from rejected leads.
type Suggestion struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Suggest tokenizes the given texts, counts token frequency across all of
// them, and returns the most frequent candidates that are not already known
// keywords, not stopwords, and occur more than once. Ties keep first-seen
// order; at most 25 suggestions are returned.
func Suggest(texts []string, existing *keywords.Set) []Suggestion {
	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	suggestions := make([]Suggestion, 0, len(order))
	for _, word := range order {
		count := counts[word]
		if count <= 1 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		if existing.Contains(word) {
			continue
		}
		suggestions = append(suggestions, Suggestion{Word: word, Count: count})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Count > suggestions[j].Count
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
