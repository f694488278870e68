package keywords

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	KindInclusion = "inclusion"
	KindExclusion = "exclusion"
)

// ValidKind reports whether kind names one of the two keyword lists.
func ValidKind(kind string) bool {
	return kind == KindInclusion || kind == KindExclusion
}

// Normalize lowercases and trims a keyword so lookups are case-insensitive.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Set holds unique normalized keywords. Ordering is not significant;
// Sorted exists for display only.
type Set struct {
	words mapset.Set[string]
}

func NewSet(words ...string) *Set {
	s := &Set{words: mapset.NewSet[string]()}
	s.Add(words...)
	return s
}

// Add normalizes and inserts each word, dropping empties, and returns
// how many were not already present.
func (s *Set) Add(words ...string) int {
	added := 0
	for _, w := range words {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if s.words.Add(w) {
			added++
		}
	}
	return added
}

func (s *Set) Contains(word string) bool {
	return s.words.Contains(Normalize(word))
}

// Each calls fn for every keyword until fn returns true.
func (s *Set) Each(fn func(word string) bool) {
	s.words.Each(fn)
}

func (s *Set) Len() int {
	return s.words.Cardinality()
}

// Sorted returns the keywords in lexicographic order for display.
func (s *Set) Sorted() []string {
	out := s.words.ToSlice()
	sort.Strings(out)
	return out
}
