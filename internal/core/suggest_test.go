package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baxromumarov/lead-sieve/internal/keywords"
)

func TestSuggestCountsAcrossRows(t *testing.T) {
	texts := []string{"Backend Engineer", "backend developer", "backend lead"}

	got := Suggest(texts, keywords.NewSet())

	assert.Contains(t, got, Suggestion{Word: "backend", Count: 3})
	// single-occurrence tokens are dropped
	for _, s := range got {
		assert.Greater(t, s.Count, 1)
	}
}

func TestSuggestSkipsKnownKeywordsAndStopwords(t *testing.T) {
	texts := []string{
		"backend engineer with the team",
		"backend engineer with the crew",
	}

	got := Suggest(texts, keywords.NewSet("backend"))

	words := make([]string, 0, len(got))
	for _, s := range got {
		words = append(words, s.Word)
	}
	assert.NotContains(t, words, "backend") // already a keyword
	assert.NotContains(t, words, "with")    // stopword
	assert.NotContains(t, words, "the")     // stopword
	assert.Contains(t, words, "engineer")
}

func TestSuggestTokenization(t *testing.T) {
	texts := []string{
		"C++ & Go dev, node.js 2024",
		"C++ & Go dev, node.js 2024",
	}

	got := Suggest(texts, keywords.NewSet())

	words := make([]string, 0, len(got))
	for _, s := range got {
		words = append(words, s.Word)
	}
	// tokens are alphabetic runs of at least three letters
	assert.Contains(t, words, "dev")
	assert.Contains(t, words, "node")
	assert.NotContains(t, words, "go")
	assert.NotContains(t, words, "js")
	assert.NotContains(t, words, "2024")
}

func TestSuggestOrdering(t *testing.T) {
	texts := []string{
		"python python python rust rust java java",
		"python rust",
	}

	got := Suggest(texts, keywords.NewSet())

	assert.Equal(t, []Suggestion{
		{Word: "python", Count: 4},
		{Word: "rust", Count: 3},
		{Word: "java", Count: 2},
	}, got)
}

func TestSuggestTiesKeepFirstSeenOrder(t *testing.T) {
	texts := []string{"alpha beta", "alpha beta"}

	got := Suggest(texts, keywords.NewSet())

	assert.Equal(t, []Suggestion{
		{Word: "alpha", Count: 2},
		{Word: "beta", Count: 2},
	}, got)
}

func TestSuggestCapsAtTwentyFive(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("word%c%c%c", 'a'+i/10, 'a'+i%10, 'x'))
	}
	line := strings.Join(words, " ")

	got := Suggest([]string{line, line}, keywords.NewSet())

	assert.Len(t, got, 25)
}

func TestSuggestEmptyInput(t *testing.T) {
	assert.Empty(t, Suggest(nil, keywords.NewSet()))
	assert.Empty(t, Suggest([]string{"", "   "}, keywords.NewSet()))
	assert.Empty(t, Suggest([]string{"unique words only here"}, keywords.NewSet()))
}
