package core

import (
	"context"
	"fmt"
	"time"

	"github.com/baxromumarov/lead-sieve/internal/keywords"
	"github.com/baxromumarov/lead-sieve/internal/metrics"
	"github.com/baxromumarov/lead-sieve/internal/observability"
	"github.com/baxromumarov/lead-sieve/internal/store"
)

// KeywordSource loads a keyword list by kind.
type KeywordSource interface {
	LoadKeywords(ctx context.Context, kind string) ([]string, error)
}

type FilterService struct {
	keywords KeywordSource
}

func NewFilterService(kw KeywordSource) *FilterService {
	return &FilterService{keywords: kw}
}

// PassResult is the outcome of one filtering pass over an uploaded batch.
type PassResult struct {
	Leads       []store.Lead `json:"leads"`
	Passed      int          `json:"passed"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Run reloads both keyword lists, classifies every lead in place, and mines
// keyword suggestions from the headlines of rejected leads. The keyword
// lists are read fresh on every pass so curation between uploads takes
// effect immediately.
func (s *FilterService) Run(ctx context.Context, leads []store.Lead) (*PassResult, error) {
	start := time.Now()

	incWords, err := s.keywords.LoadKeywords(ctx, keywords.KindInclusion)
	if err != nil {
		observability.IncError(observability.ErrorStore, "filter")
		return nil, fmt.Errorf("failed to load inclusion keywords: %w", err)
	}
	excWords, err := s.keywords.LoadKeywords(ctx, keywords.KindExclusion)
	if err != nil {
		observability.IncError(observability.ErrorStore, "filter")
		return nil, fmt.Errorf("failed to load exclusion keywords: %w", err)
	}

	inclusion := keywords.NewSet(incWords...)
	exclusion := keywords.NewSet(excWords...)

	passed := 0
	var rejectedHeadlines []string
	for i := range leads {
		relevant := IsRelevant(leads[i].Headline, leads[i].Position, inclusion, exclusion)
		leads[i].Relevant = relevant
		if relevant {
			passed++
			metrics.RecordLeadOutcome("passed")
		} else {
			rejectedHeadlines = append(rejectedHeadlines, leads[i].Headline)
			metrics.RecordLeadOutcome("rejected")
		}
	}

	suggestions := Suggest(rejectedHeadlines, inclusion)

	observability.IncUploadsProcessed()
	observability.AddLeadsProcessed(uint64(len(leads)), uint64(passed))
	observability.AddSuggestionsMined(uint64(len(suggestions)))
	observability.ObserveFilterDuration(time.Since(start).Seconds())
	metrics.RecordPass(len(leads), len(suggestions), time.Since(start).Seconds())

	return &PassResult{
		Leads:       leads,
		Passed:      passed,
		Suggestions: suggestions,
	}, nil
}
