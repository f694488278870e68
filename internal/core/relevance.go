package core

import (
	"strings"

	"github.com/baxromumarov/lead-sieve/internal/keywords"
)

// IsRelevant decides whether a lead passes the keyword filter. Exclusion
// phrases are whole-word matches and win outright: a hit on either field
// rejects the lead before inclusion keywords are consulted. Inclusion
// keywords are plain substrings, so "java" also matches "javascript".
// With no inclusion hit the lead fails.
func IsRelevant(headline, position string, inclusion, exclusion *keywords.Set) bool {
	if containsExclusion(headline, exclusion) || containsExclusion(position, exclusion) {
		return false
	}
	return containsInclusion(headline, inclusion) || containsInclusion(position, inclusion)
}

// containsExclusion pads both the phrase and the field with single spaces so
// "java" does not fire inside "javascript". An exact match of the trimmed
// field also counts.
func containsExclusion(field string, exclusion *keywords.Set) bool {
	padded := " " + strings.ToLower(field) + " "
	trimmed := strings.TrimSpace(padded)

	found := false
	exclusion.Each(func(phrase string) bool {
		if strings.Contains(padded, " "+phrase+" ") || trimmed == phrase {
			found = true
			return true
		}
		return false
	})
	return found
}

func containsInclusion(field string, inclusion *keywords.Set) bool {
	lower := strings.ToLower(field)
	if lower == "" {
		return false
	}

	found := false
	inclusion.Each(func(kw string) bool {
		if strings.Contains(lower, kw) {
			found = true
			return true
		}
		return false
	})
	return found
}
