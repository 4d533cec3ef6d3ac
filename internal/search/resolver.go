package search

import (
	"regexp"
	"strings"

	"github.com/rafa/digimon-searcher/internal/domain"
)

// DefaultFuzzyThreshold is the maximum edit distance the fuzzy
// fallback accepts. The threshold is absolute regardless of query
// length, so very short queries can match loosely.
const DefaultFuzzyThreshold = 3

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// Resolver maps a raw name query to at most one record. Matching is
// staged with a fixed precedence: exact, substring, parenthetical-
// stripped, then fuzzy edit distance as a last resort.
type Resolver struct {
	// Threshold overrides DefaultFuzzyThreshold when positive.
	Threshold int
}

func (r Resolver) threshold() int {
	if r.Threshold > 0 {
		return r.Threshold
	}
	return DefaultFuzzyThreshold
}

// Resolve returns the best match for rawQuery, or a *domain.NotFoundError
// carrying the query when no stage produces an acceptable candidate.
// It never returns an unrelated record on a miss.
func (r Resolver) Resolve(rawQuery string, coll []domain.Digimon) (*domain.Digimon, error) {
	query := Normalize(rawQuery, Strict)

	if d := matchExactOrSubstring(query, coll); d != nil {
		return d, nil
	}

	// "Omegamon (Alter-S)" should still find "Omegamon".
	if strings.Contains(rawQuery, "(") {
		base := Normalize(parenthetical.ReplaceAllString(rawQuery, ""), Strict)
		if base != "" && base != query {
			if d := matchExactOrSubstring(base, coll); d != nil {
				return d, nil
			}
		}
	}

	if query != "" {
		best := -1
		bestDist := r.threshold() + 1
		for i := range coll {
			// Strict < keeps the first record achieving the minimum.
			if dist := Distance(query, Normalize(coll[i].Name, Strict)); dist < bestDist {
				bestDist = dist
				best = i
			}
		}
		if best >= 0 {
			return &coll[best], nil
		}
	}

	return nil, &domain.NotFoundError{Query: rawQuery}
}

func matchExactOrSubstring(query string, coll []domain.Digimon) *domain.Digimon {
	if query == "" {
		return nil
	}
	for i := range coll {
		if Normalize(coll[i].Name, Strict) == query {
			return &coll[i]
		}
	}
	for i := range coll {
		if strings.Contains(Normalize(coll[i].Name, Strict), query) {
			return &coll[i]
		}
	}
	return nil
}
