package search

import (
	"math/rand"
	"strings"

	"github.com/rafa/digimon-searcher/internal/domain"
)

// Order controls how Query arranges the filtered sequence before
// slicing a page out of it.
type Order int

const (
	// OrderStable preserves collection order; results are fully
	// deterministic for a fixed collection and inputs.
	OrderStable Order = iota
	// OrderShuffled randomizes the filtered sequence before slicing.
	// Opt-in presentation policy, never the default.
	OrderShuffled
)

// Criteria is the set of optional filters Query combines with AND.
// An empty field does not constrain the result.
type Criteria struct {
	Name      string // strict-normalized substring match on the record name
	Level     string // facet criteria match any element of the record's values
	Type      string
	Attribute string
	Field     string
}

func (c Criteria) matches(d *domain.Digimon) bool {
	if c.Name != "" && !strings.Contains(Normalize(d.Name, Strict), Normalize(c.Name, Strict)) {
		return false
	}
	return matchesFacet(d, domain.FacetLevel, c.Level) &&
		matchesFacet(d, domain.FacetType, c.Type) &&
		matchesFacet(d, domain.FacetAttribute, c.Attribute) &&
		matchesFacet(d, domain.FacetField, c.Field)
}

func matchesFacet(d *domain.Digimon, facet domain.Facet, want string) bool {
	if want == "" {
		return true
	}
	want = Normalize(want, Loose)
	for _, v := range d.FacetValues(facet) {
		if Normalize(v, Loose) == want {
			return true
		}
	}
	return false
}

// Page is one slice of a filtered collection plus the full match count.
type Page struct {
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
	Items []domain.Digimon `json:"items"`
}

// Query filters coll by criteria and returns the requested page. Page
// and limit are floored at 1. Total counts every match before slicing,
// so a page past the end yields empty items with the correct total.
func Query(coll []domain.Digimon, criteria Criteria, page, limit int, order Order) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	filtered := make([]domain.Digimon, 0, len(coll))
	for i := range coll {
		if criteria.matches(&coll[i]) {
			filtered = append(filtered, coll[i])
		}
	}

	if order == OrderShuffled {
		rand.Shuffle(len(filtered), func(i, j int) {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		})
	}

	start := min((page-1)*limit, len(filtered))
	end := min(start+limit, len(filtered))

	return Page{Page: page, Limit: limit, Total: len(filtered), Items: filtered[start:end]}
}
