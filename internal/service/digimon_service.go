package service

import (
	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/config"
	"github.com/rafa/digimon-searcher/internal/dataset"
	"github.com/rafa/digimon-searcher/internal/domain"
	"github.com/rafa/digimon-searcher/internal/search"
)

// DigimonService answers every catalog query against the load-once
// store. All methods are pure reads over the immutable snapshot.
type DigimonService struct {
	store    *dataset.Store
	resolver search.Resolver
	order    search.Order
	log      *zap.SugaredLogger
}

func NewDigimonService(store *dataset.Store, cfg *config.Config, log *zap.SugaredLogger) *DigimonService {
	order := search.OrderStable
	if cfg.ListOrder == config.OrderShuffled {
		order = search.OrderShuffled
	}
	return &DigimonService{
		store:    store,
		resolver: search.Resolver{Threshold: cfg.FuzzyThreshold},
		order:    order,
		log:      log,
	}
}

// List returns one page of the whole catalog. Only the list surface
// honors the configured order policy.
func (s *DigimonService) List(page, limit int) search.Page {
	return search.Query(s.store.All(), search.Criteria{}, page, limit, s.order)
}

// FilterByFacet returns records whose facet values contain value,
// case- and diacritic-insensitively.
func (s *DigimonService) FilterByFacet(facet domain.Facet, value string, page, limit int) search.Page {
	c := search.Criteria{}
	switch facet {
	case domain.FacetLevel:
		c.Level = value
	case domain.FacetType:
		c.Type = value
	case domain.FacetAttribute:
		c.Attribute = value
	case domain.FacetField:
		c.Field = value
	}
	return search.Query(s.store.All(), c, page, limit, search.OrderStable)
}

// Search combines all supplied criteria with AND.
func (s *DigimonService) Search(criteria search.Criteria, page, limit int) search.Page {
	return search.Query(s.store.All(), criteria, page, limit, search.OrderStable)
}

// GetByName resolves a raw name query to at most one record.
func (s *DigimonService) GetByName(name string) (*domain.Digimon, error) {
	d, err := s.resolver.Resolve(name, s.store.All())
	if err != nil {
		s.log.Debugw("name lookup missed", "query", name)
		return nil, err
	}
	return d, nil
}

// Count returns the size of the catalog.
func (s *DigimonService) Count() int {
	return s.store.Count()
}
