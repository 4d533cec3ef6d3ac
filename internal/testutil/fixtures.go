package testutil

import "github.com/rafa/digimon-searcher/internal/domain"

// SampleDigimons is a small catalog covering the shapes the search
// engine has to handle: plural facets, a legacy singular-only record,
// and names that collide on substrings.
func SampleDigimons() []domain.Digimon {
	return []domain.Digimon{
		{
			ID:         1,
			Name:       "Agumon",
			Levels:     []string{"Rookie"},
			Types:      []string{"Reptile"},
			Attributes: []string{"Vaccine"},
			Fields: []domain.FieldDetail{
				{Name: "Dragon's Roar", Image: "https://example.test/fields/dr.png"},
			},
			Images: []string{"https://example.test/agumon.png"},
		},
		{
			ID:         2,
			Name:       "Greymon",
			Levels:     []string{"Champion"},
			Types:      []string{"Dinosaur"},
			Attributes: []string{"Vaccine"},
		},
		{
			ID:         3,
			Name:       "Omegamon",
			Levels:     []string{"Mega"},
			Types:      []string{"Holy Knight"},
			Attributes: []string{"Vaccine"},
			Fields: []domain.FieldDetail{
				{Name: "Virus Busters"},
			},
		},
		{
			// Legacy record: singular fields only.
			ID:        4,
			Name:      "Numemon",
			Level:     "Champion",
			Type:      "Mollusk",
			Attribute: "Virus",
		},
	}
}
