package domain

// Digimon is the canonical record for one creature in the catalog.
// The dataset is read-only: records are loaded once at startup and
// never mutated by a request.
type Digimon struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Levels     []string      `json:"levels,omitempty"`
	Types      []string      `json:"types,omitempty"`
	Attributes []string      `json:"attributes,omitempty"`
	Fields     []FieldDetail `json:"fields,omitempty"`
	Images     []string      `json:"images,omitempty"` // first entry is the primary image

	// Singular legacy fields kept for older dataset files. The loader
	// folds them into the plural slices; FacetValues tolerates records
	// that arrive unfolded.
	Level     string `json:"level,omitempty"`
	Type      string `json:"type,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	Image     string `json:"image,omitempty"`

	// Enrichment data, absent until an enrichment pass populates it.
	Description string   `json:"description,omitempty"`
	Attacks     []Attack `json:"attacks,omitempty"`
	Wiki        *WikiRef `json:"wiki,omitempty"`

	Source string `json:"source,omitempty"`
}

// FieldDetail is one habitat/category of a Digimon with its badge image.
type FieldDetail struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Attack is a named technique scraped from the wiki.
type Attack struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// WikiRef records where enrichment data came from. Error is set when
// the enrichment pass failed for this record.
type WikiRef struct {
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// Facet is a categorical attribute a record can be filtered by.
type Facet string

const (
	FacetLevel     Facet = "level"
	FacetType      Facet = "type"
	FacetAttribute Facet = "attribute"
	FacetField     Facet = "field"
)

// FacetValues returns the record's values for the given facet. The
// plural slice wins when non-empty; otherwise a present singular legacy
// field yields a one-element slice; otherwise nil.
func (d *Digimon) FacetValues(facet Facet) []string {
	switch facet {
	case FacetLevel:
		return pluralOrSingular(d.Levels, d.Level)
	case FacetType:
		return pluralOrSingular(d.Types, d.Type)
	case FacetAttribute:
		return pluralOrSingular(d.Attributes, d.Attribute)
	case FacetField:
		if len(d.Fields) == 0 {
			return nil
		}
		names := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			if f.Name != "" {
				names = append(names, f.Name)
			}
		}
		return names
	}
	return nil
}

// PrimaryImage returns the first image reference, falling back to the
// legacy singular field.
func (d *Digimon) PrimaryImage() string {
	if len(d.Images) > 0 {
		return d.Images[0]
	}
	return d.Image
}

func pluralOrSingular(plural []string, singular string) []string {
	if len(plural) > 0 {
		return plural
	}
	if singular != "" {
		return []string{singular}
	}
	return nil
}
