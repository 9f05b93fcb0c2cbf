// Package relevance holds per-endpoint configuration for relevance-ranked
// search: a trigram similarity target, an optional weighted full-text
// vector, and the admission thresholds.
package relevance

import (
	"fmt"

	"github.com/drifthq/drift/internal/domain"
)

// SearchType selects the text query parser.
type SearchType string

// Search types.
const (
	Plain     SearchType = "plain"
	Phrase    SearchType = "phrase"
	Raw       SearchType = "raw"
	Websearch SearchType = "websearch"
)

// IsValid checks if the search type is one of the supported values.
func (s SearchType) IsValid() bool {
	return s == Plain || s == Phrase || s == Raw || s == Websearch
}

// Weight is a full-text weight class, highest to lowest A through D.
type Weight string

// IsValid checks the weight class.
func (w Weight) IsValid() bool {
	return w == "A" || w == "B" || w == "C" || w == "D"
}

// VectorField is one weighted sub-vector of the search vector.
type VectorField struct {
	Column string
	Weight Weight
}

// Defaults.
const (
	DefaultMinRelevance = 0.3
	DefaultField        = "relevance"
)

// Config is an endpoint's relevance search configuration. Read-only after
// construction.
type Config struct {
	similarityField string
	vector          []VectorField
	searchType      SearchType
	minRelevance    float64
	maxRelevance    *float64
	field           string
}

// New validates and creates a relevance Config. A nil minRelevance defaults
// to 0.3; a nil maxRelevance leaves the band unbounded above. An empty
// searchType defaults to plain and an empty field to "relevance".
// Violations are endpoint configuration errors, raised here rather than
// per row.
func New(
	similarityField string,
	vector []VectorField,
	searchType SearchType,
	minRelevance, maxRelevance *float64,
	field string,
) (Config, error) {
	if similarityField == "" {
		return Config{}, fmt.Errorf("%w: similarity field is required", domain.ErrConfig)
	}
	if searchType == "" {
		searchType = Plain
	}
	if !searchType.IsValid() {
		return Config{}, fmt.Errorf("%w: invalid search type %q", domain.ErrConfig, searchType)
	}
	for _, vf := range vector {
		if vf.Column == "" {
			return Config{}, fmt.Errorf("%w: search vector column is required", domain.ErrConfig)
		}
		if !vf.Weight.IsValid() {
			return Config{}, fmt.Errorf(
				"%w: invalid search vector weight %q for column %q",
				domain.ErrConfig, vf.Weight, vf.Column,
			)
		}
	}
	threshold := DefaultMinRelevance
	if minRelevance != nil {
		threshold = *minRelevance
	}
	if field == "" {
		field = DefaultField
	}
	return Config{
		similarityField: similarityField,
		vector:          vector,
		searchType:      searchType,
		minRelevance:    threshold,
		maxRelevance:    maxRelevance,
		field:           field,
	}, nil
}

// MustNew creates a Config or panics. Endpoint configuration is static, so
// a failure here is a programming error.
func MustNew(
	similarityField string,
	vector []VectorField,
	searchType SearchType,
	minRelevance, maxRelevance *float64,
	field string,
) Config {
	cfg, err := New(similarityField, vector, searchType, minRelevance, maxRelevance, field)
	if err != nil {
		panic(err)
	}
	return cfg
}

// SimilarityField returns the trigram similarity target column.
func (c Config) SimilarityField() string { return c.similarityField }

// Vector returns the weighted search vector spec (may be empty).
func (c Config) Vector() []VectorField { return c.vector }

// SearchType returns the text query parser selection.
func (c Config) SearchType() SearchType { return c.searchType }

// MinRelevance returns the lower admission threshold.
func (c Config) MinRelevance() float64 { return c.minRelevance }

// MaxRelevance returns the upper admission threshold (nil means unbounded).
func (c Config) MaxRelevance() *float64 { return c.maxRelevance }

// Field returns the name the relevance annotation is exposed under.
func (c Config) Field() string { return c.field }

// Enabled reports whether the annotator runs for the given phrase. An empty
// phrase bypasses relevance search entirely.
func (c Config) Enabled(phrase string) bool {
	return c.similarityField != "" && phrase != ""
}
