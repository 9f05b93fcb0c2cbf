package relevance

import (
	"errors"
	"testing"

	"github.com/drifthq/drift/internal/domain"
)

func TestSearchTypeIsValid(t *testing.T) {
	valid := []SearchType{Plain, Phrase, Raw, Websearch}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", s)
		}
	}

	invalid := []SearchType{"", "fulltext", "PLAIN", "web"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", s)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New("name", nil, "", nil, nil, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.SearchType() != Plain {
		t.Errorf("SearchType = %q, want plain", cfg.SearchType())
	}
	if cfg.MinRelevance() != DefaultMinRelevance {
		t.Errorf("MinRelevance = %v, want %v", cfg.MinRelevance(), DefaultMinRelevance)
	}
	if cfg.MaxRelevance() != nil {
		t.Errorf("MaxRelevance = %v, want nil", *cfg.MaxRelevance())
	}
	if cfg.Field() != "relevance" {
		t.Errorf("Field = %q, want relevance", cfg.Field())
	}
}

func TestNew_ExplicitThresholds(t *testing.T) {
	min, max := 0.0, 0.9
	cfg, err := New("name", nil, Websearch, &min, &max, "score")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.MinRelevance() != 0.0 {
		t.Errorf("MinRelevance = %v, want 0", cfg.MinRelevance())
	}
	if cfg.MaxRelevance() == nil || *cfg.MaxRelevance() != 0.9 {
		t.Errorf("MaxRelevance = %v, want 0.9", cfg.MaxRelevance())
	}
	if cfg.Field() != "score" {
		t.Errorf("Field = %q, want score", cfg.Field())
	}
}

func TestNew_InvalidSearchType(t *testing.T) {
	_, err := New("name", nil, "fuzzy", nil, nil, "")
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestNew_MissingSimilarityField(t *testing.T) {
	_, err := New("", nil, Plain, nil, nil, "")
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestNew_InvalidVectorWeight(t *testing.T) {
	vector := []VectorField{{Column: "name", Weight: "Z"}}
	_, err := New("name", vector, Plain, nil, nil, "")
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestNew_MissingVectorColumn(t *testing.T) {
	vector := []VectorField{{Column: "", Weight: "A"}}
	_, err := New("name", vector, Plain, nil, nil, "")
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestEnabled(t *testing.T) {
	cfg := MustNew("name", nil, Plain, nil, nil, "")
	if !cfg.Enabled("alice") {
		t.Error("Enabled(alice) = false, want true")
	}
	if cfg.Enabled("") {
		t.Error("Enabled(\"\") = true, want false")
	}
	if (Config{}).Enabled("alice") {
		t.Error("zero Config Enabled = true, want false")
	}
}
