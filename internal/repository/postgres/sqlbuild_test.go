package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/drifthq/drift/internal/domain/ordering"
	"github.com/drifthq/drift/internal/domain/page"
	"github.com/drifthq/drift/internal/domain/relevance"
)

func userSpec(cfg *relevance.Config) listSpec {
	return listSpec{
		table:        "users",
		columns:      []string{"id", "name"},
		searchFields: []string{"name", "username"},
		relevance:    cfg,
	}
}

func TestBuildList_NoPhraseNoOrdering(t *testing.T) {
	sel, selArgs, count, countArgs := buildList(
		userSpec(nil), "", nil, page.NewParams(20, 0, 20, 100))

	wantSel := `SELECT "id", "name" FROM "users" LIMIT $1 OFFSET $2`
	if sel != wantSel {
		t.Errorf("sel =\n%s\nwant\n%s", sel, wantSel)
	}
	if !reflect.DeepEqual(selArgs, []any{20, 0}) {
		t.Errorf("selArgs = %v", selArgs)
	}
	if count != `SELECT COUNT(*) FROM "users"` {
		t.Errorf("count = %s", count)
	}
	if len(countArgs) != 0 {
		t.Errorf("countArgs = %v", countArgs)
	}
}

func TestBuildList_SubstringFallback(t *testing.T) {
	sel, selArgs, count, countArgs := buildList(
		userSpec(nil), "ali", nil, page.NewParams(10, 5, 20, 100))

	wantSel := `SELECT "id", "name" FROM "users" WHERE ` +
		`("name" ILIKE '%' || $1 || '%' OR "username" ILIKE '%' || $1 || '%')` +
		` LIMIT $2 OFFSET $3`
	if sel != wantSel {
		t.Errorf("sel =\n%s\nwant\n%s", sel, wantSel)
	}
	if !reflect.DeepEqual(selArgs, []any{"ali", 10, 5}) {
		t.Errorf("selArgs = %v", selArgs)
	}

	wantCount := `SELECT COUNT(*) FROM "users" WHERE ` +
		`("name" ILIKE '%' || $1 || '%' OR "username" ILIKE '%' || $1 || '%')`
	if count != wantCount {
		t.Errorf("count =\n%s\nwant\n%s", count, wantCount)
	}
	if !reflect.DeepEqual(countArgs, []any{"ali"}) {
		t.Errorf("countArgs = %v", countArgs)
	}
}

func TestBuildList_RelevanceSimilarityOnly(t *testing.T) {
	cfg := relevance.MustNew("name", nil, relevance.Plain, nil, nil, "")
	order := ordering.Resolve([]string{"-relevance"}, nil)

	sel, selArgs, _, _ := buildList(userSpec(&cfg), "ali", order, page.NewParams(20, 0, 20, 100))

	wantSel := `SELECT "id", "name" FROM ` +
		`(SELECT t.*, (similarity("name", $1)) AS "relevance" FROM "users" AS t) AS t` +
		` WHERE (t."relevance" >= $2) OR t."name" ILIKE $3 || '%'` +
		` ORDER BY "relevance" DESC NULLS LAST LIMIT $4 OFFSET $5`
	if sel != wantSel {
		t.Errorf("sel =\n%s\nwant\n%s", sel, wantSel)
	}
	if !reflect.DeepEqual(selArgs, []any{"ali", 0.3, "ali", 20, 0}) {
		t.Errorf("selArgs = %v", selArgs)
	}
}

func TestBuildList_RelevanceWithVectorAndMax(t *testing.T) {
	max := 0.9
	cfg := relevance.MustNew(
		"name",
		[]relevance.VectorField{{Column: "name", Weight: "A"}, {Column: "username", Weight: "B"}},
		relevance.Websearch,
		nil, &max, "",
	)

	sel, selArgs, count, countArgs := buildList(
		userSpec(&cfg), "ada lovelace", nil, page.NewParams(20, 0, 20, 100))

	wantFrom := `(SELECT t.*, (similarity("name", $1) + ts_rank(` +
		`setweight(to_tsvector('english', coalesce("name", '')), 'A') || ` +
		`setweight(to_tsvector('english', coalesce("username", '')), 'B'), ` +
		`websearch_to_tsquery('english', $2))) AS "relevance" FROM "users" AS t) AS t`
	wantSel := `SELECT "id", "name" FROM ` + wantFrom +
		` WHERE (t."relevance" >= $3 AND t."relevance" <= $4) OR t."name" ILIKE $5 || '%'` +
		` LIMIT $6 OFFSET $7`
	if sel != wantSel {
		t.Errorf("sel =\n%s\nwant\n%s", sel, wantSel)
	}
	want := []any{"ada lovelace", "ada lovelace", 0.3, 0.9, "ada lovelace", 20, 0}
	if !reflect.DeepEqual(selArgs, want) {
		t.Errorf("selArgs = %v, want %v", selArgs, want)
	}

	wantCount := `SELECT COUNT(*) FROM ` + wantFrom +
		` WHERE (t."relevance" >= $3 AND t."relevance" <= $4) OR t."name" ILIKE $5 || '%'`
	if count != wantCount {
		t.Errorf("count =\n%s\nwant\n%s", count, wantCount)
	}
	if len(countArgs) != 5 {
		t.Errorf("countArgs = %v, want 5 args", countArgs)
	}
}

// An endpoint without a relevance config never annotates, even with a
// phrase present: the substring fallback applies.
func TestBuildList_NoRelevanceConfigUsesFallback(t *testing.T) {
	sel, _, _, _ := buildList(userSpec(nil), "ali", nil, page.NewParams(20, 0, 20, 100))
	if want := `ILIKE '%' || $1 || '%'`; !strings.Contains(sel, want) {
		t.Errorf("sel = %s, want substring %s", sel, want)
	}
}

// A relevance-configured endpoint with an empty phrase bypasses the
// annotator entirely.
func TestBuildList_EmptyPhraseBypassesRelevance(t *testing.T) {
	cfg := relevance.MustNew("name", nil, relevance.Plain, nil, nil, "")
	sel, _, _, _ := buildList(userSpec(&cfg), "", nil, page.NewParams(20, 0, 20, 100))
	wantSel := `SELECT "id", "name" FROM "users" LIMIT $1 OFFSET $2`
	if sel != wantSel {
		t.Errorf("sel =\n%s\nwant\n%s", sel, wantSel)
	}
}

func TestOrderBySQL(t *testing.T) {
	ds := []ordering.Directive{
		{Column: "published", Direction: ordering.Desc, NullsLast: true},
		{Column: "created", Direction: ordering.Asc, NullsLast: true},
	}
	want := `ORDER BY "published" DESC NULLS LAST, "created" ASC NULLS LAST`
	if got := orderBySQL(ds); got != want {
		t.Errorf("orderBySQL = %s, want %s", got, want)
	}
	if got := orderBySQL(nil); got != "" {
		t.Errorf("orderBySQL(nil) = %q, want empty", got)
	}
}

func TestTsQueryFunc(t *testing.T) {
	tests := map[relevance.SearchType]string{
		relevance.Plain:     "plainto_tsquery",
		relevance.Phrase:    "phraseto_tsquery",
		relevance.Raw:       "to_tsquery",
		relevance.Websearch: "websearch_to_tsquery",
	}
	for st, want := range tests {
		if got := tsQueryFunc(st); got != want {
			t.Errorf("tsQueryFunc(%s) = %s, want %s", st, got, want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_a\b`); got != `50\%\_a\\b` {
		t.Errorf("escapeLike = %s", got)
	}
}
