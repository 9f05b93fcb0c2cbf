package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drifthq/drift/internal/domain/ordering"
	"github.com/drifthq/drift/internal/domain/page"
	"github.com/drifthq/drift/internal/domain/relevance"
)

// argList collects query arguments and hands out $n placeholders.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

// listSpec describes one listable table: the projected columns, the plain
// substring search targets, and the optional relevance configuration.
type listSpec struct {
	table        string
	columns      []string
	searchFields []string
	relevance    *relevance.Config
}

// buildList renders the row SELECT and the matching COUNT statement for one
// request. The two statements share the same FROM and WHERE so the envelope
// count always agrees with the page contents.
func buildList(
	spec listSpec, phrase string, order []ordering.Directive, p page.Params,
) (sel string, selArgs []any, count string, countArgs []any) {
	sel, selArgs = renderList(spec, phrase, order, &p)
	count, countArgs = renderList(spec, phrase, nil, nil)
	return sel, selArgs, count, countArgs
}

func renderList(
	spec listSpec, phrase string, order []ordering.Directive, p *page.Params,
) (string, []any) {
	a := &argList{}
	var b strings.Builder

	b.WriteString("SELECT ")
	if p == nil {
		b.WriteString("COUNT(*)")
	} else {
		b.WriteString(columnList(spec.columns))
	}
	b.WriteString(" FROM ")

	var predicate string
	switch {
	case spec.relevance != nil && spec.relevance.Enabled(phrase):
		cfg := *spec.relevance
		expr := relevanceExpr(cfg, phrase, a)
		fmt.Fprintf(&b, "(SELECT t.*, (%s) AS %s FROM %s AS t) AS t",
			expr, quoteIdent(cfg.Field()), quoteIdent(spec.table))
		predicate = relevancePredicate(cfg, phrase, a)
	case phrase != "" && len(spec.searchFields) > 0:
		b.WriteString(quoteIdent(spec.table))
		predicate = substringPredicate(spec.searchFields, phrase, a)
	default:
		b.WriteString(quoteIdent(spec.table))
	}

	if predicate != "" {
		b.WriteString(" WHERE ")
		b.WriteString(predicate)
	}
	if clause := orderBySQL(order); clause != "" {
		b.WriteString(" ")
		b.WriteString(clause)
	}
	if p != nil {
		fmt.Fprintf(&b, " LIMIT %s OFFSET %s", a.add(p.Limit()), a.add(p.Offset()))
	}
	return b.String(), a.args
}

// relevanceExpr renders the relevance annotation: trigram similarity against
// the similarity field, plus the full-text rank of the weighted search
// vector when one is configured. Sub-vectors combine by concatenation, which
// is how weighted multi-column vectors are summed in the ranking.
func relevanceExpr(cfg relevance.Config, phrase string, a *argList) string {
	expr := fmt.Sprintf("similarity(%s, %s)", quoteIdent(cfg.SimilarityField()), a.add(phrase))
	vector := cfg.Vector()
	if len(vector) == 0 {
		return expr
	}
	parts := make([]string, len(vector))
	for i, vf := range vector {
		parts[i] = fmt.Sprintf("setweight(to_tsvector('english', coalesce(%s, '')), '%s')",
			quoteIdent(vf.Column), vf.Weight)
	}
	query := fmt.Sprintf("%s('english', %s)", tsQueryFunc(cfg.SearchType()), a.add(phrase))
	return fmt.Sprintf("%s + ts_rank(%s, %s)", expr, strings.Join(parts, " || "), query)
}

// relevancePredicate admits rows inside the configured relevance band, OR'd
// with a literal prefix match on the similarity field so exact-prefix hits
// are never excluded by a low computed score.
func relevancePredicate(cfg relevance.Config, phrase string, a *argList) string {
	field := "t." + quoteIdent(cfg.Field())
	band := fmt.Sprintf("%s >= %s", field, a.add(cfg.MinRelevance()))
	if max := cfg.MaxRelevance(); max != nil {
		band = fmt.Sprintf("%s AND %s <= %s", band, field, a.add(*max))
	}
	prefix := fmt.Sprintf("t.%s ILIKE %s || '%%'",
		quoteIdent(cfg.SimilarityField()), a.add(escapeLike(phrase)))
	return fmt.Sprintf("(%s) OR %s", band, prefix)
}

// substringPredicate is the plain-text fallback: a case-insensitive
// substring match OR'd across the endpoint's search fields.
func substringPredicate(fields []string, phrase string, a *argList) string {
	ph := a.add(escapeLike(phrase))
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s ILIKE '%%' || %s || '%%'", quoteIdent(f), ph)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func tsQueryFunc(s relevance.SearchType) string {
	switch s {
	case relevance.Phrase:
		return "phraseto_tsquery"
	case relevance.Raw:
		return "to_tsquery"
	case relevance.Websearch:
		return "websearch_to_tsquery"
	default:
		return "plainto_tsquery"
	}
}

// orderBySQL renders sort directives in request order; the first directive
// is the primary sort key.
func orderBySQL(ds []ordering.Directive) string {
	if len(ds) == 0 {
		return ""
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		dir := "ASC"
		if d.Direction == ordering.Desc {
			dir = "DESC"
		}
		part := quoteIdent(d.Column) + " " + dir
		if d.NullsLast {
			part += " NULLS LAST"
		}
		parts[i] = part
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, ``) + `"`
}

// escapeLike escapes LIKE wildcards so the phrase matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
