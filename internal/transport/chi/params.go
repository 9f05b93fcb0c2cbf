package chi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/drifthq/drift/internal/domain/page"
)

// parseSortTokens reads the ordering tokens from the query string. The
// parameter may repeat, and each value may itself be a comma-separated
// list; both forms combine in request order.
func parseSortTokens(r *http.Request, param string) []string {
	var tokens []string
	for _, raw := range r.URL.Query()[param] {
		for _, tok := range strings.Split(raw, ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// parsePage reads limit/offset from the query string. Malformed values are
// ignored and fall back to the defaults.
func parsePage(r *http.Request, defaultLimit, maxLimit int) page.Params {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return page.NewParams(limit, offset, defaultLimit, maxLimit)
}
