// Package page implements limit/offset pagination and the paginated
// response envelope.
package page

import (
	"net/url"
	"strconv"
)

// Pagination defaults.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped limit/offset pair.
type Params struct {
	limit  int
	offset int
}

// NewParams clamps raw limit/offset values. A non-positive limit falls back
// to defaultLimit, a limit above maxLimit is capped, and a negative offset
// becomes zero. Non-positive defaultLimit/maxLimit fall back to the package
// defaults.
func NewParams(limit, offset, defaultLimit, maxLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{limit: limit, offset: offset}
}

// Limit returns the page size.
func (p Params) Limit() int { return p.limit }

// Offset returns the page start.
func (p Params) Offset() int { return p.offset }

// Envelope is the paginated response shape.
type Envelope struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Count    int64   `json:"count"`
	Results  any     `json:"results"`
}

// NewEnvelope builds the response envelope for one page. Next and previous
// links are derived from the request URL by rewriting the limit and offset
// query parameters; they are null at the corresponding end of the set.
func NewEnvelope(requestURL *url.URL, p Params, count int64, results any) Envelope {
	return Envelope{
		Next:     nextLink(requestURL, p, count),
		Previous: previousLink(requestURL, p),
		Count:    count,
		Results:  results,
	}
}

func nextLink(u *url.URL, p Params, count int64) *string {
	next := int64(p.offset) + int64(p.limit)
	if next >= count {
		return nil
	}
	return pageLink(u, p.limit, int(next))
}

func previousLink(u *url.URL, p Params) *string {
	if p.offset <= 0 {
		return nil
	}
	return pageLink(u, p.limit, p.offset-p.limit)
}

func pageLink(u *url.URL, limit, offset int) *string {
	link := *u
	q := link.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	link.RawQuery = q.Encode()
	s := link.String()
	return &s
}
