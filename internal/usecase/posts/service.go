// Package posts owns the read-only posts endpoint. It declares no relevance
// configuration, so search requests take the plain substring path, and its
// alias table maps one public sort key onto multiple physical columns.
package posts

import (
	"context"
	"fmt"

	"github.com/drifthq/drift/internal/domain"
	"github.com/drifthq/drift/internal/domain/ordering"
	"github.com/drifthq/drift/internal/domain/page"
	"github.com/drifthq/drift/internal/repository/postgres"
)

// Endpoint configuration, read-only at request time.
var (
	orderingFields  = []string{"recent", "publisher-est", "created", "title"}
	orderingAliases = ordering.AliasTable{
		"recent":        "published,-created",
		"publisher-est": "publisher_established",
	}
	defaultOrdering = []string{"-created"}
	searchFields    = []string{"title", "publisher"}
)

// Service handles post listing and retrieval.
type Service struct {
	repo Repository
}

// New creates a posts service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List resolves the sort tokens against the endpoint's alias table and
// fetches one page.
func (s *Service) List(
	ctx context.Context, phrase string, sortTokens []string, p page.Params,
) ([]domain.Post, int64, error) {
	tokens := ordering.Filter(sortTokens, orderingFields)
	directives := ordering.Resolve(tokens, orderingAliases)
	if len(directives) == 0 {
		directives = ordering.Resolve(defaultOrdering, orderingAliases)
	}

	items, total, err := s.repo.List(ctx, postgres.ListQuery{
		Phrase:       phrase,
		SearchFields: searchFields,
		Order:        directives,
		Page:         p,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return items, total, nil
}

// Get fetches a single post.
func (s *Service) Get(ctx context.Context, id string) (domain.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}
