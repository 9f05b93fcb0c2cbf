// Package users owns the users endpoint: its permitted ordering fields,
// ordering aliases, relevance search configuration, and create validation.
package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drifthq/drift/internal/domain"
	"github.com/drifthq/drift/internal/domain/alias"
	"github.com/drifthq/drift/internal/domain/ordering"
	"github.com/drifthq/drift/internal/domain/page"
	"github.com/drifthq/drift/internal/domain/relevance"
	"github.com/drifthq/drift/internal/repository/postgres"
)

// Endpoint configuration, read-only at request time. Name is the trigram
// similarity target; the search vector weights name above username.
var (
	orderingFields  = []string{"name", "username", "created", "modified", "relevance"}
	orderingAliases = ordering.AliasTable{"joined": "created"}
	defaultOrdering = []string{"-created"}
	searchFields    = []string{"name", "username"}

	relevanceConfig = relevance.MustNew(
		"name",
		[]relevance.VectorField{
			{Column: "name", Weight: "A"},
			{Column: "username", Weight: "B"},
		},
		relevance.Websearch,
		nil, nil, "",
	)
)

// Service handles user listing, retrieval, and creation.
type Service struct {
	repo Repository
}

// New creates a users service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List resolves the sort tokens against the endpoint's alias table and
// fetches one page. Sorting by the relevance annotation requires a search
// phrase in the same request, since the annotation is only computed then.
func (s *Service) List(
	ctx context.Context, phrase string, sortTokens []string, p page.Params,
) ([]domain.User, int64, error) {
	directives, err := resolveOrdering(phrase, sortTokens)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.List(ctx, postgres.ListQuery{
		Phrase:       phrase,
		SearchFields: searchFields,
		Relevance:    &relevanceConfig,
		Order:        directives,
		Page:         p,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return items, total, nil
}

func resolveOrdering(phrase string, sortTokens []string) ([]ordering.Directive, error) {
	tokens := ordering.Filter(sortTokens, orderingFields)
	directives := ordering.Resolve(tokens, orderingAliases)
	if len(directives) == 0 {
		directives = ordering.Resolve(defaultOrdering, orderingAliases)
	}
	if ordering.References(directives, relevanceConfig.Field()) && phrase == "" {
		return nil, domain.NewValidation(
			relevanceConfig.Field(), "search_required", "a search phrase is required")
	}
	return directives, nil
}

// Get fetches a single user.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create validates and stores a new user. A non-empty alias must satisfy
// the shared alias constraints.
func (s *Service) Create(ctx context.Context, name, username, aliasValue string) (domain.User, error) {
	if name == "" {
		return domain.User{}, domain.NewValidation("name", "required", "this field is required")
	}
	if username == "" {
		return domain.User{}, domain.NewValidation("username", "required", "this field is required")
	}
	if aliasValue != "" {
		if err := alias.Validate(aliasValue); err != nil {
			return domain.User{}, err
		}
	}

	u := domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Username: username,
		Alias:    aliasValue,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
