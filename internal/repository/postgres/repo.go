// Package postgres renders the declarative query expressions produced by
// the domain packages into SQL and executes them on a pgx pool. Connection
// management, transactions, and concurrency control stay with the database.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/drifthq/drift/internal/domain/ordering"
	"github.com/drifthq/drift/internal/domain/page"
	"github.com/drifthq/drift/internal/domain/relevance"
)

// querier is the consumer interface satisfied by pgxpool.Pool.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ListQuery carries one request's worth of list parameters from the
// endpoint to the executor: the search phrase, the endpoint's search
// configuration, the resolved sort directives, and the page window.
type ListQuery struct {
	Phrase       string
	SearchFields []string
	Relevance    *relevance.Config
	Order        []ordering.Directive
	Page         page.Params
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
