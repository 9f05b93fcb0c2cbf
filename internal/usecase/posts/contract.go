package posts

import (
	"context"

	"github.com/drifthq/drift/internal/domain"
	"github.com/drifthq/drift/internal/repository/postgres"
)

// Repository is the data access contract for the posts endpoint.
type Repository interface {
	List(ctx context.Context, q postgres.ListQuery) ([]domain.Post, int64, error)
	Get(ctx context.Context, id string) (domain.Post, error)
}
