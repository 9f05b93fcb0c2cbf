package users

import (
	"context"

	"github.com/drifthq/drift/internal/domain"
	"github.com/drifthq/drift/internal/repository/postgres"
)

// Repository is the data access contract for the users endpoint.
type Repository interface {
	List(ctx context.Context, q postgres.ListQuery) ([]domain.User, int64, error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
