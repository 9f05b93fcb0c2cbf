package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drifthq/drift/internal/domain"
)

var userColumns = []string{"id", "name", "username", "alias", "created", "modified"}

// Users executes user queries.
type Users struct {
	db querier
}

// NewUsers creates a user repository.
func NewUsers(db querier) *Users {
	return &Users{db: db}
}

// List fetches one page of users plus the total count for the same
// predicate.
func (r *Users) List(ctx context.Context, q ListQuery) ([]domain.User, int64, error) {
	spec := listSpec{
		table:        "users",
		columns:      userColumns,
		searchFields: q.SearchFields,
		relevance:    q.Relevance,
	}
	sel, selArgs, count, countArgs := buildList(spec, q.Phrase, q.Order, q.Page)

	var total int64
	if err := r.db.QueryRow(ctx, count, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx, sel, selArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Alias, &u.Created, &u.Modified); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Get fetches a single user by id.
func (r *Users) Get(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, username, alias, created, modified FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Username, &u.Alias, &u.Created, &u.Modified)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// Create inserts a user. The created and modified timestamps come back from
// the database so callers see the stored values.
func (r *Users) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (id, name, username, alias) VALUES ($1, $2, $3, $4)
		 RETURNING created, modified`,
		u.ID, u.Name, u.Username, u.Alias,
	).Scan(&u.Created, &u.Modified)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
