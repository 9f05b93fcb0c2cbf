package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drifthq/drift/internal/domain"
)

var postColumns = []string{
	"id", "title", "publisher", "published", "publisher_established", "created", "modified",
}

// Posts executes post queries.
type Posts struct {
	db querier
}

// NewPosts creates a post repository.
func NewPosts(db querier) *Posts {
	return &Posts{db: db}
}

// List fetches one page of posts plus the total count for the same
// predicate.
func (r *Posts) List(ctx context.Context, q ListQuery) ([]domain.Post, int64, error) {
	spec := listSpec{
		table:        "posts",
		columns:      postColumns,
		searchFields: q.SearchFields,
		relevance:    q.Relevance,
	}
	sel, selArgs, count, countArgs := buildList(spec, q.Phrase, q.Order, q.Page)

	var total int64
	if err := r.db.QueryRow(ctx, count, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := r.db.Query(ctx, sel, selArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		err := rows.Scan(
			&p.ID, &p.Title, &p.Publisher, &p.Published,
			&p.PublisherEstablished, &p.Created, &p.Modified,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// Get fetches a single post by id.
func (r *Posts) Get(ctx context.Context, id string) (domain.Post, error) {
	var p domain.Post
	err := r.db.QueryRow(ctx,
		`SELECT id, title, publisher, published, publisher_established, created, modified
		 FROM posts WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.Title, &p.Publisher, &p.Published,
		&p.PublisherEstablished, &p.Created, &p.Modified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	return p, nil
}
