package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nroshal/circlet-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

// PostRepository implements the post collaborator contract. The core only
// reads author/id metadata, touches modification timestamps and cascades
// deletes; content is stored and rendered elsewhere.
type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	var post model.Post
	query := `SELECT id, author_id, date_created, date_modified FROM posts WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.DateCreated, &post.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *PostRepository) ListAuthoredBy(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM posts WHERE author_id = $1 ORDER BY date_created ASC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list authored posts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post ids: %w", err)
	}

	return ids, nil
}

// DeleteAuthoredBy removes all of a user's posts and reports how many rows
// went away. Ensure absent.
func (r *PostRepository) DeleteAuthoredBy(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `DELETE FROM posts WHERE author_id = $1`

	cmd, err := r.db.Exec(ctx, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete authored posts: %w", err)
	}

	return cmd.RowsAffected(), nil
}

func (r *PostRepository) TouchModified(ctx context.Context, id uuid.UUID, modified time.Time) error {
	query := `UPDATE posts SET date_modified = $2 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, modified)
	if err != nil {
		return fmt.Errorf("failed to touch post: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Create exists for the integration tests, which need authored posts to
// exercise the profile and studio paths.
func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, author_id)
			  VALUES ($1, $2)
			  RETURNING id, author_id, date_created, date_modified`

	var savedPost model.Post
	err := r.db.QueryRow(ctx, query, post.ID, post.AuthorID).Scan(
		&savedPost.ID, &savedPost.AuthorID, &savedPost.DateCreated, &savedPost.DateModified,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return savedPost, nil
}
