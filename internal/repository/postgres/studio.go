package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nroshal/circlet-server/internal/model"
)

var _ model.StudioStore = (*StudioRepository)(nil)

type StudioRepository struct {
	db *Connection
}

func NewStudioRepository(db *Connection) *StudioRepository {
	return &StudioRepository{
		db: db,
	}
}

func (r *StudioRepository) Create(ctx context.Context, studio model.Studio) (model.Studio, error) {
	query := `INSERT INTO studios (id, post_id, font, color, date_modified)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, post_id, font, color, date_modified`

	var savedStudio model.Studio
	err := r.db.QueryRow(ctx, query,
		studio.ID, studio.PostID, studio.Font, studio.Color, studio.DateModified,
	).Scan(
		&savedStudio.ID, &savedStudio.PostID, &savedStudio.Font,
		&savedStudio.Color, &savedStudio.DateModified,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Studio{}, model.ErrAlreadyExists
		}
		return model.Studio{}, fmt.Errorf("failed to create studio: %w", err)
	}

	return savedStudio, nil
}

func (r *StudioRepository) GetByPostID(ctx context.Context, postID uuid.UUID) (model.Studio, error) {
	var studio model.Studio
	query := `SELECT id, post_id, font, color, date_modified FROM studios WHERE post_id = $1`

	err := r.db.QueryRow(ctx, query, postID).Scan(
		&studio.ID, &studio.PostID, &studio.Font, &studio.Color, &studio.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Studio{}, model.ErrNotFound
		}
		return model.Studio{}, fmt.Errorf("failed to get studio: %w", err)
	}

	return studio, nil
}

func (r *StudioRepository) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]model.Studio, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, post_id, font, color, date_modified
			  FROM studios WHERE post_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list studios: %w", err)
	}
	defer rows.Close()

	var studios []model.Studio
	for rows.Next() {
		var studio model.Studio
		if err := rows.Scan(
			&studio.ID, &studio.PostID, &studio.Font, &studio.Color, &studio.DateModified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan studio: %w", err)
		}
		studios = append(studios, studio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read studios: %w", err)
	}

	return studios, nil
}

func (r *StudioRepository) Update(ctx context.Context, studio model.Studio) (model.Studio, error) {
	query := `UPDATE studios SET font = $2, color = $3, date_modified = $4
			  WHERE post_id = $1
			  RETURNING id, post_id, font, color, date_modified`

	var savedStudio model.Studio
	err := r.db.QueryRow(ctx, query,
		studio.PostID, studio.Font, studio.Color, studio.DateModified,
	).Scan(
		&savedStudio.ID, &savedStudio.PostID, &savedStudio.Font,
		&savedStudio.Color, &savedStudio.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Studio{}, model.ErrNotFound
		}
		return model.Studio{}, fmt.Errorf("failed to update studio: %w", err)
	}

	return savedStudio, nil
}

// Delete removes the attachment for one post. Ensure absent.
func (r *StudioRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	query := `DELETE FROM studios WHERE post_id = $1`

	if _, err := r.db.Exec(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to delete studio: %w", err)
	}

	return nil
}

// DeleteByPostIDs removes attachments for a set of posts. Ensure absent.
func (r *StudioRepository) DeleteByPostIDs(ctx context.Context, postIDs []uuid.UUID) error {
	if len(postIDs) == 0 {
		return nil
	}

	query := `DELETE FROM studios WHERE post_id = ANY($1)`

	if _, err := r.db.Exec(ctx, query, postIDs); err != nil {
		return fmt.Errorf("failed to delete studios: %w", err)
	}

	return nil
}
