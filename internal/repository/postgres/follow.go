package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nroshal/circlet-server/internal/model"
)

var _ model.FollowStore = (*FollowRepository)(nil)

type FollowRepository struct {
	db *Connection
}

func NewFollowRepository(db *Connection) *FollowRepository {
	return &FollowRepository{
		db: db,
	}
}

func (r *FollowRepository) Create(ctx context.Context, edge model.FollowEdge) (model.FollowEdge, error) {
	query := `INSERT INTO follow_edges (id, user_id, followers, following)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, followers, following`

	var savedEdge model.FollowEdge
	err := r.db.QueryRow(ctx, query,
		edge.ID, edge.UserID, edge.Followers, edge.Following,
	).Scan(
		&savedEdge.ID, &savedEdge.UserID, &savedEdge.Followers, &savedEdge.Following,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.FollowEdge{}, model.ErrAlreadyExists
		}
		return model.FollowEdge{}, fmt.Errorf("failed to create follow edge: %w", err)
	}

	return savedEdge, nil
}

func (r *FollowRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.FollowEdge, error) {
	var edge model.FollowEdge
	query := `SELECT id, user_id, followers, following FROM follow_edges WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&edge.ID, &edge.UserID, &edge.Followers, &edge.Following,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FollowEdge{}, model.ErrNotFound
		}
		return model.FollowEdge{}, fmt.Errorf("failed to get follow edge: %w", err)
	}

	return edge, nil
}

// AddFollowing appends targetID to the following set. The append is guarded
// so replaying it after a partial failure leaves the set unchanged.
func (r *FollowRepository) AddFollowing(ctx context.Context, userID, targetID uuid.UUID) error {
	query := `UPDATE follow_edges
			  SET following = CASE WHEN $2 = ANY(following) THEN following ELSE array_append(following, $2) END
			  WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to add following: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// AddFollower appends targetID to the followers set with the same guarded
// set-union semantics as AddFollowing.
func (r *FollowRepository) AddFollower(ctx context.Context, userID, targetID uuid.UUID) error {
	query := `UPDATE follow_edges
			  SET followers = CASE WHEN $2 = ANY(followers) THEN followers ELSE array_append(followers, $2) END
			  WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to add follower: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *FollowRepository) RemoveFollowing(ctx context.Context, userID, targetID uuid.UUID) error {
	query := `UPDATE follow_edges SET following = array_remove(following, $2) WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to remove following: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *FollowRepository) RemoveFollower(ctx context.Context, userID, targetID uuid.UUID) error {
	query := `UPDATE follow_edges SET followers = array_remove(followers, $2) WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to remove follower: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// RemoveFromAll strips userID out of every other edge record's sets. Ensure
// absent: touching zero rows is success.
func (r *FollowRepository) RemoveFromAll(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE follow_edges
			  SET followers = array_remove(followers, $1), following = array_remove(following, $1)
			  WHERE $1 = ANY(followers) OR $1 = ANY(following)`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to remove user from all edges: %w", err)
	}

	return nil
}

// Delete removes the user's own edge record. Ensure absent.
func (r *FollowRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM follow_edges WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	return nil
}
