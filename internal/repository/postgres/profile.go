package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nroshal/circlet-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query := `INSERT INTO profiles (id, user_id, follow_edge_id, bio, post_ids)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, follow_edge_id, bio, post_ids`

	var savedProfile model.Profile
	err := r.db.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.FollowEdgeID, profile.Bio, profile.PostIDs,
	).Scan(
		&savedProfile.ID, &savedProfile.UserID, &savedProfile.FollowEdgeID,
		&savedProfile.Bio, &savedProfile.PostIDs,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Profile{}, model.ErrAlreadyExists
		}
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return savedProfile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	query := `SELECT id, user_id, follow_edge_id, bio, post_ids
			  FROM profiles WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FollowEdgeID, &profile.Bio, &profile.PostIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) SetBio(ctx context.Context, userID uuid.UUID, bio string) error {
	query := `UPDATE profiles SET bio = $2 WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, bio)
	if err != nil {
		return fmt.Errorf("failed to set bio: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) AppendPostID(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error {
	query := `UPDATE profiles
			  SET post_ids = CASE WHEN $2 = ANY(post_ids) THEN post_ids ELSE array_append(post_ids, $2) END
			  WHERE user_id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to append post id: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes the user's profile. Ensure absent.
func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
