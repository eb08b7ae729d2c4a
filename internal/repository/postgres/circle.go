package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nroshal/circlet-server/internal/model"
)

var _ model.CircleStore = (*CircleRepository)(nil)

type CircleRepository struct {
	db *Connection
}

func NewCircleRepository(db *Connection) *CircleRepository {
	return &CircleRepository{
		db: db,
	}
}

// Create inserts one replica. The unique (owner_id, name) index is the
// write-time guard against a concurrent duplicate add of the same member.
func (r *CircleRepository) Create(ctx context.Context, circle model.Circle) (model.Circle, error) {
	query := `INSERT INTO circles (id, owner_id, name, members, post_ids)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, owner_id, name, members, post_ids`

	var savedCircle model.Circle
	err := r.db.QueryRow(ctx, query,
		circle.ID, circle.OwnerID, circle.Name, circle.Members, circle.PostIDs,
	).Scan(
		&savedCircle.ID, &savedCircle.OwnerID, &savedCircle.Name,
		&savedCircle.Members, &savedCircle.PostIDs,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Circle{}, model.ErrAlreadyExists
		}
		return model.Circle{}, fmt.Errorf("failed to create circle: %w", err)
	}

	return savedCircle, nil
}

func (r *CircleRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (model.Circle, error) {
	var circle model.Circle
	query := `SELECT id, owner_id, name, members, post_ids
			  FROM circles WHERE owner_id = $1 AND name = $2`

	err := r.db.QueryRow(ctx, query, ownerID, name).Scan(
		&circle.ID, &circle.OwnerID, &circle.Name, &circle.Members, &circle.PostIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Circle{}, model.ErrNotFound
		}
		return model.Circle{}, fmt.Errorf("failed to get circle: %w", err)
	}

	return circle, nil
}

// ListByOwner returns the owner's replicas sorted by name. The name column
// carries the "C" collation so the order is byte-wise, not locale-dependent.
// Ordering is applied only here, member lists keep insertion order.
func (r *CircleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Circle, error) {
	query := `SELECT id, owner_id, name, members, post_ids
			  FROM circles WHERE owner_id = $1 ORDER BY name COLLATE "C" ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles by owner: %w", err)
	}
	defer rows.Close()

	return scanCircles(rows)
}

func (r *CircleRepository) ListByName(ctx context.Context, name string) ([]model.Circle, error) {
	query := `SELECT id, owner_id, name, members, post_ids
			  FROM circles WHERE name = $1`

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles by name: %w", err)
	}
	defer rows.Close()

	return scanCircles(rows)
}

func (r *CircleRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Circle, error) {
	query := `SELECT id, owner_id, name, members, post_ids
			  FROM circles WHERE $1 = ANY(members)`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles by member: %w", err)
	}
	defer rows.Close()

	return scanCircles(rows)
}

// AddMember unions memberID into one replica's member list.
func (r *CircleRepository) AddMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	query := `UPDATE circles
			  SET members = CASE WHEN $3 = ANY(members) THEN members ELSE array_append(members, $3) END
			  WHERE owner_id = $1 AND name = $2`

	cmd, err := r.db.Exec(ctx, query, ownerID, name, memberID)
	if err != nil {
		return fmt.Errorf("failed to add circle member: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// RemoveMember drops memberID from one replica's member list. Ensure absent:
// a missing replica is success, the retry path depends on it.
func (r *CircleRepository) RemoveMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	query := `UPDATE circles SET members = array_remove(members, $3)
			  WHERE owner_id = $1 AND name = $2`

	if _, err := r.db.Exec(ctx, query, ownerID, name, memberID); err != nil {
		return fmt.Errorf("failed to remove circle member: %w", err)
	}

	return nil
}

// Delete removes one replica. Ensure absent.
func (r *CircleRepository) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	query := `DELETE FROM circles WHERE owner_id = $1 AND name = $2`

	if _, err := r.db.Exec(ctx, query, ownerID, name); err != nil {
		return fmt.Errorf("failed to delete circle: %w", err)
	}

	return nil
}

// DeleteAllByOwner removes every replica the user holds. Ensure absent.
func (r *CircleRepository) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error {
	query := `DELETE FROM circles WHERE owner_id = $1`

	if _, err := r.db.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("failed to delete circles by owner: %w", err)
	}

	return nil
}

func scanCircles(rows pgx.Rows) ([]model.Circle, error) {
	var circles []model.Circle
	for rows.Next() {
		var circle model.Circle
		if err := rows.Scan(
			&circle.ID, &circle.OwnerID, &circle.Name, &circle.Members, &circle.PostIDs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		circles = append(circles, circle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read circles: %w", err)
	}

	return circles, nil
}
