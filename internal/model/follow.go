package model

import (
	"context"

	"github.com/google/uuid"
)

// FollowStore defines persistence operations for follow edge records.
// Membership writes use set semantics keyed by user id, so replaying a write
// after a partial failure never duplicates an entry.
type FollowStore interface {
	Create(ctx context.Context, edge FollowEdge) (FollowEdge, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (FollowEdge, error)
	AddFollowing(ctx context.Context, userID, targetID uuid.UUID) error
	AddFollower(ctx context.Context, userID, targetID uuid.UUID) error
	RemoveFollowing(ctx context.Context, userID, targetID uuid.UUID) error
	RemoveFollower(ctx context.Context, userID, targetID uuid.UUID) error
	RemoveFromAll(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// FollowEdge holds one user's position in the follow graph: the set of users
// following them and the set of users they follow. Symmetry with the other
// side's record is maintained by the follow service, not by storage.
type FollowEdge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Followers []uuid.UUID
	Following []uuid.UUID
}

// IsFollowing reports whether targetID is in the following set.
func (e FollowEdge) IsFollowing(targetID uuid.UUID) bool {
	for _, id := range e.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// HasFollower reports whether targetID is in the followers set.
func (e FollowEdge) HasFollower(targetID uuid.UUID) bool {
	for _, id := range e.Followers {
		if id == targetID {
			return true
		}
	}
	return false
}
