package model

import (
	"context"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for profile aggregates.
type ProfileStore interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	SetBio(ctx context.Context, userID uuid.UUID, bio string) error
	AppendPostID(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Profile is a derived per-user view combining identity, bio, the follow
// edge reference and authored post references. It is rebuilt from the other
// stores and never authoritative; only bio edits and post-id appends mutate
// it directly.
type Profile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FollowEdgeID uuid.UUID
	Bio          string
	PostIDs      []uuid.UUID
}

// ProfileView is the read-composed form of a profile: the stored aggregate
// with identity and the follower/following name lists resolved. References
// to users that no longer resolve are skipped, reads tolerate transient
// divergence.
type ProfileView struct {
	Profile
	Username       string
	Name           string
	FollowerNames  []string
	FollowingNames []string
}
