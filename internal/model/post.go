package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore is the contract the core relies on from the post collaborator.
// Free-text content and rendering live behind it.
type PostStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	ListAuthoredBy(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
	DeleteAuthoredBy(ctx context.Context, authorID uuid.UUID) (int64, error)
	TouchModified(ctx context.Context, id uuid.UUID, modified time.Time) error
}

// Post carries the fields the core needs to gate and cascade; content is
// opaque to it.
type Post struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	DateCreated  time.Time
	DateModified time.Time
}
