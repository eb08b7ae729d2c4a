package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StudioStore defines persistence operations for studio attachments.
type StudioStore interface {
	Create(ctx context.Context, studio Studio) (Studio, error)
	GetByPostID(ctx context.Context, postID uuid.UUID) (Studio, error)
	ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]Studio, error)
	Update(ctx context.Context, studio Studio) (Studio, error)
	Delete(ctx context.Context, postID uuid.UUID) error
	DeleteByPostIDs(ctx context.Context, postIDs []uuid.UUID) error
}

// Studio is a one-to-one customization attachment for a post. Any mutation
// also touches the parent post's modification timestamp.
type Studio struct {
	ID           uuid.UUID
	PostID       uuid.UUID
	Font         string
	Color        string
	DateModified time.Time
}
