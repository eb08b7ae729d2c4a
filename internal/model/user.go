package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines identity lookups. The core only reads users; Create
// exists for the registration bootstrap.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered account.
type User struct {
	ID        uuid.UUID
	Username  string
	Name      string
	CreatedAt time.Time
}
