package model

import (
	"context"

	"github.com/google/uuid"
)

// PublicCircleName is the implicit default visibility scope. Every account
// joins it during registration.
const PublicCircleName = "public"

// CircleStore defines persistence operations for circle replicas. Each
// operation touches exactly one record except the ListBy* reads; fan-out
// across a logical circle is choreographed by the circle service, one write
// per replica.
type CircleStore interface {
	Create(ctx context.Context, circle Circle) (Circle, error)
	GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (Circle, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Circle, error)
	ListByName(ctx context.Context, name string) ([]Circle, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Circle, error)
	AddMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error
	RemoveMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// Circle is one member's replica of a logical circle. Every member of a
// logical circle holds their own copy; at quiescence all copies carry the
// same member set. Members keep insertion order, ordering by name happens
// only at the list boundary.
type Circle struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Members []uuid.UUID
	PostIDs []uuid.UUID
}

// HasMember reports whether userID is in the replica's member set.
func (c Circle) HasMember(userID uuid.UUID) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	return false
}
