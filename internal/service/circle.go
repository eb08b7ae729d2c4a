package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// Circle maintains the replicated circle records. A logical circle is one
// record per member; every membership change is a fan-out of single-record
// set writes, one per replica, with no transaction around them.
type Circle struct {
	circleStore model.CircleStore
	followStore model.FollowStore
	userStore   model.UserStore
	logger      *logger.Logger
}

func NewCircle(
	circleStore model.CircleStore,
	followStore model.FollowStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Circle {
	return &Circle{
		circleStore: circleStore,
		followStore: followStore,
		userStore:   userStore,
		logger:      logger,
	}
}

// Create makes the caller the sole member of a new circle.
func (s *Circle) Create(ctx context.Context, selfID uuid.UUID, name string) (model.Circle, error) {
	circle := model.Circle{
		ID:      uuid.New(),
		OwnerID: selfID,
		Name:    name,
		Members: []uuid.UUID{selfID},
		PostIDs: []uuid.UUID{},
	}

	savedCircle, err := s.circleStore.Create(ctx, circle)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Circle{}, model.ErrDuplicateName
	}
	if err != nil {
		return model.Circle{}, fmt.Errorf("failed to create circle: %w", err)
	}

	return savedCircle, nil
}

// List returns the caller's replicas sorted by name.
func (s *Circle) List(ctx context.Context, selfID uuid.UUID) ([]model.Circle, error) {
	circles, err := s.circleStore.ListByOwner(ctx, selfID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}

	return circles, nil
}

// ListByUsername returns another user's replicas sorted by name.
func (s *Circle) ListByUsername(ctx context.Context, username string) ([]model.Circle, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return s.List(ctx, user.ID)
}

// Find returns the caller's replica under the given name.
func (s *Circle) Find(ctx context.Context, selfID uuid.UUID, name string) (model.Circle, error) {
	circle, err := s.circleStore.GetByOwnerAndName(ctx, selfID, name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Circle{}, model.ErrCircleNotFound
		}
		return model.Circle{}, fmt.Errorf("failed to find circle: %w", err)
	}

	return circle, nil
}

// AddMember invites a follower into the caller's circle. The invited user's
// own replica is created first so they see the circle as soon as any write
// lands, then every current member's replica is updated, the caller's own
// last. A retry after an interruption passes the preconditions again (the
// caller's replica is only updated once everything else succeeded) and every
// write is a set-union, so the retry is a no-op on applied steps.
func (s *Circle) AddMember(ctx context.Context, selfID uuid.UUID, circleName, username string) (model.Circle, error) {
	replica, err := s.circleStore.GetByOwnerAndName(ctx, selfID, circleName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Circle{}, model.ErrCircleNotFound
		}
		return model.Circle{}, fmt.Errorf("failed to find circle: %w", err)
	}

	other, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Circle{}, model.ErrNotFound
		}
		return model.Circle{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	edge, err := s.followStore.GetByUserID(ctx, selfID)
	if err != nil {
		return model.Circle{}, fmt.Errorf("failed to get follow edge: %w", err)
	}
	if !edge.HasFollower(other.ID) {
		return model.Circle{}, model.ErrNotAFollower
	}

	if replica.HasMember(other.ID) {
		return model.Circle{}, model.ErrAlreadyMember
	}

	members := make([]uuid.UUID, 0, len(replica.Members)+1)
	members = append(members, replica.Members...)
	members = append(members, other.ID)

	newReplica := model.Circle{
		ID:      uuid.New(),
		OwnerID: other.ID,
		Name:    circleName,
		Members: members,
		PostIDs: []uuid.UUID{},
	}
	if _, err := s.circleStore.Create(ctx, newReplica); err != nil {
		if !errors.Is(err, model.ErrAlreadyExists) {
			return model.Circle{}, fmt.Errorf("failed to create member replica: %w", err)
		}
		// The unique (owner, name) index is the write-time membership
		// re-check. An existing replica that contains the caller is this
		// logical circle, left over from an interrupted add; anything else
		// is a concurrent or conflicting membership.
		existing, getErr := s.circleStore.GetByOwnerAndName(ctx, other.ID, circleName)
		if getErr != nil {
			return model.Circle{}, fmt.Errorf("failed to re-check member replica: %w", getErr)
		}
		if !existing.HasMember(selfID) {
			return model.Circle{}, model.ErrAlreadyMember
		}
	}

	completed := []string{"create member replica"}
	for _, memberID := range fanOutOrder(replica.Members, selfID) {
		if err := s.circleStore.AddMember(ctx, memberID, circleName, other.ID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// Replica missing for a listed member: tolerated transient
				// divergence, the member either left or was never fully added.
				s.logger.Info("skipping absent replica during fan-out",
					"circle", circleName, "member", memberID)
				continue
			}
			s.logger.Error("circle fan-out interrupted, caller must retry",
				"circle", circleName, "member", memberID, "error", err)
			return model.Circle{}, &model.PartialCascadeError{
				Op:        "add circle member",
				Step:      fmt.Sprintf("update replica of %s", memberID),
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, fmt.Sprintf("update replica of %s", memberID))
	}

	return s.circleStore.GetByOwnerAndName(ctx, selfID, circleName)
}

// Leave removes the caller from every peer replica, then deletes their own.
// The own replica goes last so an interrupted leave can still be retried.
func (s *Circle) Leave(ctx context.Context, selfID uuid.UUID, circleName string) error {
	replica, err := s.circleStore.GetByOwnerAndName(ctx, selfID, circleName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrCircleNotFound
		}
		return fmt.Errorf("failed to find circle: %w", err)
	}

	var completed []string
	for _, memberID := range replica.Members {
		if memberID == selfID {
			continue
		}
		if err := s.circleStore.RemoveMember(ctx, memberID, circleName, selfID); err != nil {
			s.logger.Error("leave fan-out interrupted, caller must retry",
				"circle", circleName, "member", memberID, "error", err)
			return &model.PartialCascadeError{
				Op:        "leave circle",
				Step:      fmt.Sprintf("update replica of %s", memberID),
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, fmt.Sprintf("update replica of %s", memberID))
	}

	if err := s.circleStore.Delete(ctx, selfID, circleName); err != nil {
		return &model.PartialCascadeError{
			Op:        "leave circle",
			Step:      "delete own replica",
			Completed: completed,
			Err:       err,
		}
	}

	return nil
}

// JoinPublic adds the user to the logical "public" circle during account
// creation. The membership of "public" is the set of replica owners; the
// user's own replica is seeded from it and created first, then each owner's
// replica is updated. Safe to re-run.
func (s *Circle) JoinPublic(ctx context.Context, selfID uuid.UUID) error {
	replicas, err := s.circleStore.ListByName(ctx, model.PublicCircleName)
	if err != nil {
		return fmt.Errorf("failed to list public replicas: %w", err)
	}

	members := make([]uuid.UUID, 0, len(replicas)+1)
	for _, replica := range replicas {
		if replica.OwnerID == selfID {
			continue
		}
		members = append(members, replica.OwnerID)
	}
	members = append(members, selfID)

	ownReplica := model.Circle{
		ID:      uuid.New(),
		OwnerID: selfID,
		Name:    model.PublicCircleName,
		Members: members,
		PostIDs: []uuid.UUID{},
	}
	if _, err := s.circleStore.Create(ctx, ownReplica); err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		return fmt.Errorf("failed to create public replica: %w", err)
	}

	completed := []string{"create own replica"}
	for _, replica := range replicas {
		if replica.OwnerID == selfID {
			continue
		}
		if err := s.circleStore.AddMember(ctx, replica.OwnerID, model.PublicCircleName, selfID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return &model.PartialCascadeError{
				Op:        "join public circle",
				Step:      fmt.Sprintf("update replica of %s", replica.OwnerID),
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, fmt.Sprintf("update replica of %s", replica.OwnerID))
	}

	return nil
}

// RemoveUserEverywhere strips the user from every replica listing them and
// deletes all replicas they own. Every step is ensure-absent; the account
// deletion cascade re-runs it freely.
func (s *Circle) RemoveUserEverywhere(ctx context.Context, userID uuid.UUID) error {
	replicas, err := s.circleStore.ListByMember(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list circles by member: %w", err)
	}

	var completed []string
	for _, replica := range replicas {
		if replica.OwnerID == userID {
			continue
		}
		if err := s.circleStore.RemoveMember(ctx, replica.OwnerID, replica.Name, userID); err != nil {
			return &model.PartialCascadeError{
				Op:        "remove user from circles",
				Step:      fmt.Sprintf("update %s replica of %s", replica.Name, replica.OwnerID),
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, fmt.Sprintf("update %s replica of %s", replica.Name, replica.OwnerID))
	}

	if err := s.circleStore.DeleteAllByOwner(ctx, userID); err != nil {
		return &model.PartialCascadeError{
			Op:        "remove user from circles",
			Step:      "delete own replicas",
			Completed: completed,
			Err:       err,
		}
	}

	return nil
}

// fanOutOrder returns members with selfID moved to the end. The requester's
// replica is the one the precondition check reads, updating it last keeps an
// interrupted add retryable.
func fanOutOrder(members []uuid.UUID, selfID uuid.UUID) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(members))
	hasSelf := false
	for _, id := range members {
		if id == selfID {
			hasSelf = true
			continue
		}
		ordered = append(ordered, id)
	}
	if hasSelf {
		ordered = append(ordered, selfID)
	}
	return ordered
}
