package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// FollowGraph is the slice of the follow service the account lifecycle needs.
type FollowGraph interface {
	CreateEdge(ctx context.Context, userID uuid.UUID) (model.FollowEdge, error)
	RemoveUserEverywhere(ctx context.Context, userID uuid.UUID) error
}

// CircleGraph is the slice of the circle service the account lifecycle needs.
type CircleGraph interface {
	JoinPublic(ctx context.Context, userID uuid.UUID) error
	RemoveUserEverywhere(ctx context.Context, userID uuid.UUID) error
}

// ProfileAggregate is the slice of the profile service the account lifecycle needs.
type ProfileAggregate interface {
	Create(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

// StudioAttachments is the slice of the studio service the account lifecycle needs.
type StudioAttachments interface {
	RemoveAllForAuthor(ctx context.Context, userID uuid.UUID) error
}

// Account choreographs the multi-store lifecycle operations: registration
// bootstrap and the deletion cascade. Neither is atomic; every step is
// individually idempotent so an interrupted run is finished by retrying the
// identical request.
type Account struct {
	userStore model.UserStore
	postStore model.PostStore
	follows   FollowGraph
	circles   CircleGraph
	profiles  ProfileAggregate
	studios   StudioAttachments
	logger    *logger.Logger
}

func NewAccount(
	userStore model.UserStore,
	postStore model.PostStore,
	follows FollowGraph,
	circles CircleGraph,
	profiles ProfileAggregate,
	studios StudioAttachments,
	logger *logger.Logger,
) *Account {
	return &Account{
		userStore: userStore,
		postStore: postStore,
		follows:   follows,
		circles:   circles,
		profiles:  profiles,
		studios:   studios,
		logger:    logger,
	}
}

// Register creates the account and bootstraps its records: empty follow
// edge, empty profile, membership of the public circle. The bootstrap steps
// tolerate already-present records, so a partially registered account can be
// finished by retrying.
func (s *Account) Register(ctx context.Context, username, name string) (model.User, error) {
	user, err := s.userStore.Create(ctx, model.User{
		ID:       uuid.New(),
		Username: username,
		Name:     name,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, model.ErrAlreadyExists
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	completed := []string{"create user"}

	if _, err := s.follows.CreateEdge(ctx, user.ID); err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		return user, &model.PartialCascadeError{
			Op:        "register",
			Step:      "create follow edge",
			Completed: completed,
			Err:       err,
		}
	}
	completed = append(completed, "create follow edge")

	if _, err := s.profiles.Create(ctx, user.ID); err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		return user, &model.PartialCascadeError{
			Op:        "register",
			Step:      "create profile",
			Completed: completed,
			Err:       err,
		}
	}
	completed = append(completed, "create profile")

	if err := s.circles.JoinPublic(ctx, user.ID); err != nil {
		return user, &model.PartialCascadeError{
			Op:        "register",
			Step:      "join public circle",
			Completed: completed,
			Err:       err,
		}
	}

	s.logger.Info("registered account", "user", user.ID, "username", username)

	return user, nil
}

// Delete runs the account deletion cascade. Step order minimizes dangling
// references: graph edges first, then circle replicas, then the derived
// records, authored posts last. Every step is ensure-absent; a failure
// surfaces as PartialCascadeError and the identical call re-runs the
// remaining steps.
func (s *Account) Delete(ctx context.Context, userID uuid.UUID) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"remove follow edges", func(ctx context.Context) error {
			return s.follows.RemoveUserEverywhere(ctx, userID)
		}},
		{"remove circle replicas", func(ctx context.Context) error {
			return s.circles.RemoveUserEverywhere(ctx, userID)
		}},
		{"delete profile", func(ctx context.Context) error {
			return s.profiles.Remove(ctx, userID)
		}},
		{"delete studio attachments", func(ctx context.Context) error {
			return s.studios.RemoveAllForAuthor(ctx, userID)
		}},
		{"delete authored posts", func(ctx context.Context) error {
			_, err := s.postStore.DeleteAuthoredBy(ctx, userID)
			return err
		}},
	}

	var completed []string
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			s.logger.Error("account deletion cascade interrupted, caller must retry",
				"user", userID, "step", step.name, "error", err)
			return &model.PartialCascadeError{
				Op:        "delete account",
				Step:      step.name,
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, step.name)
	}

	s.logger.Info("account deletion cascade complete", "user", userID)

	return nil
}
