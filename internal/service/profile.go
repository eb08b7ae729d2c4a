package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// UpdateProfileParams carries the only two mutations a profile accepts.
type UpdateProfileParams struct {
	Bio          *string
	AppendPostID *uuid.UUID
}

// Profile serves the derived per-user aggregate. It is rebuilt from the
// identity, follow and post stores; reads resolve names on the fly and skip
// dangling references instead of failing.
type Profile struct {
	profileStore model.ProfileStore
	userStore    model.UserStore
	followStore  model.FollowStore
	postStore    model.PostStore
	logger       *logger.Logger
}

func NewProfile(
	profileStore model.ProfileStore,
	userStore model.UserStore,
	followStore model.FollowStore,
	postStore model.PostStore,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profileStore: profileStore,
		userStore:    userStore,
		followStore:  followStore,
		postStore:    postStore,
		logger:       logger,
	}
}

// Create composes a fresh profile from the other stores.
func (s *Profile) Create(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	edge, err := s.followStore.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get follow edge: %w", err)
	}

	postIDs, err := s.postStore.ListAuthoredBy(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to list authored posts: %w", err)
	}
	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}

	profile := model.Profile{
		ID:           uuid.New(),
		UserID:       userID,
		FollowEdgeID: edge.ID,
		Bio:          "",
		PostIDs:      postIDs,
	}

	savedProfile, err := s.profileStore.Create(ctx, profile)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Profile{}, model.ErrAlreadyExists
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return savedProfile, nil
}

// Get returns the profile with identity and name lists resolved.
func (s *Profile) Get(ctx context.Context, userID uuid.UUID) (model.ProfileView, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, model.ErrNotFound
		}
		return model.ProfileView{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return s.compose(ctx, profile)
}

// GetByUsername returns another user's resolved profile.
func (s *Profile) GetByUsername(ctx context.Context, username string) (model.ProfileView, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, model.ErrNotFound
		}
		return model.ProfileView{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return s.Get(ctx, user.ID)
}

// Update applies a bio edit and/or a post-id append, the only mutations the
// aggregate accepts directly.
func (s *Profile) Update(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (model.ProfileView, error) {
	if params.Bio != nil {
		if err := s.profileStore.SetBio(ctx, userID, *params.Bio); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ProfileView{}, model.ErrNotFound
			}
			return model.ProfileView{}, fmt.Errorf("failed to set bio: %w", err)
		}
	}

	if params.AppendPostID != nil {
		if err := s.profileStore.AppendPostID(ctx, userID, *params.AppendPostID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ProfileView{}, model.ErrNotFound
			}
			return model.ProfileView{}, fmt.Errorf("failed to append post id: %w", err)
		}
	}

	return s.Get(ctx, userID)
}

// Remove deletes the user's profile. Ensure absent, used by the account
// deletion cascade.
func (s *Profile) Remove(ctx context.Context, userID uuid.UUID) error {
	if err := s.profileStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}

func (s *Profile) compose(ctx context.Context, profile model.Profile) (model.ProfileView, error) {
	user, err := s.userStore.GetByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, model.ErrNotFound
		}
		return model.ProfileView{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	view := model.ProfileView{
		Profile:  profile,
		Username: user.Username,
		Name:     user.Name,
	}

	edge, err := s.followStore.GetByUserID(ctx, profile.UserID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.ProfileView{}, fmt.Errorf("failed to get follow edge: %w", err)
	}

	view.FollowerNames = s.resolveNames(ctx, edge.Followers)
	view.FollowingNames = s.resolveNames(ctx, edge.Following)

	return view, nil
}

// resolveNames maps user ids to usernames, dropping ids that no longer
// resolve. A dangling id is expected between cascade steps.
func (s *Profile) resolveNames(ctx context.Context, ids []uuid.UUID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		user, err := s.userStore.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Error("failed to resolve username", "id", id, "error", err)
			}
			continue
		}
		names = append(names, user.Username)
	}
	return names
}
