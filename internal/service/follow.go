package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// Follow maintains the bidirectional follow graph. Every mutation is a pair
// of independent single-record writes with set semantics, so a retry of a
// partially applied request converges to the symmetric state.
type Follow struct {
	followStore model.FollowStore
	userStore   model.UserStore
	logger      *logger.Logger
}

func NewFollow(
	followStore model.FollowStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Follow {
	return &Follow{
		followStore: followStore,
		userStore:   userStore,
		logger:      logger,
	}
}

// CreateEdge creates the user's empty edge record.
func (s *Follow) CreateEdge(ctx context.Context, userID uuid.UUID) (model.FollowEdge, error) {
	edge := model.FollowEdge{
		ID:        uuid.New(),
		UserID:    userID,
		Followers: []uuid.UUID{},
		Following: []uuid.UUID{},
	}

	savedEdge, err := s.followStore.Create(ctx, edge)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.FollowEdge{}, model.ErrAlreadyExists
	}
	if err != nil {
		return model.FollowEdge{}, fmt.Errorf("failed to create follow edge: %w", err)
	}

	return savedEdge, nil
}

func (s *Follow) Get(ctx context.Context, userID uuid.UUID) (model.FollowEdge, error) {
	edge, err := s.followStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.FollowEdge{}, model.ErrNotFound
		}
		return model.FollowEdge{}, fmt.Errorf("failed to get follow edge: %w", err)
	}

	return edge, nil
}

func (s *Follow) GetByUsername(ctx context.Context, username string) (model.FollowEdge, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.FollowEdge{}, model.ErrNotFound
		}
		return model.FollowEdge{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return s.Get(ctx, user.ID)
}

// IsFollowing reports whether the caller currently follows the named user.
func (s *Follow) IsFollowing(ctx context.Context, selfID uuid.UUID, otherUsername string) (bool, error) {
	other, err := s.userStore.GetByUsername(ctx, otherUsername)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrNotFound
		}
		return false, fmt.Errorf("failed to get user by username: %w", err)
	}

	edge, err := s.followStore.GetByUserID(ctx, selfID)
	if err != nil {
		return false, fmt.Errorf("failed to get follow edge: %w", err)
	}

	return edge.IsFollowing(other.ID), nil
}

// Follow adds the named user to the caller's following set and the caller to
// the named user's followers set. The caller's own side is written last: the
// precondition check reads it, so a retry of an interrupted request passes
// the check again and the guarded set writes converge without duplicates.
func (s *Follow) Follow(ctx context.Context, selfID uuid.UUID, otherUsername string) (model.FollowEdge, error) {
	other, err := s.resolveOther(ctx, selfID, otherUsername)
	if err != nil {
		return model.FollowEdge{}, err
	}

	edge, err := s.followStore.GetByUserID(ctx, selfID)
	if err != nil {
		return model.FollowEdge{}, fmt.Errorf("failed to get follow edge: %w", err)
	}
	if edge.IsFollowing(other.ID) {
		return model.FollowEdge{}, model.ErrAlreadyFollowing
	}

	if err := s.followStore.AddFollower(ctx, other.ID, selfID); err != nil {
		return model.FollowEdge{}, fmt.Errorf("failed to add follower: %w", err)
	}

	if err := s.followStore.AddFollowing(ctx, selfID, other.ID); err != nil {
		s.logger.Error("follow left asymmetric, caller must retry",
			"self", selfID, "other", other.ID, "error", err)
		return model.FollowEdge{}, &model.PartialCascadeError{
			Op:        "follow",
			Step:      "add following",
			Completed: []string{"add follower"},
			Err:       err,
		}
	}

	return s.followStore.GetByUserID(ctx, selfID)
}

// Unfollow is the symmetric removal.
func (s *Follow) Unfollow(ctx context.Context, selfID uuid.UUID, otherUsername string) (model.FollowEdge, error) {
	other, err := s.resolveOther(ctx, selfID, otherUsername)
	if err != nil {
		return model.FollowEdge{}, err
	}

	edge, err := s.followStore.GetByUserID(ctx, selfID)
	if err != nil {
		return model.FollowEdge{}, fmt.Errorf("failed to get follow edge: %w", err)
	}
	if !edge.IsFollowing(other.ID) {
		return model.FollowEdge{}, model.ErrNotFollowing
	}

	if err := s.followStore.RemoveFollower(ctx, other.ID, selfID); err != nil {
		return model.FollowEdge{}, fmt.Errorf("failed to remove follower: %w", err)
	}

	if err := s.followStore.RemoveFollowing(ctx, selfID, other.ID); err != nil {
		s.logger.Error("unfollow left asymmetric, caller must retry",
			"self", selfID, "other", other.ID, "error", err)
		return model.FollowEdge{}, &model.PartialCascadeError{
			Op:        "unfollow",
			Step:      "remove following",
			Completed: []string{"remove follower"},
			Err:       err,
		}
	}

	return s.followStore.GetByUserID(ctx, selfID)
}

// RemoveUserEverywhere strips the user out of every other edge record and
// deletes their own. Both steps are ensure-absent, the account deletion
// cascade re-runs them freely.
func (s *Follow) RemoveUserEverywhere(ctx context.Context, userID uuid.UUID) error {
	if err := s.followStore.RemoveFromAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to remove user from edges: %w", err)
	}

	if err := s.followStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	return nil
}

func (s *Follow) resolveOther(ctx context.Context, selfID uuid.UUID, otherUsername string) (model.User, error) {
	self, err := s.userStore.GetByID(ctx, selfID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if self.Username == otherUsername {
		return model.User{}, model.ErrSelfFollow
	}

	other, err := s.userStore.GetByUsername(ctx, otherUsername)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	if other.ID == selfID {
		return model.User{}, model.ErrSelfFollow
	}

	return other, nil
}
