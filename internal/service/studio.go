package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// StudioParams carries the customization fields; nil means leave unchanged.
type StudioParams struct {
	Font  *string
	Color *string
}

// Studio manages the one-to-one customization attachments. Only the post's
// author may touch them, and every mutation also touches the parent post's
// modification timestamp.
type Studio struct {
	studioStore model.StudioStore
	postStore   model.PostStore
	userStore   model.UserStore
	logger      *logger.Logger
}

func NewStudio(
	studioStore model.StudioStore,
	postStore model.PostStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Studio {
	return &Studio{
		studioStore: studioStore,
		postStore:   postStore,
		userStore:   userStore,
		logger:      logger,
	}
}

// Attach creates the attachment for a post on first customization.
func (s *Studio) Attach(ctx context.Context, selfID, postID uuid.UUID, params StudioParams) (model.Studio, error) {
	if err := s.authorize(ctx, selfID, postID); err != nil {
		return model.Studio{}, err
	}

	now := time.Now().UTC()
	studio := model.Studio{
		ID:           uuid.New(),
		PostID:       postID,
		DateModified: now,
	}
	if params.Font != nil {
		studio.Font = *params.Font
	}
	if params.Color != nil {
		studio.Color = *params.Color
	}

	savedStudio, err := s.studioStore.Create(ctx, studio)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Studio{}, model.ErrAlreadyExists
	}
	if err != nil {
		return model.Studio{}, fmt.Errorf("failed to create studio: %w", err)
	}

	if err := s.postStore.TouchModified(ctx, postID, now); err != nil {
		return model.Studio{}, fmt.Errorf("failed to touch post: %w", err)
	}

	return savedStudio, nil
}

// Get returns the attachment for a post.
func (s *Studio) Get(ctx context.Context, postID uuid.UUID) (model.Studio, error) {
	studio, err := s.studioStore.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Studio{}, model.ErrNotFound
		}
		return model.Studio{}, fmt.Errorf("failed to get studio: %w", err)
	}

	return studio, nil
}

// ListByAuthor returns the attachments on all posts authored by the named user.
func (s *Studio) ListByAuthor(ctx context.Context, username string) ([]model.Studio, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	postIDs, err := s.postStore.ListAuthoredBy(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list authored posts: %w", err)
	}

	studios, err := s.studioStore.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list studios: %w", err)
	}

	return studios, nil
}

// Update changes font and/or color on an existing attachment.
func (s *Studio) Update(ctx context.Context, selfID, postID uuid.UUID, params StudioParams) (model.Studio, error) {
	if err := s.authorize(ctx, selfID, postID); err != nil {
		return model.Studio{}, err
	}

	studio, err := s.studioStore.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Studio{}, model.ErrNotFound
		}
		return model.Studio{}, fmt.Errorf("failed to get studio: %w", err)
	}

	if params.Font != nil {
		studio.Font = *params.Font
	}
	if params.Color != nil {
		studio.Color = *params.Color
	}
	studio.DateModified = time.Now().UTC()

	savedStudio, err := s.studioStore.Update(ctx, studio)
	if err != nil {
		return model.Studio{}, fmt.Errorf("failed to update studio: %w", err)
	}

	if err := s.postStore.TouchModified(ctx, postID, studio.DateModified); err != nil {
		return model.Studio{}, fmt.Errorf("failed to touch post: %w", err)
	}

	return savedStudio, nil
}

// Remove deletes the attachment; the post itself stays and gets its
// timestamp touched.
func (s *Studio) Remove(ctx context.Context, selfID, postID uuid.UUID) error {
	if err := s.authorize(ctx, selfID, postID); err != nil {
		return err
	}

	if err := s.studioStore.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete studio: %w", err)
	}

	if err := s.postStore.TouchModified(ctx, postID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to touch post: %w", err)
	}

	return nil
}

// RemoveAllForAuthor deletes the attachments on every post the user
// authored. Ensure absent, used by the account deletion cascade.
func (s *Studio) RemoveAllForAuthor(ctx context.Context, userID uuid.UUID) error {
	postIDs, err := s.postStore.ListAuthoredBy(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list authored posts: %w", err)
	}
	if len(postIDs) == 0 {
		return nil
	}

	if err := s.studioStore.DeleteByPostIDs(ctx, postIDs); err != nil {
		return fmt.Errorf("failed to delete studios: %w", err)
	}

	return nil
}

func (s *Studio) authorize(ctx context.Context, selfID, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post.AuthorID != selfID {
		return model.ErrPermissionDenied
	}

	return nil
}
