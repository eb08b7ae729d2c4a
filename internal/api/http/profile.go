package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/service"
)

// ProfileHandler serves the profile routes.
type ProfileHandler struct {
	profile *service.Profile
	logger  *logger.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profile *service.Profile, l *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: l}
}

// Get returns the caller's composed profile view, or another user's with a
// username query parameter.
func (h *ProfileHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if username := c.Query("username"); username != "" {
		view, err := h.profile.GetByUsername(ctx, username)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, toProfileResponse(view))
		return
	}

	view, err := h.profile.Get(ctx, currentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(view))
}

type updateProfileRequest struct {
	Bio    *string    `json:"bio"`
	PostID *uuid.UUID `json:"post_id"`
}

// Update applies the only direct profile mutations: a bio edit and an
// authored post reference append.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Bio == nil && req.PostID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	view, err := h.profile.Update(c.Request.Context(), currentUser(c), service.UpdateProfileParams{
		Bio:          req.Bio,
		AppendPostID: req.PostID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(view))
}
