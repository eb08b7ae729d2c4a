package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/service"
)

// FollowHandler serves the follow graph routes.
type FollowHandler struct {
	follow *service.Follow
	logger *logger.Logger
}

// NewFollowHandler creates a FollowHandler.
func NewFollowHandler(follow *service.Follow, l *logger.Logger) *FollowHandler {
	return &FollowHandler{follow: follow, logger: l}
}

// Get returns the caller's follow edge record.
func (h *FollowHandler) Get(c *gin.Context) {
	edge, err := h.follow.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFollowEdgeResponse(edge))
}

// GetByUsername returns another user's follow edge record.
func (h *FollowHandler) GetByUsername(c *gin.Context) {
	edge, err := h.follow.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFollowEdgeResponse(edge))
}

type followRequest struct {
	Username string `json:"username"`
}

// Follow adds the named user to the caller's following list and the caller
// to the named user's followers list.
func (h *FollowHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must not be empty"})
		return
	}

	edge, err := h.follow.Follow(c.Request.Context(), currentUser(c), req.Username)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFollowEdgeResponse(edge))
}

// Unfollow removes the mutual references between the caller and the named
// user.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	edge, err := h.follow.Unfollow(c.Request.Context(), currentUser(c), c.Param("username"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFollowEdgeResponse(edge))
}
