package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/service"
)

// CircleHandler serves the circle routes.
type CircleHandler struct {
	circle *service.Circle
	logger *logger.Logger
}

// NewCircleHandler creates a CircleHandler.
func NewCircleHandler(circle *service.Circle, l *logger.Logger) *CircleHandler {
	return &CircleHandler{circle: circle, logger: l}
}

type createCircleRequest struct {
	Name string `json:"name"`
}

// Create creates the caller's replica of a new circle.
func (h *CircleHandler) Create(c *gin.Context) {
	var req createCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
		return
	}

	circle, err := h.circle.Create(c.Request.Context(), currentUser(c), req.Name)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCircleResponse(circle))
}

// List returns the caller's circle replicas sorted by name. With a username
// query parameter it lists another user's replicas instead.
func (h *CircleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if username := c.Query("username"); username != "" {
		list, listErr := h.circle.ListByUsername(ctx, username)
		if listErr != nil {
			writeError(c, h.logger, listErr)
			return
		}
		c.JSON(http.StatusOK, toCircleResponses(list))
		return
	}

	list, err := h.circle.List(ctx, currentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCircleResponses(list))
}

// Find returns the caller's replica of the named circle.
func (h *CircleHandler) Find(c *gin.Context) {
	circle, err := h.circle.Find(c.Request.Context(), currentUser(c), c.Param("name"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCircleResponse(circle))
}

type addMemberRequest struct {
	Username string `json:"username"`
}

// AddMember invites a follower into the named circle and fans the new
// membership out to every replica.
func (h *CircleHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must not be empty"})
		return
	}

	circle, err := h.circle.AddMember(c.Request.Context(), currentUser(c), c.Param("name"), req.Username)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCircleResponse(circle))
}

// Leave removes the caller from the named circle on every replica and
// deletes the caller's own replica.
func (h *CircleHandler) Leave(c *gin.Context) {
	if err := h.circle.Leave(c.Request.Context(), currentUser(c), c.Param("name")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}
