package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/service"
)

// StudioHandler serves the studio attachment routes.
type StudioHandler struct {
	studio *service.Studio
	logger *logger.Logger
}

// NewStudioHandler creates a StudioHandler.
func NewStudioHandler(studio *service.Studio, l *logger.Logger) *StudioHandler {
	return &StudioHandler{studio: studio, logger: l}
}

type studioRequest struct {
	Font  *string `json:"font"`
	Color *string `json:"color"`
}

func postID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return uuid.Nil, false
	}
	return id, true
}

// Attach creates the customization attachment for the caller's post.
func (h *StudioHandler) Attach(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req studioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studio, err := h.studio.Attach(c.Request.Context(), currentUser(c), id, service.StudioParams{
		Font:  req.Font,
		Color: req.Color,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toStudioResponse(studio))
}

// Get returns the attachment for a post.
func (h *StudioHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	studio, err := h.studio.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toStudioResponse(studio))
}

// ListByAuthor lists the attachments on every post authored by the named
// user.
func (h *StudioHandler) ListByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author must not be empty"})
		return
	}
	studios, err := h.studio.ListByAuthor(c.Request.Context(), author)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toStudioResponses(studios))
}

// Update replaces the attachment's font and color.
func (h *StudioHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req studioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studio, err := h.studio.Update(c.Request.Context(), currentUser(c), id, service.StudioParams{
		Font:  req.Font,
		Color: req.Color,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toStudioResponse(studio))
}

// Remove deletes the attachment from the caller's post.
func (h *StudioHandler) Remove(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.studio.Remove(c.Request.Context(), currentUser(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
