package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
)

// writeError maps a service error onto the response contract. A
// PartialCascadeError maps to 502 so the caller knows the identical request
// is safe to retry; the body names the interrupted step.
func writeError(c *gin.Context, l *logger.Logger, err error) {
	var cascadeErr *model.PartialCascadeError
	if errors.As(err, &cascadeErr) {
		l.Error("cascade interrupted",
			"op", cascadeErr.Op,
			"step", cascadeErr.Step,
			"error", cascadeErr.Err,
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     cascadeErr.Error(),
			"op":        cascadeErr.Op,
			"step":      cascadeErr.Step,
			"completed": cascadeErr.Completed,
			"retryable": true,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrCircleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrSelfFollow), errors.Is(err, model.ErrNotAFollower):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, model.ErrAlreadyExists),
		errors.Is(err, model.ErrAlreadyFollowing),
		errors.Is(err, model.ErrNotFollowing),
		errors.Is(err, model.ErrDuplicateName),
		errors.Is(err, model.ErrAlreadyMember):
		status = http.StatusConflict
	case errors.Is(err, model.ErrPermissionDenied):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		l.Error("request failed", "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
