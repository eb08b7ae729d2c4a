// Package http exposes the service layer over HTTP/JSON with gin. Handlers
// translate pre-validated requests into service calls and map the error
// kinds onto stable status codes; no business rule lives here.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/logger"
)

// userIDHeader carries the pre-validated caller identity. Session handling
// lives outside this service.
const userIDHeader = "X-User-ID"

const currentUserKey = "currentUserID"

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// RequireUser extracts the caller identity from the X-User-ID header and
// aborts with 400 when it is missing or malformed.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + userIDHeader + " header"})
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + userIDHeader + " header"})
			return
		}
		c.Set(currentUserKey, id)
		c.Next()
	}
}

func currentUser(c *gin.Context) uuid.UUID {
	return c.MustGet(currentUserKey).(uuid.UUID)
}
