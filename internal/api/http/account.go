package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/service"
)

// AccountHandler serves registration and account deletion.
type AccountHandler struct {
	account *service.Account
	logger  *logger.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(account *service.Account, l *logger.Logger) *AccountHandler {
	return &AccountHandler{account: account, logger: l}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Register creates the account and bootstraps its follow edge, profile and
// public circle membership.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must not be empty"})
		return
	}

	user, err := h.account.Register(c.Request.Context(), req.Username, req.Name)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Delete runs the account deletion cascade for the caller.
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.account.Delete(c.Request.Context(), currentUser(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
