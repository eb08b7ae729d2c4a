package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nroshal/circlet-server/internal/logger"
)

// RouterConfig collects the handlers the router mounts.
type RouterConfig struct {
	Follow  *FollowHandler
	Circle  *CircleHandler
	Profile *ProfileHandler
	Studio  *StudioHandler
	Account *AccountHandler
	Logger  *logger.Logger
}

// NewRouter builds the gin engine with all routes mounted. Registration and
// the health check are the only routes that do not require a caller
// identity.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestLogger(cfg.Logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/users", cfg.Account.Register)

	authed := api.Group("")
	authed.Use(RequireUser())
	{
		authed.DELETE("/users", cfg.Account.Delete)

		authed.GET("/followers", cfg.Follow.Get)
		authed.GET("/followers/:username", cfg.Follow.GetByUsername)
		authed.POST("/followers", cfg.Follow.Follow)
		authed.DELETE("/followers/:username", cfg.Follow.Unfollow)

		authed.POST("/circles", cfg.Circle.Create)
		authed.GET("/circles", cfg.Circle.List)
		authed.GET("/circles/:name", cfg.Circle.Find)
		authed.PUT("/circles/:name/members", cfg.Circle.AddMember)
		authed.DELETE("/circles/:name", cfg.Circle.Leave)

		authed.GET("/profile", cfg.Profile.Get)
		authed.PUT("/profile", cfg.Profile.Update)

		authed.GET("/studio", cfg.Studio.ListByAuthor)
		authed.POST("/studio/:postID", cfg.Studio.Attach)
		authed.GET("/studio/:postID", cfg.Studio.Get)
		authed.PUT("/studio/:postID", cfg.Studio.Update)
		authed.DELETE("/studio/:postID", cfg.Studio.Remove)
	}

	return router
}
