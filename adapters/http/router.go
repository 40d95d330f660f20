package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/meetapp/pkg/logger"
)

type RouterDeps struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Files          *FileHandler
	Meetups        *MeetupHandler
	AuthMiddleware gin.HandlerFunc
	Logger         logger.Logger
}

func NewRouter(d RouterDeps, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.Use(ErrorMiddleware(d.Logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/users", d.Users.CreateUser)
		api.POST("/sessions", d.Auth.Login)

		private := api.Group("/")
		private.Use(d.AuthMiddleware)
		{
			private.PUT("/users", d.Users.UpdateUser)
			private.POST("/files", d.Files.UploadFile)
			private.GET("/meetups", d.Meetups.ListMeetups)
			private.GET("/meetups/:id", d.Meetups.GetMeetup)
		}
	}

	return router
}
