package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) newRouter() (r *gin.Engine) {
	r = gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.log))

	if len(s.allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.allowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthcheck", s.healthCheck)

	if s.staticDir != "" {
		r.Static("/widget", s.staticDir)
	}

	api := r.Group("/api")
	{
		api.GET("/topics", s.listTopics)
		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.endSession)
		api.GET("/sessions/:id/events", s.streamEvents)

		submit := api.Group("/sessions/:id")
		if s.limiter != nil {
			submit.Use(s.limiter.middleware(s.log))
		}
		submit.POST("/messages", s.submitMessage)
		submit.POST("/chips/:topic", s.clickChip)
	}

	return r
}
