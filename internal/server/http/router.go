package http

import (
	"net/http"

	"github.com/dmitrijs2005/aitutor/internal/server/http/middleware"
	"github.com/dmitrijs2005/aitutor/internal/server/services"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the public and session-protected routes.
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(h.log))
	if len(corsOrigins) > 0 {
		r.Use(middleware.CORS(corsOrigins))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	api.POST("/auth/signup", h.signUp)
	api.POST("/auth/signin", h.signIn)

	authed := api.Group("", middleware.RequireAuth(h.accounts.Authenticate))
	{
		authed.POST("/usage/check", h.usageCheck)
		authed.POST("/usage", h.usageRead)

		authed.POST("/stats", h.statsGet)
		authed.POST("/stats/login", h.statsLogin)
		authed.POST("/stats/quiz", h.statsQuiz)
		authed.POST("/stats/topic", h.statsTopic)

		authed.POST("/badges", h.badgesList)
		authed.POST("/badges/update", h.badgesUpdate)

		authed.POST("/joined", h.joined)

		tutor := authed.Group("/tutor")
		tutor.GET("/health", h.tutorHealth)
		tutor.POST("/:mode/intro", h.tutorRoute(services.ActionIntro, h.tutorIntro))
		tutor.POST("/:mode/chat", h.tutorRoute(services.ActionChat, h.tutorChat))
		tutor.POST("/:mode/quiz/start", h.tutorRoute(services.ActionQuizStart, h.tutorQuizStart))
		tutor.POST("/:mode/quiz/submit", h.tutorRoute(services.ActionQuizSubmit, h.tutorQuizSubmit))
		tutor.POST("/:mode/continue", h.tutorRoute(services.ActionContinue, h.tutorContinue))
		tutor.POST("/:mode/memory/clear", h.tutorRoute(services.ActionClear, h.tutorClear))
		tutor.POST("/:mode/upload", h.tutorUpload)
	}

	return r
}
