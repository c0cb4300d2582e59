package routes

import (
	"time"

	"closetcircle/handlers"
	"closetcircle/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the chat assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		// Anonymous chats are allowed; a bearer token, when sent, must be valid.
		api.Use(middleware.OptionalIdentityMiddleware())
		api.POST("/message", hb.MessageHandler)
		api.POST("/search", hb.SearchHandler)
		api.POST("/next", hb.NextHandler)
		api.POST("/book", hb.BookHandler)
		api.POST("/identity", hb.IdentityHandler)
		api.DELETE("/session/:conversationId", hb.ResetSessionHandler)
		if hb.EventsHandler != nil {
			api.GET("/events", hb.EventsHandler)
		}
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowsAny(allowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterAssistantRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
