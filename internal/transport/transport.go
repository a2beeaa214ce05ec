package transport

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wtchen/clubroll/internal/transport/middleware"
)

func InitRoutes(
	webhookHandler *WebhookHandler,
	eventHandler *EventHandler,
	memberHandler *MemberHandler,
	adminAuth gin.HandlerFunc,
) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// LINE webhook entry
	router.POST("/callback", webhookHandler.Callback)

	// Admin API routes
	api := router.Group("/api/v1/admin")
	api.Use(adminAuth)
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/next", eventHandler.NextDueEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.POST("/:id/publish", eventHandler.PublishEvent)
			events.GET("/:id/stats", eventHandler.EventStats)
		}

		members := api.Group("/members")
		{
			members.GET("", memberHandler.ListMembers)
			members.PUT("/:id", memberHandler.UpdateMember)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "clubroll attendance bot",
		})
	})

	return router
}
