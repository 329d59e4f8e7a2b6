package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/michaeljabbour/openai-images-mcp/controllers"
	"github.com/michaeljabbour/openai-images-mcp/metrics"
	"github.com/michaeljabbour/openai-images-mcp/middlewares"
)

func SetupRouter(images *controllers.ImageController, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(log), gin.Recovery())

	r.POST("/images/turn", images.HandleTurn)

	r.GET("/conversations", images.ListConversations)
	r.GET("/conversations/search", images.SearchConversations)
	r.GET("/conversations/stats", images.StoreStats)
	r.GET("/conversations/:id", images.GetConversation)
	r.DELETE("/conversations/:id", images.DeleteConversation)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
