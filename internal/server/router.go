package server

import (
	"net/http"

	"auction-room/services/room/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(roomHandler *handler.RoomHandler, wsHandler *handler.WSHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/ws", wsHandler.ServeWS)

	api := router.Group("/api")
	{
		api.GET("/bids", roomHandler.GetBidsHandler)
		api.GET("/highest-bidder", roomHandler.GetHighestBidHandler)
		api.GET("/users", roomHandler.GetUsersHandler)
		api.GET("/timer", roomHandler.GetTimerHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
