package server

import (
	handler "bid-reconciler/services/tracking/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(trackingService handler.TrackingServiceInterface) *gin.Engine {
	router := gin.New() // no default middleware, logging goes through logrus

	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware)
	router.Use(RequestLoggerMiddleware)

	trackingHandler := handler.NewTrackingHandler(trackingService)

	bids := router.Group("/bids")
	{
		bids.POST("", trackingHandler.LogBidHandler)
	}

	companies := router.Group("/companies")
	{
		companies.GET("/:company_id/bids", trackingHandler.ListCompanyBidsHandler)
	}

	scraper := router.Group("/scraper")
	{
		scraper.GET("/health", trackingHandler.HealthHandler)
		scraper.GET("/stats", trackingHandler.StatsHandler)
		scraper.POST("/check/:bid_id", trackingHandler.CheckBidHandler)
	}

	return router
}
