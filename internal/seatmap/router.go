package seatmap

import (
	"busbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatMapRoutes(rg *gin.RouterGroup, controller *Controller) {
	trips := rg.Group("/trips")
	trips.Use(middleware.BearerToken())
	{
		trips.GET("/:tripId/seatmap", controller.GetSeatMap) // GET /api/v1/trips/:tripId/seatmap?from=&to=
	}
}
