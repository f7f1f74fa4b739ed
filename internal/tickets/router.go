package tickets

import (
	"busbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {
	ticketGroup := rg.Group("/tickets")
	ticketGroup.Use(middleware.BearerToken())
	{
		ticketGroup.GET("/:bookingGroupId", controller.DownloadTicket)      // GET /api/v1/tickets/:bookingGroupId
		ticketGroup.GET("/summary/:bookingRef", controller.DownloadSummary) // GET /api/v1/tickets/summary/:bookingRef
	}
}
