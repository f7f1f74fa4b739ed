package history

import (
	"github.com/gin-gonic/gin"
)

func SetupHistoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", controller.ListBookings)           // GET /api/v1/bookings
		bookings.GET("/:bookingRef", controller.GetBooking) // GET /api/v1/bookings/:bookingRef
	}
}
