package checkout

import (
	"busbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCheckoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	co := rg.Group("/checkout")
	co.Use(middleware.BearerToken())
	{
		// Steps, in order; each receives the prior step's draft payload
		co.POST("/seats", controller.ConfirmSeats)       // POST /api/v1/checkout/seats
		co.POST("/points", controller.SetPoints)         // POST /api/v1/checkout/points
		co.POST("/passengers", controller.SetPassengers) // POST /api/v1/checkout/passengers
		co.POST("/review", controller.Review)            // POST /api/v1/checkout/review

		// Coupons act on the reviewed draft
		co.POST("/coupon", controller.ApplyCoupon)          // POST /api/v1/checkout/coupon
		co.POST("/coupon/remove", controller.RemoveCoupon)  // POST /api/v1/checkout/coupon/remove
	}
}
