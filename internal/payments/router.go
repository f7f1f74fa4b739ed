package payments

import (
	"busbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	pay := rg.Group("/payments")
	pay.Use(middleware.BearerToken())
	{
		pay.POST("/initiate", controller.Initiate) // POST /api/v1/payments/initiate
		pay.POST("/complete", controller.Complete) // POST /api/v1/payments/complete
		pay.POST("/cancel", controller.Cancel)     // POST /api/v1/payments/cancel
	}
}
