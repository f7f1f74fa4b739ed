package authtoken

import (
	"github.com/gin-gonic/gin"
)

func SetupAuthTokenRoutes(rg *gin.RouterGroup, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/token", controller.SaveToken)    // POST /api/v1/auth/token
		auth.GET("/session", controller.GetSession)  // GET /api/v1/auth/session
		auth.DELETE("/token", controller.ClearToken) // DELETE /api/v1/auth/token
	}
}
