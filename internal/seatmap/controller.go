package seatmap

import (
	"net/http"

	"busbook/internal/shared/utils/response"
	"busbook/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap returns the normalized, laid-out seat map for a trip+route pair
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	fromStopID := ctx.Query("from")
	toStopID := ctx.Query("to")
	if tripID == "" || fromStopID == "" || toStopID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID and from/to stop IDs are required", nil, nil)
		return
	}

	view, err := c.service.GetSeatMap(ctx.Request.Context(), tripID, fromStopID, toStopID)
	if err != nil {
		statusCode := http.StatusBadGateway
		if upstream.IsBackendRejection(err) {
			statusCode = http.StatusUnprocessableEntity
		} else if upstream.IsUnreachable(err) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to load seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", view, nil)
}
