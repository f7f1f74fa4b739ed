package history

import (
	"errors"
	"net/http"
	"strconv"

	"busbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListBookings returns the device-local booking history, newest first
func (c *Controller) ListBookings(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	records, total, err := c.service.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": records,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	}, nil)
}

// GetBooking returns one booking record by its booking reference
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingRef := ctx.Param("bookingRef")
	if bookingRef == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	record, err := c.service.GetByRef(ctx.Request.Context(), bookingRef)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", record, nil)
}
