package checkout

import (
	"errors"
	"net/http"

	"busbook/internal/selection"
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

// Each step request carries the draft threaded from the previous step
// together with the step's own input.
type pointsRequest struct {
	Draft           Draft  `json:"draft" binding:"required"`
	BoardingPointID string `json:"boardingPointId" binding:"required"`
	DroppingPointID string `json:"droppingPointId" binding:"required"`
}

type passengersRequest struct {
	Draft      Draft       `json:"draft" binding:"required"`
	Passengers []Passenger `json:"passengers" binding:"required"`
}

type reviewRequest struct {
	Draft         Draft  `json:"draft" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

type couponRequest struct {
	Draft Draft  `json:"draft" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type removeCouponRequest struct {
	Draft Draft `json:"draft" binding:"required"`
}

// ConfirmSeats finalizes seat selection and produces the initial draft
func (c *Controller) ConfirmSeats(ctx *gin.Context) {
	var req ConfirmSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, err := c.service.ConfirmSeats(ctx.Request.Context(), req)
	if err != nil {
		respondStepError(ctx, "Failed to confirm seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats confirmed", gin.H{"draft": draft}, nil)
}

// SetPoints records boarding and dropping points on the draft
func (c *Controller) SetPoints(ctx *gin.Context) {
	var req pointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, err := c.service.SetPoints(ctx.Request.Context(), req.Draft, req.BoardingPointID, req.DroppingPointID)
	if err != nil {
		respondStepError(ctx, "Failed to set route points", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Route points set", gin.H{"draft": draft}, nil)
}

// SetPassengers records one passenger per selected seat
func (c *Controller) SetPassengers(ctx *gin.Context) {
	var req passengersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, err := c.service.SetPassengers(ctx.Request.Context(), req.Draft, req.Passengers)
	if err != nil {
		respondStepError(ctx, "Failed to set passengers", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Passengers set", gin.H{"draft": draft}, nil)
}

// Review returns the fare quote for the completed draft
func (c *Controller) Review(ctx *gin.Context) {
	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, quote, err := c.service.Review(ctx.Request.Context(), req.Draft, req.PaymentMethod)
	if err != nil {
		respondStepError(ctx, "Failed to review booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking reviewed", gin.H{"draft": draft, "quote": quote}, nil)
}

// ApplyCoupon validates a coupon code against the backend
func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	var req couponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, quote, err := c.service.ApplyCoupon(ctx.Request.Context(), req.Draft, req.Code)
	if err != nil {
		respondStepError(ctx, "Failed to apply coupon", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon applied", gin.H{"draft": draft, "quote": quote}, nil)
}

// RemoveCoupon clears the active coupon
func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	var req removeCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	draft, quote, err := c.service.RemoveCoupon(ctx.Request.Context(), req.Draft)
	if err != nil {
		respondStepError(ctx, "Failed to remove coupon", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon removed", gin.H{"draft": draft, "quote": quote}, nil)
}

// respondStepError maps checkout errors onto the error taxonomy: validation
// problems are 400, state-consistency failures 409 (go back, don't guess),
// unreachable backend 503, structured backend rejections 422 with the
// backend's message verbatim.
func respondStepError(ctx *gin.Context, message string, err error) {
	statusCode := http.StatusBadRequest

	switch {
	case errors.Is(err, ErrDraftUnrecoverable),
		errors.Is(err, ErrSeatPassengerMismatch),
		errors.Is(err, selection.ErrUnresolvedSeat):
		statusCode = http.StatusConflict
	case errors.Is(err, ErrPaymentInProgress):
		statusCode = http.StatusConflict
	case errors.Is(err, selection.ErrSeatBooked):
		statusCode = http.StatusUnprocessableEntity
	case upstream.IsBackendRejection(err):
		statusCode = http.StatusUnprocessableEntity
	case upstream.IsUnreachable(err):
		statusCode = http.StatusServiceUnavailable
	}

	response.RespondJSON(ctx, "error", statusCode, message, nil, err.Error())
}
