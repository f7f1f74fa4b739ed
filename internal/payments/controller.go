package payments

import (
	"errors"
	"net/http"

	"busbook/internal/checkout"
	"busbook/internal/shared/utils/response"
	"busbook/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orchestrator Orchestrator
}

func NewController(orchestrator Orchestrator) *Controller {
	return &Controller{orchestrator: orchestrator}
}

type initiateRequest struct {
	Draft checkout.Draft `json:"draft" binding:"required"`
}

type completeRequest struct {
	Draft         checkout.Draft `json:"draft" binding:"required"`
	PaymentID     string         `json:"paymentId" binding:"required"`
	Authorization Authorization  `json:"authorization" binding:"required"`
}

type cancelRequest struct {
	Draft     checkout.Draft `json:"draft" binding:"required"`
	PaymentID string         `json:"paymentId" binding:"required"`
	Reason    string         `json:"reason"`
}

// Initiate validates the draft and creates a payment intent
func (c *Controller) Initiate(ctx *gin.Context) {
	var req initiateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.orchestrator.Initiate(ctx.Request.Context(), req.Draft)
	if err != nil {
		respondPaymentError(ctx, "Failed to initiate payment", result, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment initiated", result, nil)
}

// Complete relays the gateway proof for backend verification
func (c *Controller) Complete(ctx *gin.Context) {
	var req completeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.orchestrator.Complete(ctx.Request.Context(), req.Draft, req.PaymentID, req.Authorization)
	if err != nil {
		respondPaymentError(ctx, "Payment could not be confirmed", result, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed", result, nil)
}

// Cancel records a gateway cancellation; no verification is attempted
func (c *Controller) Cancel(ctx *gin.Context) {
	var req cancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.orchestrator.Cancel(ctx.Request.Context(), req.Draft, req.PaymentID, req.Reason)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel payment", result, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment cancelled", result, nil)
}

// respondPaymentError maps orchestration errors onto the error taxonomy.
// The result (with its terminal state) rides along so the UI can render the
// retry path.
func respondPaymentError(ctx *gin.Context, message string, result *Result, err error) {
	statusCode := http.StatusBadRequest

	switch {
	case errors.Is(err, ErrValidation):
		statusCode = http.StatusBadRequest
	case errors.Is(err, checkout.ErrPaymentInProgress), errors.Is(err, ErrIntentMismatch):
		statusCode = http.StatusConflict
	case errors.Is(err, ErrOutcomeUnknown), upstream.IsUnreachable(err):
		statusCode = http.StatusServiceUnavailable
	case upstream.IsBackendRejection(err):
		statusCode = http.StatusUnprocessableEntity
	default:
		statusCode = http.StatusBadGateway
	}

	response.RespondJSON(ctx, "error", statusCode, message, result, err.Error())
}
