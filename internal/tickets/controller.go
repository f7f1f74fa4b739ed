package tickets

import (
	"errors"
	"net/http"

	"busbook/internal/history"
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

// DownloadTicket streams the official ticket document as an attachment
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	bookingGroupID := ctx.Param("bookingGroupId")
	if bookingGroupID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking group ID is required", nil, nil)
		return
	}

	ticket, err := c.service.Download(ctx.Request.Context(), bookingGroupID)
	if err != nil {
		statusCode := http.StatusBadGateway
		if upstream.IsBackendRejection(err) {
			statusCode = http.StatusUnprocessableEntity
		} else if upstream.IsUnreachable(err) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to download ticket", nil, err.Error())
		return
	}

	writeAttachment(ctx, ticket)
}

// DownloadSummary streams a locally rendered booking summary PDF
func (c *Controller) DownloadSummary(ctx *gin.Context) {
	bookingRef := ctx.Param("bookingRef")
	if bookingRef == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	ticket, err := c.service.Summary(ctx.Request.Context(), bookingRef)
	if err != nil {
		if errors.Is(err, history.ErrRecordNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to render booking summary", nil, err.Error())
		return
	}

	writeAttachment(ctx, ticket)
}

func writeAttachment(ctx *gin.Context, ticket *Ticket) {
	ctx.Header("Content-Disposition", `attachment; filename="`+ticket.FileName+`"`)
	ctx.Data(http.StatusOK, ticket.ContentType, ticket.Content)
}
