package authtoken

import (
	"errors"
	"net/http"

	"busbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type saveTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SaveToken stores the backend-issued session token
func (c *Controller) SaveToken(ctx *gin.Context) {
	var req saveTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	session, err := c.service.Save(ctx.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Session token is already expired", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to store session token", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Session token stored successfully", gin.H{
		"expires_at": session.ExpiresAt,
	}, nil)
}

// GetSession reports whether a live session token is stored
func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.service.Load(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "No active session", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load session token", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active session found", gin.H{
		"expires_at": session.ExpiresAt,
	}, nil)
}

// ClearToken removes the stored session token
func (c *Controller) ClearToken(ctx *gin.Context) {
	if err := c.service.Clear(ctx.Request.Context()); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to clear session token", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Session token cleared", nil, nil)
}
