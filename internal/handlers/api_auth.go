package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/dto"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/services"
)

// AuthHandler coordinates token authentication for the API.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges credentials for an access and refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, services.ErrCredentialsRequired.Message)
		return
	}

	pair, err := h.authService.APILogin(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, "Login successful", dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh issues a new access token for a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		apierrors.Unauthorized(c, services.ErrInvalidRefreshToken.Message)
		return
	}

	access, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, "Token refreshed successfully", dto.RefreshResponse{AccessToken: access})
}
