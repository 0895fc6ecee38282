package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"raffle-api/internal/domain/dto"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}

type AuthHandler struct {
	log         *slog.Logger
	authService AuthService
}

func NewAuthHandler(log *slog.Logger, authService AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: authService,
	}
}

// Login
// @Summary Log in and receive a token pair
// @Description Checks email and password, updates last_login and returns the user with an access and a refresh token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   auth body dto.AuthRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.AuthRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh
// @Summary Rotate a refresh token
// @Description The submitted refresh token is consumed; a new pair is returned.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   refresh body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse "New token pair"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input dto.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, err := h.authService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}
