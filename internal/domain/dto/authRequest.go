package dto

import "raffle-api/internal/domain/models"

// swagger:model
type AuthRequest struct {
	Email    string `json:"email" binding:"required" example:"juan@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// swagger:model
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// swagger:model
type AuthResponse struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}
