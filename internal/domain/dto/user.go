package dto

import "raffle-api/internal/domain/models"

// swagger:model
type CreateUserRequest struct {
	FirstName    string `json:"first_name" binding:"required,notblank" example:"Juan"`
	LastName     string `json:"last_name" example:"Dela Cruz"`
	Email        string `json:"email" binding:"required" example:"juan@example.com"`
	Password     string `json:"password" binding:"required" example:"secret123"`
	Gender       string `json:"gender" example:"male"`
	MobileNumber string `json:"mobile_number" example:"09171234567"`
	Birthday     string `json:"birthday" example:"1990-01-31"`
	Street       string `json:"street" example:"EDSA"`
	City         string `json:"city" example:"Mandaluyong"`
}

// UpdateUserRequest fields are optional; nil keeps the stored value.
//
// swagger:model
type UpdateUserRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,notblank"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Gender       *string `json:"gender"`
	MobileNumber *string `json:"mobile_number"`
	Birthday     *string `json:"birthday"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
}

type UserResponse struct {
	User models.User `json:"user"`
}

type UsersResponse struct {
	Users []models.User `json:"users"`
}
