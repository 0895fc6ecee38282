package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"raffle-api/internal/domain/dto"
	"raffle-api/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ReconcileEntries(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type UserHandler struct {
	log         *slog.Logger
	userService UserService
}

func NewUserHandler(log *slog.Logger, userService UserService) *UserHandler {
	return &UserHandler{
		log:         log,
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Register a user
// @Description Creates a user under the configured campaign with zero raffle entries.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.UserResponse "Created"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{User: user})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Success 200 {object} dto.UsersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsersResponse{Users: users})
}

// GetUser godoc
// @Summary Get a user with its entry count
// @Tags users
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Only the supplied fields change. entry_count cannot be set here.
// @Tags users
// @Security BearerAuth
// @Security BasicAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var input dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// DeleteUser godoc
// @Summary Delete a user and its purchases
// @Tags users
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User record was deleted"})
}

// ReconcileEntries godoc
// @Summary Recompute a user's entry count from its purchases
// @Tags users
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /users/{id}/entries/reconcile [post]
func (h *UserHandler) ReconcileEntries(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.userService.ReconcileEntries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}
