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

type PurchaseService interface {
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (models.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID uuid.UUID) (models.Purchase, error)
	ListPurchases(ctx context.Context, userID *uuid.UUID) ([]models.Purchase, error)
	DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error
}

type PurchaseHandler struct {
	log             *slog.Logger
	purchaseService PurchaseService
}

func NewPurchaseHandler(log *slog.Logger, purchaseService PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		log:             log,
		purchaseService: purchaseService,
	}
}

// CreatePurchase godoc
// @Summary Record a purchase
// @Description Stores the purchase and credits the raffle entries it earns to its owner.
// @Tags purchases
// @Security BearerAuth
// @Security BasicAuth
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} dto.PurchaseResponse "Created"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var input dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PurchaseResponse{Purchase: purchase})
}

// ListPurchases godoc
// @Summary List purchases
// @Tags purchases
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param user_id query string false "Only this user's purchases"
// @Success 200 {object} dto.PurchasesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid user_id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, h.log, errInvalidID)
			return
		}
		userID = &id
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.PurchasesResponse{Purchases: purchases})
}

// GetPurchase godoc
// @Summary Get a purchase
// @Tags purchases
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	purchaseID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{Purchase: purchase})
}

// DeletePurchase godoc
// @Summary Delete a purchase
// @Description Entries already credited for the purchase are kept.
// @Tags purchases
// @Security BearerAuth
// @Security BasicAuth
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	purchaseID, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), purchaseID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Purchase record was deleted"})
}
