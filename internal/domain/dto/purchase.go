package dto

import (
	"raffle-api/internal/domain/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// swagger:model
type CreatePurchaseRequest struct {
	UserID          uuid.UUID        `json:"user_id" binding:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Amount          *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"5000"`
	StoreName       string           `json:"store_name" example:"SM Megamall"`
	CardUsed        string           `json:"card_used" example:"Citibank Paylite"`
	TransactionDate string           `json:"transaction_date" example:"2018-03-01"`
	TransactionType string           `json:"transaction_type" example:"retail"`
}

type PurchaseResponse struct {
	Purchase models.Purchase `json:"purchase"`
}

type PurchasesResponse struct {
	Purchases []models.Purchase `json:"purchases"`
}
