package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntriesEarned is fixed when the purchase is created.
type Purchase struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	StoreName       string          `json:"store_name" db:"store_name"`
	CardUsed        string          `json:"card_used" db:"card_used"`
	TransactionDate string          `json:"transaction_date" db:"transaction_date"`
	TransactionType string          `json:"transaction_type" db:"transaction_type"`
	Campaign        Campaign        `json:"campaign" db:"campaign"`
	EntriesEarned   int             `json:"entries_earned" db:"entries_earned"`
	DateCreated     time.Time       `json:"date_created" db:"date_created"`
	DeletedAt       *time.Time      `json:"-" db:"deleted_at"`
}

// MarshalJSON writes Amount as a JSON number rather than decimal's quoted string.
func (p Purchase) MarshalJSON() ([]byte, error) {
	type purchase Purchase
	return json.Marshal(struct {
		purchase
		Amount json.Number `json:"amount"`
	}{
		purchase: purchase(p),
		Amount:   json.Number(p.Amount.String()),
	})
}
