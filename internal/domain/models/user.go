package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// AcceptedTerms records the campaign a user signed up under.
type AcceptedTerms struct {
	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
}

// EntryCount is only ever changed by purchase accrual or by reconciling it
// against the user's purchases.
type User struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	FirstName     string        `json:"first_name" db:"first_name"`
	LastName      string        `json:"last_name" db:"last_name"`
	Email         string        `json:"email" db:"email"`
	Password      []byte        `json:"-" db:"password"`
	Gender        string        `json:"gender" db:"gender"`
	MobileNumber  string        `json:"mobile_number" db:"mobile_number"`
	Birthday      string        `json:"birthday" db:"birthday"`
	Address       Address       `json:"address" db:"address"`
	AcceptedTerms AcceptedTerms `json:"accepted_terms" db:"accepted_terms"`
	EntryCount    int           `json:"entry_count" db:"entry_count"`
	DateCreated   time.Time     `json:"date_created" db:"date_created"`
	DateUpdated   time.Time     `json:"date_updated" db:"date_updated"`
	LastLogin     time.Time     `json:"last_login" db:"last_login"`
}
