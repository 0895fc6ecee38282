package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchase_MarshalJSON_AmountIsNumber(t *testing.T) {
	p := Purchase{
		Amount:        decimal.RequireFromString("2999.99"),
		CardUsed:      "Citibank",
		Campaign:      Campaign{ID: "c-1", Name: "30thingstodoatmega"},
		EntriesEarned: 0,
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.Equal(t, "2999.99", string(fields["amount"]))
	assert.Equal(t, `"Citibank"`, string(fields["card_used"]))
	assert.JSONEq(t, `{"id":"c-1","name":"30thingstodoatmega"}`, string(fields["campaign"]))
	assert.NotContains(t, fields, "deleted_at")
}
