package raffle_test

import (
	"testing"

	"raffle-api/internal/lib/raffle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy_Compute(t *testing.T) {
	policy := raffle.DefaultPolicy()

	tests := []struct {
		name       string
		amount     string
		instrument string
		want       int
	}{
		{"standard card at threshold", "3000", "Citibank", 1},
		{"standard card above threshold", "5000", "Citibank", 1},
		{"installment variant above threshold", "5000", "Citibank Paylite", 2},
		{"just below threshold", "2999", "Citibank", 0},
		{"fractional below threshold", "2999.99", "Citibank Paylite", 0},
		{"unknown card above threshold", "5000", "Visa", 0},
		{"empty instrument", "10000", "", 0},
		{"case differs", "5000", "citibank", 0},
		{"surrounding whitespace", "5000", "  Citibank Paylite ", 2},
		{"zero amount", "0", "Citibank", 0},
		{"negative amount", "-5000", "Citibank", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Compute(decimal.RequireFromString(tt.amount), tt.instrument)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPolicy_BelowThresholdNeverEarns(t *testing.T) {
	policy := raffle.DefaultPolicy()

	for amount := int64(0); amount < 3000; amount += 7 {
		for _, card := range []string{"Citibank", "Citibank Paylite", "Visa", ""} {
			assert.Zero(t, policy.Compute(decimal.NewFromInt(amount), card), "amount=%d card=%q", amount, card)
		}
	}
}

func TestDefaultPolicy_ExampleUserTotal(t *testing.T) {
	policy := raffle.DefaultPolicy()

	total := policy.Compute(decimal.NewFromInt(5000), "Citibank") +
		policy.Compute(decimal.NewFromInt(5000), "Citibank Paylite") +
		policy.Compute(decimal.NewFromInt(2999), "Citibank")

	assert.Equal(t, 3, total)
}

func TestParsePolicy(t *testing.T) {
	policy, err := raffle.ParsePolicy("1500.50", map[string]int{"BDO Gold ": 3})
	require.NoError(t, err)

	assert.True(t, policy.Threshold().Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, 3, policy.Compute(decimal.RequireFromString("1500.50"), "BDO Gold"))
	assert.Zero(t, policy.Compute(decimal.RequireFromString("1500.49"), "BDO Gold"))
}

func TestParsePolicy_Rejects(t *testing.T) {
	_, err := raffle.ParsePolicy("abc", nil)
	assert.ErrorIs(t, err, raffle.ErrInvalidPolicy)

	_, err = raffle.ParsePolicy("-1", nil)
	assert.ErrorIs(t, err, raffle.ErrInvalidPolicy)

	_, err = raffle.ParsePolicy("3000", map[string]int{"Citibank": -1})
	assert.ErrorIs(t, err, raffle.ErrInvalidPolicy)

	_, err = raffle.ParsePolicy("3000", map[string]int{"  ": 1})
	assert.ErrorIs(t, err, raffle.ErrInvalidPolicy)
}
