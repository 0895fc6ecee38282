// Package raffle computes how many raffle entries a purchase earns.
package raffle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPolicy = errors.New("invalid raffle policy")

// Policy maps qualifying payment instruments to the entries a purchase earns
// once its amount reaches Threshold. Instruments not in the table earn nothing.
type Policy struct {
	threshold   decimal.Decimal
	instruments map[string]int
}

func DefaultPolicy() Policy {
	p, _ := NewPolicy(decimal.NewFromInt(3000), map[string]int{
		"Citibank":         1,
		"Citibank Paylite": 2,
	})
	return p
}

func NewPolicy(threshold decimal.Decimal, instruments map[string]int) (Policy, error) {
	const op = "raffle.NewPolicy"

	if threshold.IsNegative() {
		return Policy{}, fmt.Errorf("%s: %w: negative threshold %s", op, ErrInvalidPolicy, threshold)
	}

	table := make(map[string]int, len(instruments))
	for label, entries := range instruments {
		label = strings.TrimSpace(label)
		if label == "" {
			return Policy{}, fmt.Errorf("%s: %w: empty instrument label", op, ErrInvalidPolicy)
		}
		if entries < 0 {
			return Policy{}, fmt.Errorf("%s: %w: %q earns %d entries", op, ErrInvalidPolicy, label, entries)
		}
		table[label] = entries
	}

	return Policy{threshold: threshold, instruments: table}, nil
}

// ParsePolicy builds a Policy from its config representation.
func ParsePolicy(threshold string, instruments map[string]int) (Policy, error) {
	t, err := decimal.NewFromString(strings.TrimSpace(threshold))
	if err != nil {
		return Policy{}, fmt.Errorf("raffle.ParsePolicy: %w: threshold %q", ErrInvalidPolicy, threshold)
	}

	return NewPolicy(t, instruments)
}

func (p Policy) Threshold() decimal.Decimal {
	return p.threshold
}

// Compute is pure: the same amount and instrument always earn the same entries.
func (p Policy) Compute(amount decimal.Decimal, instrument string) int {
	if amount.IsNegative() || amount.LessThan(p.threshold) {
		return 0
	}

	return p.instruments[strings.TrimSpace(instrument)]
}
