package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSource is the price feed alerts are evaluated against unless the
// registration says otherwise.
const DefaultSource = "binance"

// Direction says which way the price has to cross the threshold for an
// alert to fire.
type Direction string

const (
	DirectionAbove Direction = "Above"
	DirectionBelow Direction = "Below"
)

// ParseDirection normalizes a direction string. Only Above and Below are
// accepted; anything else reports false.
func ParseDirection(input string) (Direction, bool) {
	switch strings.TrimSpace(input) {
	case string(DirectionAbove):
		return DirectionAbove, true
	case string(DirectionBelow):
		return DirectionBelow, true
	default:
		return "", false
	}
}

// Matches reports whether price satisfies the threshold for this direction.
// The boundary is inclusive: reaching the threshold counts as crossing it.
func (d Direction) Matches(price, threshold float64) bool {
	cmp := decimal.NewFromFloat(price).Cmp(decimal.NewFromFloat(threshold))
	switch d {
	case DirectionAbove:
		return cmp >= 0
	case DirectionBelow:
		return cmp <= 0
	default:
		return false
	}
}

// Alert binds a device token to a symbol, direction and threshold price.
// Active flips to false exactly once, either when the alert fires or when
// the owner deletes it; rows are never removed.
type Alert struct {
	ID        uint
	Token     string
	Symbol    string
	Direction Direction
	Price     float64
	Source    string
	Active    bool
	CreatedAt time.Time
}
