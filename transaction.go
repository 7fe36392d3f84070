package dropdeck

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Kind tells whether a transaction is money in or money out of the projects.
type Kind string

const (
	// Investment is money spent on a project (fees, tokens, nodes...).
	Investment Kind = "investment"
	// Earning is money received from a project (airdrop, reward...).
	Earning Kind = "earning"
)

// ParseKind parses a Kind, accepting a few usual abbreviations.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "investment", "invest", "inv", "in":
		return Investment, nil
	case "earning", "earn", "reward", "out":
		return Earning, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q want %q or %q", s, Investment, Earning)
	}
}

// Transaction records an investment or an earning. It is immutable.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// ValidateAmount checks that amount can be recorded in a transaction.
//
// State does not check it: producers of transactions must call it before
// AddTransaction.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount %s: must be strictly positive", amount)
	}
	return nil
}
