package dropdeck

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the currency amounts are displayed in.
const Currency = money.USD

// FormatAmount returns the display form of an amount, e.g. "$1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, Currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// FormatSignedAmount is like FormatAmount with a "+" for earnings and a "-"
// for investments, the way the ledger shows them.
func FormatSignedAmount(tx Transaction) string {
	if tx.Kind == Investment {
		return "-" + FormatAmount(tx.Amount)
	}
	return "+" + FormatAmount(tx.Amount)
}

// Percent is a percentage, 50 means one half.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString is like String with an explicit sign, used for returns.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", float64(p))
}
