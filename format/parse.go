package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/ledger"
)

// ParseAmount converts user input into a positive decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// surrounding whitespace. Signs, exponents, grouping separators and values
// that are not strictly positive are rejected with a *ledger.ValidationError
// wrapping ledger.ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, invalidAmount("amount is required")
	}
	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return decimal.Zero, invalidAmount("amount must be a plain positive number")
		}
	}
	if dots > 1 || s == "." {
		return decimal.Zero, invalidAmount("amount must be a plain positive number")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalidAmount("amount must be a plain positive number")
	}
	if !d.IsPositive() {
		return decimal.Zero, invalidAmount("amount must be greater than zero")
	}
	return d, nil
}

func invalidAmount(msg string) error {
	return &ledger.ValidationError{Field: "amount", Message: msg, Reason: ledger.ErrInvalidAmount}
}
