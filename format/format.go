/*
Package format converts amounts and timestamps into display strings.

The tracker runs under one fixed locale: Indian English with rupee amounts.
Grouping follows the Indian system (last three digits, then pairs):
1,23,45,678.90. Amounts are rounded to two decimals, half away from zero.

USAGE:
  format.FormatCurrency(decimal.NewFromInt(1234567))  // "₹12,34,567.00"
  format.INR.Signed(amount, true)                     // "+₹1,200.00"
  format.FormatDate(tx.Date)                          // "15 Oct 2026, 02:30 pm"
*/
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CURRENCY
// =============================================================================

type Grouping int

const (
	GroupingIndian  Grouping = iota // 12,34,567
	GroupingWestern                 // 1,234,567
)

type Currency struct {
	Symbol   string
	Code     string
	Grouping Grouping
}

var (
	// INR is the display currency of the tracker.
	INR = Currency{Symbol: "₹", Code: "INR", Grouping: GroupingIndian}

	// ReportINR is INR for documents painted with cp1252 fonts, which have no
	// rupee glyph.
	ReportINR = Currency{Symbol: "Rs. ", Code: "INR", Grouping: GroupingIndian}
)

// Format renders d with the currency symbol, e.g. "₹1,234.50" or "-₹12.00".
func (c Currency) Format(d decimal.Decimal) string {
	s := c.Symbol + group(d.Abs().StringFixed(2), c.Grouping)
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// Signed renders the magnitude of d with an explicit sign: "+₹10.00" when
// positive is true, "-₹10.00" otherwise.
func (c Currency) Signed(d decimal.Decimal, positive bool) string {
	sign := "-"
	if positive {
		sign = "+"
	}
	return sign + c.Symbol + group(d.Abs().StringFixed(2), c.Grouping)
}

// FormatCurrency formats d in the tracker's display currency.
func FormatCurrency(d decimal.Decimal) string {
	return INR.Format(d)
}

// FormatPercent renders a percentage with one decimal: "12.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

func group(fixed string, g Grouping) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	size := 2
	if g == GroupingWestern {
		size = 3
	}

	var groups []string
	for len(head) > size {
		groups = append([]string{head[len(head)-size:]}, groups...)
		head = head[:len(head)-size]
	}
	groups = append([]string{head}, groups...)
	groups = append(groups, tail)

	out := strings.Join(groups, ",")
	if frac != "" {
		out += "." + frac
	}
	return out
}

// =============================================================================
// DATES
// =============================================================================

const (
	dateTimeLayout = "02 Jan 2006, 03:04 pm"
	dayLayout      = "02/01/2006"
	isoDayLayout   = "2006-01-02"
)

// FormatDate renders a timestamp with minutes: "15 Oct 2026, 02:30 pm".
func FormatDate(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// FormatDay renders the calendar day: "15/10/2026".
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// ISODay renders the calendar day as "2026-10-15".
func ISODay(t time.Time) string {
	return t.Format(isoDayLayout)
}

// ParseISODay parses "2026-10-15" at midnight in loc.
func ParseISODay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(isoDayLayout, strings.TrimSpace(s), loc)
}
