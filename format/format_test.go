package format_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
)

func TestFormatCurrency_IndianGrouping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"999.999", "₹1,000.00"},
		{"1234.5", "₹1,234.50"},
		{"123456", "₹1,23,456.00"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"-1234.5", "-₹1,234.50"},
		{"-0.001", "₹0.00"},
		{"0.005", "₹0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, format.FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCurrency_WesternGrouping(t *testing.T) {
	usd := format.Currency{Symbol: "$", Code: "USD", Grouping: format.GroupingWestern}
	assert.Equal(t, "$12,345,678.90", usd.Format(decimal.RequireFromString("12345678.9")))
}

func TestCurrency_Signed(t *testing.T) {
	amount := decimal.RequireFromString("1500")
	assert.Equal(t, "+₹1,500.00", format.INR.Signed(amount, true))
	assert.Equal(t, "-₹1,500.00", format.INR.Signed(amount, false))
	assert.Equal(t, "-Rs. 1,500.00", format.ReportINR.Signed(amount, false))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.5%", format.FormatPercent(decimal.RequireFromString("12.46")))
	assert.Equal(t, "100.0%", format.FormatPercent(decimal.NewFromInt(100)))
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2026, time.October, 5, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "05 Oct 2026, 02:07 pm", format.FormatDate(at))
	assert.Equal(t, "05/10/2026", format.FormatDay(at))
	assert.Equal(t, "2026-10-05", format.ISODay(at))
}

func TestParseISODay(t *testing.T) {
	loc := time.FixedZone("IST", 19800)
	got, err := format.ParseISODay(" 2026-10-05 ", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 5, 0, 0, 0, 0, loc).Equal(got))

	_, err = format.ParseISODay("05/10/2026", loc)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"12.34":   "12.34",
		"12,34":   "12.34",
		" 7 ":     "7",
		"0.01":    "0.01",
		"1000000": "1000000",
	}
	for in, want := range valid {
		t.Run("valid "+in, func(t *testing.T) {
			got, err := format.ParseAmount(in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(want).Equal(got), "got %s", got)
		})
	}

	for _, in := range []string{"", "  ", "0", "0.00", "-5", "+5", "1e3", "abc", "1.2.3", "1,234.50", "NaN"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := format.ParseAmount(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
			assert.True(t, ledger.IsValidation(err))
		})
	}
}
