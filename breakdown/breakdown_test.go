package breakdown_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/expense-tracker/breakdown"
	"github.com/warp/expense-tracker/ledger"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// Thursday, 15 Oct 2026, 11:00 local
var now = time.Date(2026, time.October, 15, 11, 0, 0, 0, time.UTC)

func tx(label string, amount int64, typ ledger.TxType, at time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:     ledger.TransactionID(label + at.String()),
		Label:  label,
		Amount: decimal.NewFromInt(amount),
		Type:   typ,
		Date:   at,
	}
}

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

// =============================================================================
// PERIOD FILTERING
// =============================================================================

func TestCompute_WeeklyAndMonthlyCutoffs(t *testing.T) {
	// GIVEN: An expense today and an income 8 days ago (same month)
	txs := []ledger.Transaction{
		tx("Food", 100, ledger.TxExpense, now),
		tx("Salary", 50, ledger.TxIncome, daysAgo(8)),
	}

	b := breakdown.Compute(txs, now)

	// THEN: Only today's expense is in the week, both are in the month
	assert.True(t, b.Weekly.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, b.Weekly.Count)
	assert.True(t, b.Monthly.Total.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 2, b.Monthly.Count)
	assert.True(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC).Equal(b.Weekly.Start))
	assert.True(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Equal(b.Monthly.Start))
}

func TestCompute_MonthCutoffExcludesPreviousMonth(t *testing.T) {
	txs := []ledger.Transaction{
		tx("Food", 100, ledger.TxExpense, now),
		tx("Rent", 900, ledger.TxExpense, time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)),
		tx("Book", 10, ledger.TxExpense, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
	}

	b := breakdown.Compute(txs, now)

	assert.True(t, b.Monthly.Total.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 2, b.Monthly.Count)
}

func TestCompute_WeekStartIsInclusive(t *testing.T) {
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	txs := []ledger.Transaction{
		tx("Edge", 7, ledger.TxExpense, monday),
		tx("Before", 3, ledger.TxExpense, monday.Add(-time.Second)),
	}

	b := breakdown.Compute(txs, now)

	assert.Equal(t, 1, b.Weekly.Count)
	assert.True(t, b.Weekly.Total.Equal(decimal.NewFromInt(7)))
}

func TestCompute_TotalsMixTypesButSplitIsTracked(t *testing.T) {
	txs := []ledger.Transaction{
		tx("Salary", 1000, ledger.TxIncome, now),
		tx("Food", 200, ledger.TxExpense, now),
	}

	b := breakdown.Compute(txs, now)

	assert.True(t, b.Weekly.Total.Equal(decimal.NewFromInt(1200)))
	assert.True(t, b.Weekly.IncomeTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.Weekly.ExpenseTotal.Equal(decimal.NewFromInt(200)))
}

func TestCompute_EmptyLedger(t *testing.T) {
	b := breakdown.Compute(nil, now)

	assert.True(t, b.Weekly.IsEmpty())
	assert.True(t, b.Monthly.IsEmpty())
	assert.Empty(t, b.Weekly.Top(breakdown.TopN))
	assert.True(t, b.Weekly.Share(decimal.NewFromInt(5)).IsZero())
}

// =============================================================================
// CATEGORIES
// =============================================================================

func TestCompute_CategoriesByLowerCasedLabel(t *testing.T) {
	txs := []ledger.Transaction{
		tx("Coffee", 5, ledger.TxExpense, now),
		tx("coffee", 7, ledger.TxExpense, now),
		tx("COFFEE", 3, ledger.TxExpense, now),
		tx("Lunch", 20, ledger.TxExpense, now),
	}

	b := breakdown.Compute(txs, now)

	require.Len(t, b.Weekly.Categories, 2)
	assert.Equal(t, "coffee", b.Weekly.Categories[0].Name)
	assert.True(t, b.Weekly.Categories[0].Amount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 3, b.Weekly.Categories[0].Count)
	assert.Equal(t, "lunch", b.Weekly.Categories[1].Name)
}

func TestTop_SortsDescendingAndKeepsFirstOccurrenceOnTies(t *testing.T) {
	txs := []ledger.Transaction{
		tx("b", 10, ledger.TxExpense, now),
		tx("a", 10, ledger.TxExpense, now),
		tx("big", 50, ledger.TxExpense, now),
		tx("c", 1, ledger.TxExpense, now),
		tx("d", 2, ledger.TxExpense, now),
		tx("e", 3, ledger.TxExpense, now),
		tx("f", 4, ledger.TxExpense, now),
	}

	top := breakdown.Compute(txs, now).Weekly.Top(breakdown.TopN)

	require.Len(t, top, 5)
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"big", "b", "a", "f", "e"}, names)
}

func TestShare_SumsToHundred(t *testing.T) {
	txs := []ledger.Transaction{
		tx("a", 1, ledger.TxExpense, now),
		tx("b", 1, ledger.TxExpense, now),
		tx("c", 1, ledger.TxIncome, now),
		tx("d", 97, ledger.TxExpense, daysAgo(3)),
	}

	p := breakdown.Compute(txs, now).Monthly
	sum := decimal.Zero
	for _, c := range p.Categories {
		sum = sum.Add(p.Share(c.Amount))
	}

	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.0001")), "sum %s", sum)
}
