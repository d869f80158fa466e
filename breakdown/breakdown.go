/*
Package breakdown derives the weekly and monthly views of a ledger.

PURPOSE:
  For a reference instant "now", the week starts on Monday 00:00 and the month
  on day 1 00:00, both in now's location. A transaction belongs to a period
  when its date is at or after the period start; one transaction may be in
  both periods.

TOTALS ACROSS TYPES:
  Period.Total and the category sums add expense AND income amounts together.
  That is the observed behaviour of the tracker and is kept as is; the
  ExpenseTotal/IncomeTotal fields carry the split for callers that need it.

CATEGORIES:
  Grouped by lower-cased label. Categories keep the first-occurrence order of
  the newest-first transaction list; Top(n) sorts by amount and keeps that
  order on ties.

The computation is stateless and uncached. Personal-finance volumes make a
full scan per request cheap.
*/
package breakdown

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/ledger"
)

// TopN is how many categories are shown per period.
const TopN = 5

var hundred = decimal.NewFromInt(100)

// =============================================================================
// TYPES
// =============================================================================

type CategoryTotal struct {
	Name   string
	Amount decimal.Decimal
	Count  int
}

type Period struct {
	Start        time.Time
	Total        decimal.Decimal
	Count        int
	ExpenseTotal decimal.Decimal
	IncomeTotal  decimal.Decimal
	Categories   []CategoryTotal // first-occurrence order
}

type Breakdown struct {
	AsOf    time.Time
	Weekly  Period
	Monthly Period
}

// =============================================================================
// COMPUTATION
// =============================================================================

// Compute builds the weekly and monthly periods for txs as of now.
// txs is expected newest first, as returned by ledger.Ledger.Transactions.
func Compute(txs []ledger.Transaction, now time.Time) Breakdown {
	return Breakdown{
		AsOf:    now,
		Weekly:  summarize(txs, ledger.WeekStart(now)),
		Monthly: summarize(txs, ledger.MonthStart(now)),
	}
}

func summarize(txs []ledger.Transaction, start time.Time) Period {
	p := Period{Start: start}
	index := make(map[string]int)

	for _, tx := range txs {
		if tx.Date.Before(start) {
			continue
		}
		p.Total = p.Total.Add(tx.Amount)
		p.Count++
		if tx.IsIncome() {
			p.IncomeTotal = p.IncomeTotal.Add(tx.Amount)
		} else {
			p.ExpenseTotal = p.ExpenseTotal.Add(tx.Amount)
		}

		name := strings.ToLower(tx.Label)
		i, ok := index[name]
		if !ok {
			i = len(p.Categories)
			index[name] = i
			p.Categories = append(p.Categories, CategoryTotal{Name: name})
		}
		p.Categories[i].Amount = p.Categories[i].Amount.Add(tx.Amount)
		p.Categories[i].Count++
	}
	return p
}

// =============================================================================
// VIEWS
// =============================================================================

// Top returns at most n categories by descending amount. Ties keep their
// first-occurrence order.
func (p Period) Top(n int) []CategoryTotal {
	sorted := append([]CategoryTotal(nil), p.Categories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Share returns amount as a percentage of the period total, 0 for an empty period.
func (p Period) Share(amount decimal.Decimal) decimal.Decimal {
	if p.Total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(p.Total).Mul(hundred)
}

// IsEmpty reports whether no transaction fell in the period.
func (p Period) IsEmpty() bool { return p.Count == 0 }
