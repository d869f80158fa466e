/*
Package report renders the ledger into a paginated, styled document.

PURPOSE:
  One renderer with an options structure covers every report variant: plain
  or grouped by category, whole history or a date range, default or custom
  title, with or without company details.

SECTIONS (fixed order):
  1. Header             title banner, generation timestamp, optional period
  2. Financial summary  balances, income/expense totals, transaction count
  3. Category breakdown only with Options.GroupByCategory
  4. Transaction details newest first, signed amounts, colored by type
  5. Totals box         total expenses and net (income - expenses)
  6. Footer             on every page: attribution, timestamp, page number

  An empty (filtered) transaction set replaces 4 and 5 with a placeholder.

PAGINATION:
  Content that does not fit the remaining space of the page moves to a new
  page that starts with an abbreviated header; tables repeat their column
  header.

DRAWING:
  The renderer only talks to the Canvas interface. PDFCanvas (fpdf) is the
  production implementation.

SEE ALSO:
  - layout.go: Section painters and pagination
  - export.go: File and stream output
*/
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
)

const (
	DefaultTitle   = "Expense Report"
	DefaultAppName = "Expense Tracker"
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// OPTIONS
// =============================================================================

type CompanyInfo struct {
	Name    string
	Tagline string
	Contact string
}

// DateRange selects transactions whose date falls on From..To, both days
// inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t is within the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(ledger.StartOfDay(r.From)) && !t.After(ledger.EndOfDay(r.To))
}

// Validate rejects ranges that end before they start.
func (r DateRange) Validate() error {
	if ledger.StartOfDay(r.To).Before(ledger.StartOfDay(r.From)) {
		return &ledger.ValidationError{
			Field:   "date_range",
			Message: fmt.Sprintf("date range ends (%s) before it starts (%s)", format.ISODay(r.To), format.ISODay(r.From)),
		}
	}
	return nil
}

type Options struct {
	Title           string // DefaultTitle when empty
	GroupByCategory bool
	DateRange       *DateRange
	Company         CompanyInfo
	Currency        format.Currency // format.ReportINR when unset
	Now             time.Time       // generation instant, time.Now() when zero
	Location        *time.Location  // display location, time.Local when nil
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Currency.Symbol == "" {
		o.Currency = format.ReportINR
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.In(o.Location)
	if o.Company.Name == "" {
		o.Company.Name = DefaultAppName
	}
	return o
}

// =============================================================================
// RESULT
// =============================================================================

type Result struct {
	Success          bool
	Filename         string
	Path             string // set by SaveFile
	TotalExpenses    decimal.Decimal
	TotalIncome      decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int
	Pages            int
}

// =============================================================================
// RENDER
// =============================================================================

// Render paints the report for txs onto c. initial and current are the
// ledger balances; txs may be in any order.
func Render(c Canvas, txs []ledger.Transaction, initial, current decimal.Decimal, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if opts.DateRange != nil {
		if err := opts.DateRange.Validate(); err != nil {
			return Result{}, err
		}
	}

	selected := selectTransactions(txs, opts.DateRange)
	totals := computeTotals(selected)

	res := Result{
		Filename:         Filename(opts.Now, opts.DateRange),
		TotalExpenses:    totals.expenses,
		TotalIncome:      totals.income,
		Net:              totals.income.Sub(totals.expenses),
		TransactionCount: len(selected),
	}

	if info, ok := c.(documentInfo); ok {
		info.SetDocumentInfo(opts.Title, opts.Company.Name)
	}

	r := newRenderer(c, opts)
	r.header()
	r.summary(initial, current, totals)
	if opts.GroupByCategory && len(selected) > 0 {
		r.categories(SummarizeCategories(selected))
	}
	if len(selected) == 0 {
		r.placeholder()
	} else {
		r.details(selected)
		r.totalsBox(totals)
	}
	r.finish()

	res.Pages = c.PageNo()
	if e, ok := c.(errorer); ok {
		if err := e.Err(); err != nil {
			return res, fmt.Errorf("render report: %w", err)
		}
	}
	res.Success = true
	return res, nil
}

// selectTransactions filters by range and orders newest first.
func selectTransactions(txs []ledger.Transaction, dr *DateRange) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if dr != nil && !dr.Contains(tx.Date) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

type totals struct {
	income       decimal.Decimal
	expenses     decimal.Decimal
	incomeCount  int
	expenseCount int
}

func computeTotals(txs []ledger.Transaction) totals {
	var t totals
	for _, tx := range txs {
		if tx.IsIncome() {
			t.income = t.income.Add(tx.Amount)
			t.incomeCount++
		} else {
			t.expenses = t.expenses.Add(tx.Amount)
			t.expenseCount++
		}
	}
	return t
}

// =============================================================================
// CATEGORY SUMMARY
// =============================================================================

type CategoryLine struct {
	Category string
	Count    int
	Total    decimal.Decimal
	Percent  decimal.Decimal // of the grand total of all listed amounts
}

// SummarizeCategories groups txs by category (Uncategorized when unset),
// sorted by descending total; ties keep first-occurrence order.
func SummarizeCategories(txs []ledger.Transaction) []CategoryLine {
	var (
		lines []CategoryLine
		index = make(map[string]int)
		grand decimal.Decimal
	)
	for _, tx := range txs {
		name := tx.CategoryOrDefault()
		i, ok := index[name]
		if !ok {
			i = len(lines)
			index[name] = i
			lines = append(lines, CategoryLine{Category: name})
		}
		lines[i].Count++
		lines[i].Total = lines[i].Total.Add(tx.Amount)
		grand = grand.Add(tx.Amount)
	}

	for i := range lines {
		if grand.IsPositive() {
			lines[i].Percent = lines[i].Total.Div(grand).Mul(hundred)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Total.GreaterThan(lines[j].Total)
	})
	return lines
}

// =============================================================================
// FILENAME
// =============================================================================

// Filename returns expense-report-<day>[_<from>_to_<to>]_<HH-MM-SS>.pdf for
// the generation instant now.
func Filename(now time.Time, dr *DateRange) string {
	name := "expense-report-" + format.ISODay(now)
	if dr != nil {
		name += "_" + format.ISODay(dr.From) + "_to_" + format.ISODay(dr.To)
	}
	return name + "_" + now.Format("15-04-05") + ".pdf"
}
