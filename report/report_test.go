package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/expense-tracker/ledger"
)

// =============================================================================
// RECORDING CANVAS
// =============================================================================

type textOp struct {
	page  int
	x, y  float64
	text  string
	color Color
}

// recorder is an A4 canvas that remembers every text it was asked to draw.
type recorder struct {
	pages     int
	texts     []textOp
	textColor Color
	fontSize  float64
}

func (r *recorder) AddPage()                          { r.pages++ }
func (r *recorder) PageNo() int                       { return r.pages }
func (r *recorder) PageSize() (float64, float64)      { return 210, 297 }
func (r *recorder) SetFont(_ FontStyle, size float64) { r.fontSize = size }
func (r *recorder) SetTextColor(c Color)              { r.textColor = c }
func (r *recorder) SetFillColor(Color)                {}
func (r *recorder) SetDrawColor(Color)                {}
func (r *recorder) Rect(_, _, _, _ float64, _ RectStyle) {}
func (r *recorder) Line(_, _, _, _ float64)           {}
func (r *recorder) Write(io.Writer) error             { return nil }

func (r *recorder) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * r.fontSize * 0.18
}

func (r *recorder) Text(x, y float64, s string) {
	r.texts = append(r.texts, textOp{page: r.pages, x: x, y: y, text: s, color: r.textColor})
}

func (r *recorder) find(s string) []textOp {
	var out []textOp
	for _, op := range r.texts {
		if strings.Contains(op.text, s) {
			out = append(out, op)
		}
	}
	return out
}

func (r *recorder) has(s string) bool { return len(r.find(s)) > 0 }

// =============================================================================
// TEST HELPERS
// =============================================================================

var generatedAt = time.Date(2026, time.October, 15, 14, 3, 22, 0, time.UTC)

func testOptions() Options {
	return Options{Now: generatedAt, Location: time.UTC}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(id, label, amount string, typ ledger.TxType, category string, at time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID: ledger.TransactionID(id), Label: label, Amount: d(amount), Type: typ, Category: category, Date: at,
	}
}

func sampleTransactions() []ledger.Transaction {
	return []ledger.Transaction{
		tx("3", "Dinner", "300", ledger.TxExpense, "Food", time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)),
		tx("2", "Salary", "5000", ledger.TxIncome, "", time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)),
		tx("1", "Groceries", "700", ledger.TxExpense, "Food", time.Date(2026, 9, 28, 18, 0, 0, 0, time.UTC)),
	}
}

// =============================================================================
// EMPTY REPORT
// =============================================================================

func TestRender_EmptyTransactions_RendersPlaceholder(t *testing.T) {
	c := &recorder{}

	res, err := Render(c, nil, d("1000"), d("1000"), testOptions())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.TransactionCount)
	assert.True(t, res.TotalExpenses.IsZero())

	// Header, summary and footer are still there
	assert.True(t, c.has(DefaultTitle))
	assert.True(t, c.has("Financial Summary"))
	assert.True(t, c.has("Page 1"))
	assert.True(t, c.has("No transactions found"))
	// No details table, no totals box
	assert.False(t, c.has("Transaction Details"))
	assert.False(t, c.has("Total Expenses:"))
}

// =============================================================================
// SECTIONS
// =============================================================================

func TestRender_SectionsInFixedOrder(t *testing.T) {
	c := &recorder{}
	opts := testOptions()
	opts.GroupByCategory = true

	_, err := Render(c, sampleTransactions(), d("1000"), d("5000"), opts)
	require.NoError(t, err)

	order := []string{DefaultTitle, "Financial Summary", "Category Breakdown", "Transaction Details", "Total Expenses:", "Generated by"}
	last := -1
	for _, want := range order {
		idx := -1
		for i, op := range c.texts {
			if strings.Contains(op.text, want) {
				idx = i
				break
			}
		}
		require.GreaterOrEqual(t, idx, 0, "missing %q", want)
		assert.Greater(t, idx, last, "%q out of order", want)
		last = idx
	}
}

func TestRender_TotalsAndSummary(t *testing.T) {
	c := &recorder{}

	res, err := Render(c, sampleTransactions(), d("1000"), d("5000"), testOptions())

	require.NoError(t, err)
	assert.True(t, res.TotalExpenses.Equal(d("1000")))
	assert.True(t, res.TotalIncome.Equal(d("5000")))
	assert.True(t, res.Net.Equal(d("4000")))
	assert.Equal(t, 3, res.TransactionCount)

	assert.True(t, c.has("Rs. 5,000.00 (1 transactions)"))
	assert.True(t, c.has("Rs. 1,000.00 (100.0% of initial balance)"))
	assert.True(t, c.has("Rs. 5,000.00 (Positive)"))
	assert.True(t, c.has("Net (Income - Expenses): +Rs. 4,000.00"))
}

func TestRender_NegativeBalanceQualifier(t *testing.T) {
	c := &recorder{}
	_, err := Render(c, sampleTransactions(), d("1000"), d("-20"), testOptions())
	require.NoError(t, err)
	assert.True(t, c.has("-Rs. 20.00 (Negative)"))
}

func TestRender_CategorySectionIsGated(t *testing.T) {
	c := &recorder{}
	_, err := Render(c, sampleTransactions(), d("1000"), d("5000"), testOptions())
	require.NoError(t, err)
	assert.False(t, c.has("Category Breakdown"))
}

func TestRender_DetailRowsSignedAndColored(t *testing.T) {
	c := &recorder{}

	_, err := Render(c, sampleTransactions(), d("1000"), d("5000"), testOptions())
	require.NoError(t, err)

	income := c.find("+Rs. 5,000.00")
	require.Len(t, income, 1)
	assert.Equal(t, colorIncome, income[0].color)

	expense := c.find("-Rs. 300.00")
	require.Len(t, expense, 1)
	assert.Equal(t, colorExpense, expense[0].color)

	// Missing category shows as General
	assert.True(t, c.has("General"))
}

func TestRender_DetailsNewestFirst(t *testing.T) {
	c := &recorder{}
	txs := sampleTransactions()
	// reverse to make sure the renderer sorts
	txs[0], txs[2] = txs[2], txs[0]

	_, err := Render(c, txs, d("1000"), d("5000"), testOptions())
	require.NoError(t, err)

	dinner := c.find("Dinner")[0]
	groceries := c.find("Groceries")[0]
	assert.Less(t, dinner.y, groceries.y)
}

func TestRender_EmptyLabelShowsPlaceholderText(t *testing.T) {
	c := &recorder{}
	txs := []ledger.Transaction{tx("1", "", "10", ledger.TxExpense, "", generatedAt)}
	_, err := Render(c, txs, d("100"), d("90"), testOptions())
	require.NoError(t, err)
	assert.True(t, c.has("No description"))
}

// =============================================================================
// DATE RANGE
// =============================================================================

func TestRender_DateRangeFiltersTransactions(t *testing.T) {
	c := &recorder{}
	opts := testOptions()
	opts.DateRange = &DateRange{
		From: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}

	res, err := Render(c, sampleTransactions(), d("1000"), d("5000"), opts)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TransactionCount) // Dinner on the 14th is included
	assert.True(t, res.TotalExpenses.Equal(d("300")))
	assert.False(t, c.has("Groceries"))
	assert.True(t, c.has("Period: 01/10/2026 - 14/10/2026"))
	assert.Equal(t, "expense-report-2026-10-15_2026-10-01_to_2026-10-14_14-03-22.pdf", res.Filename)
}

func TestRender_DateRangeWithoutMatchesUsesPlaceholder(t *testing.T) {
	c := &recorder{}
	opts := testOptions()
	opts.DateRange = &DateRange{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	res, err := Render(c, sampleTransactions(), d("1000"), d("5000"), opts)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.TransactionCount)
	assert.True(t, c.has("No transactions found"))
}

func TestRender_InvertedDateRangeRejected(t *testing.T) {
	opts := testOptions()
	opts.DateRange = &DateRange{
		From: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	res, err := Render(&recorder{}, sampleTransactions(), d("1000"), d("5000"), opts)

	require.Error(t, err)
	assert.True(t, ledger.IsValidation(err))
	assert.False(t, res.Success)
}

// =============================================================================
// PAGINATION
// =============================================================================

func TestRender_PaginatesLongReports(t *testing.T) {
	c := &recorder{}
	var txs []ledger.Transaction
	for i := 0; i < 120; i++ {
		txs = append(txs, tx(fmt.Sprint(i), fmt.Sprintf("Item %03d", i), "10", ledger.TxExpense, "Misc", generatedAt.Add(-time.Duration(i)*time.Hour)))
	}

	res, err := Render(c, txs, d("5000"), d("3800"), testOptions())

	require.NoError(t, err)
	require.Greater(t, res.Pages, 1)
	for page := 1; page <= res.Pages; page++ {
		assert.True(t, c.has(fmt.Sprintf("Page %d", page)), "footer missing on page %d", page)
	}
	continued := c.find("(continued)")
	assert.Len(t, continued, res.Pages-1)

	// Column header is repeated on every page holding detail rows
	rowPages := map[int]bool{}
	headerPages := map[int]bool{}
	for _, op := range c.texts {
		switch {
		case strings.HasPrefix(op.text, "Item "):
			rowPages[op.page] = true
		case op.text == "Description":
			headerPages[op.page] = true
		}
	}
	assert.Greater(t, len(rowPages), 1)
	for page := range rowPages {
		assert.True(t, headerPages[page], "column header missing on page %d", page)
	}

	// Nothing is drawn into the footer area except the footer itself
	for _, op := range c.texts {
		if strings.HasPrefix(op.text, "Item ") {
			assert.LessOrEqual(t, op.y, 297-margin-footerHeight)
		}
	}
}

// =============================================================================
// CATEGORIES
// =============================================================================

func TestSummarizeCategories_PercentagesSumToHundred(t *testing.T) {
	txs := []ledger.Transaction{
		tx("1", "a", "10", ledger.TxExpense, "Food", generatedAt),
		tx("2", "b", "20", ledger.TxExpense, "", generatedAt),
		tx("3", "c", "33.33", ledger.TxIncome, "Salary", generatedAt),
		tx("4", "d", "5", ledger.TxExpense, "Food", generatedAt),
	}

	lines := SummarizeCategories(txs)

	require.Len(t, lines, 3)
	assert.Equal(t, "Salary", lines[0].Category)
	assert.Equal(t, ledger.UncategorizedCategory, lines[1].Category)
	assert.Equal(t, "Food", lines[2].Category)
	assert.Equal(t, 2, lines[2].Count)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Percent)
	}
	assert.True(t, sum.Sub(d("100")).Abs().LessThan(d("0.0001")), "sum %s", sum)
}

// =============================================================================
// FILENAME
// =============================================================================

func TestFilename(t *testing.T) {
	assert.Equal(t, "expense-report-2026-10-15_14-03-22.pdf", Filename(generatedAt, nil))
	assert.Regexp(t, regexp.MustCompile(`^expense-report-\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.pdf$`), Filename(time.Now(), nil))
}

// =============================================================================
// PDF OUTPUT
// =============================================================================

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.GroupByCategory = true
	opts.Company = CompanyInfo{Name: "Acme", Tagline: "Household books", Contact: "me@example.com"}

	res, err := WritePDF(&buf, sampleTransactions(), d("1000"), d("5000"), opts)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, res.Pages)
}

func TestSaveFile_WritesIntoDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	res, err := SaveFile(dir, sampleTransactions(), d("1000"), d("5000"), testOptions())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, res.Filename), res.Path)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
