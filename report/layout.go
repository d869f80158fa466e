package report

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
)

// Page geometry, in canvas units (mm on A4).
const (
	margin        = 15.0
	footerHeight  = 16.0
	bannerHeight  = 34.0
	compactBanner = 16.0
	rowHeight     = 7.0
	sectionGap    = 6.0
	totalsHeight  = 20.0
	cellPadding   = 2.0
)

type align int

const (
	alignLeft align = iota
	alignRight
	alignCenter
)

type column struct {
	title string
	share float64 // fraction of the content width
	align align
}

type row struct {
	cells []string
	color Color
}

// =============================================================================
// RENDERER - Cursor over the current page
// =============================================================================

type renderer struct {
	c      Canvas
	opts   Options
	cur    format.Currency
	width  float64
	height float64
	y      float64
}

func newRenderer(c Canvas, opts Options) *renderer {
	return &renderer{c: c, opts: opts, cur: opts.Currency}
}

func (r *renderer) contentWidth() float64 { return r.width - 2*margin }
func (r *renderer) bottom() float64       { return r.height - margin - footerHeight }

// ensure starts a new page when h does not fit; it reports whether it did.
func (r *renderer) ensure(h float64) bool {
	if r.y+h <= r.bottom() {
		return false
	}
	r.footer()
	r.c.AddPage()
	r.compactHeader()
	return true
}

func (r *renderer) finish() {
	r.footer()
}

// =============================================================================
// HEADER & FOOTER
// =============================================================================

func (r *renderer) header() {
	r.c.AddPage()
	r.width, r.height = r.c.PageSize()

	r.c.SetFillColor(colorPrimary)
	r.c.Rect(0, 0, r.width, bannerHeight, RectFill)

	r.c.SetTextColor(colorWhite)
	r.c.SetFont(FontBold, 20)
	r.c.Text(margin, 15, r.opts.Title)

	r.c.SetFont(FontRegular, 10)
	company := r.opts.Company.Name
	if r.opts.Company.Tagline != "" {
		company += " - " + r.opts.Company.Tagline
	}
	r.c.Text(margin, 23, company)
	r.c.Text(margin, 29, "Generated on: "+format.FormatDate(r.opts.Now))
	if r.opts.Company.Contact != "" {
		r.textRight(r.width-margin, 29, r.opts.Company.Contact)
	}

	r.y = bannerHeight + sectionGap
	if dr := r.opts.DateRange; dr != nil {
		r.c.SetTextColor(colorMuted)
		r.c.SetFont(FontItalic, 10)
		r.c.Text(margin, r.y+4, fmt.Sprintf("Period: %s - %s",
			format.FormatDay(dr.From.In(r.opts.Location)), format.FormatDay(dr.To.In(r.opts.Location))))
		r.y += 8
	}
}

func (r *renderer) compactHeader() {
	r.c.SetFillColor(colorPrimary)
	r.c.Rect(0, 0, r.width, compactBanner, RectFill)
	r.c.SetTextColor(colorWhite)
	r.c.SetFont(FontBold, 12)
	r.c.Text(margin, 10, r.opts.Title+" (continued)")
	r.y = compactBanner + sectionGap
}

func (r *renderer) footer() {
	top := r.height - margin - footerHeight + 6
	r.c.SetDrawColor(colorBorder)
	r.c.Line(margin, top, r.width-margin, top)

	baseline := top + 6
	r.c.SetTextColor(colorMuted)
	r.c.SetFont(FontItalic, 8)
	r.c.Text(margin, baseline, "Generated by "+r.opts.Company.Name)
	r.textCenter(r.width/2, baseline, format.FormatDate(r.opts.Now))
	r.textRight(r.width-margin, baseline, "Page "+strconv.Itoa(r.c.PageNo()))
}

// =============================================================================
// SECTIONS
// =============================================================================

func (r *renderer) sectionTitle(title string) {
	// keep the title together with the table header and one row
	r.ensure(10 + 2*rowHeight)
	r.c.SetTextColor(colorText)
	r.c.SetFont(FontBold, 13)
	r.c.Text(margin, r.y+6, title)
	r.c.SetDrawColor(colorPrimary)
	r.c.Line(margin, r.y+8, r.width-margin, r.y+8)
	r.y += 10
}

func (r *renderer) summary(initial, current decimal.Decimal, t totals) {
	r.sectionTitle("Financial Summary")

	expenseShare := decimal.Zero
	if initial.IsPositive() {
		expenseShare = t.expenses.Div(initial).Mul(hundred)
	}
	qualifier, balanceColor := "Positive", colorIncome
	if current.IsNegative() {
		qualifier, balanceColor = "Negative", colorExpense
	}

	cols := []column{
		{title: "Item", share: 0.45, align: alignLeft},
		{title: "Value", share: 0.55, align: alignRight},
	}
	rows := []row{
		{cells: []string{"Initial Balance", r.cur.Format(initial)}, color: colorText},
		{cells: []string{"Total Income", fmt.Sprintf("%s (%d transactions)", r.cur.Format(t.income), t.incomeCount)}, color: colorIncome},
		{cells: []string{"Total Expenses", fmt.Sprintf("%s (%s of initial balance)", r.cur.Format(t.expenses), format.FormatPercent(expenseShare))}, color: colorExpense},
		{cells: []string{"Current Balance", fmt.Sprintf("%s (%s)", r.cur.Format(current), qualifier)}, color: balanceColor},
		{cells: []string{"Total Transactions", strconv.Itoa(t.incomeCount + t.expenseCount)}, color: colorText},
	}
	r.table(cols, rows)
}

func (r *renderer) categories(lines []CategoryLine) {
	r.sectionTitle("Category Breakdown")

	cols := []column{
		{title: "Category", share: 0.40, align: alignLeft},
		{title: "Count", share: 0.15, align: alignCenter},
		{title: "Total", share: 0.27, align: alignRight},
		{title: "Share", share: 0.18, align: alignRight},
	}
	rows := make([]row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row{
			cells: []string{l.Category, strconv.Itoa(l.Count), r.cur.Format(l.Total), format.FormatPercent(l.Percent)},
			color: colorText,
		})
	}
	r.table(cols, rows)
}

func (r *renderer) details(txs []ledger.Transaction) {
	r.sectionTitle("Transaction Details")

	cols := []column{
		{title: "#", share: 0.07, align: alignCenter},
		{title: "Date", share: 0.25, align: alignLeft},
		{title: "Category", share: 0.18, align: alignLeft},
		{title: "Description", share: 0.30, align: alignLeft},
		{title: "Amount", share: 0.20, align: alignRight},
	}
	rows := make([]row, 0, len(txs))
	for i, tx := range txs {
		category := tx.Category
		if category == "" {
			category = "General"
		}
		label := tx.Label
		if label == "" {
			label = "No description"
		}
		color := colorExpense
		if tx.IsIncome() {
			color = colorIncome
		}
		rows = append(rows, row{
			cells: []string{
				strconv.Itoa(i + 1),
				format.FormatDate(tx.Date.In(r.opts.Location)),
				category,
				label,
				r.cur.Signed(tx.Amount, tx.IsIncome()),
			},
			color: color,
		})
	}
	r.table(cols, rows)
}

func (r *renderer) placeholder() {
	r.ensure(16)
	r.c.SetTextColor(colorMuted)
	r.c.SetFont(FontItalic, 11)
	r.textCenter(r.width/2, r.y+8, "No transactions found for the selected period.")
	r.y += 16
}

func (r *renderer) totalsBox(t totals) {
	r.ensure(sectionGap + totalsHeight)
	r.y += sectionGap

	w := r.contentWidth() * 0.55
	x := r.width - margin - w
	r.c.SetFillColor(colorTotalFill)
	r.c.SetDrawColor(colorExpense)
	r.c.Rect(x, r.y, w, totalsHeight, RectFillStroke)

	r.c.SetTextColor(colorExpense)
	r.c.SetFont(FontBold, 12)
	r.c.Text(x+4, r.y+8, "Total Expenses: "+r.cur.Format(t.expenses))

	net := t.income.Sub(t.expenses)
	r.c.SetTextColor(colorText)
	r.c.SetFont(FontRegular, 10)
	r.c.Text(x+4, r.y+15, "Net (Income - Expenses): "+r.cur.Signed(net, !net.IsNegative()))

	r.y += totalsHeight
}

// =============================================================================
// TABLE
// =============================================================================

func (r *renderer) table(cols []column, rows []row) {
	r.tableHeader(cols)
	for i, rw := range rows {
		if r.ensure(rowHeight) {
			r.tableHeader(cols)
		}
		if i%2 == 1 {
			r.c.SetFillColor(colorZebra)
			r.c.Rect(margin, r.y, r.contentWidth(), rowHeight, RectFill)
		}
		r.c.SetTextColor(rw.color)
		r.c.SetFont(FontRegular, 9)
		r.cells(cols, rw.cells)
		r.y += rowHeight
	}
	r.c.SetDrawColor(colorBorder)
	r.c.Line(margin, r.y, r.width-margin, r.y)
	r.y += sectionGap
}

func (r *renderer) tableHeader(cols []column) {
	r.ensure(2 * rowHeight)
	r.c.SetFillColor(colorPrimary)
	r.c.Rect(margin, r.y, r.contentWidth(), rowHeight, RectFill)
	r.c.SetTextColor(colorWhite)
	r.c.SetFont(FontBold, 10)
	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.title
	}
	r.cells(cols, titles)
	r.y += rowHeight
}

func (r *renderer) cells(cols []column, values []string) {
	x := margin
	baseline := r.y + rowHeight - 2.2
	for i, col := range cols {
		w := r.contentWidth() * col.share
		if i < len(values) {
			text := r.fit(values[i], w-2*cellPadding)
			switch col.align {
			case alignRight:
				r.textRight(x+w-cellPadding, baseline, text)
			case alignCenter:
				r.textCenter(x+w/2, baseline, text)
			default:
				r.c.Text(x+cellPadding, baseline, text)
			}
		}
		x += w
	}
}

// fit truncates s with an ellipsis so that it is at most width wide.
func (r *renderer) fit(s string, width float64) string {
	if r.c.TextWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if r.c.TextWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func (r *renderer) textRight(x, y float64, s string) {
	r.c.Text(x-r.c.TextWidth(s), y, s)
}

func (r *renderer) textCenter(x, y float64, s string) {
	r.c.Text(x-r.c.TextWidth(s)/2, y, s)
}
