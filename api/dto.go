/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the ledger model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts are returned as decimal strings with two places ("1250.50") next to
  a display string ("₹1,250.50"). Request amounts may be a JSON number or a
  string, and strings may use a comma decimal separator ("12,50").

VALIDATION:
  Validation is done in handlers (format.ParseAmount, ledger transitions),
  not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/breakdown"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// AmountInput is a request amount given either as a JSON number or string.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	*a = AmountInput(data)
	return nil
}

type SetInitialBalanceRequest struct {
	Amount AmountInput `json:"amount"`
}

type AddTransactionRequest struct {
	Label    string      `json:"label"`
	Amount   AmountInput `json:"amount"`
	Type     string      `json:"type"`               // "expense" or "income"
	Category string      `json:"category,omitempty"` // optional
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type MoneyDTO struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

func money(d decimal.Decimal) MoneyDTO {
	return MoneyDTO{Value: d.StringFixed(2), Display: format.FormatCurrency(d)}
}

type TransactionDTO struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Amount   MoneyDTO `json:"amount"`
	Signed   string   `json:"signed"` // "+₹500.00" / "-₹120.00"
	Type     string   `json:"type"`
	Category string   `json:"category,omitempty"`
	Date     string   `json:"date"` // RFC 3339
	Display  string   `json:"display_date"`
}

type LedgerDTO struct {
	Initialized    bool             `json:"initialized"`
	InitialBalance MoneyDTO         `json:"initial_balance"`
	CurrentBalance MoneyDTO         `json:"current_balance"`
	TotalIncome    MoneyDTO         `json:"total_income"`
	TotalExpenses  MoneyDTO         `json:"total_expenses"`
	Transactions   []TransactionDTO `json:"transactions"`
}

// TransactionCreatedDTO is returned by POST /api/transactions.
type TransactionCreatedDTO struct {
	Transaction TransactionDTO `json:"transaction"`
	Ledger      LedgerDTO      `json:"ledger"`
}

type CategoryDTO struct {
	Name    string   `json:"name"`
	Amount  MoneyDTO `json:"amount"`
	Count   int      `json:"count"`
	Percent string   `json:"percent"`
}

type PeriodDTO struct {
	Start         string        `json:"start"`
	Total         MoneyDTO      `json:"total"`
	ExpenseTotal  MoneyDTO      `json:"expense_total"`
	IncomeTotal   MoneyDTO      `json:"income_total"`
	Count         int           `json:"count"`
	TopCategories []CategoryDTO `json:"top_categories"`
}

type BreakdownDTO struct {
	AsOf    string    `json:"as_of"`
	Weekly  PeriodDTO `json:"weekly"`
	Monthly PeriodDTO `json:"monthly"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTransactionDTO(tx ledger.Transaction, loc *time.Location) TransactionDTO {
	return TransactionDTO{
		ID:       string(tx.ID),
		Label:    tx.Label,
		Amount:   money(tx.Amount),
		Signed:   format.INR.Signed(tx.Amount, tx.IsIncome()),
		Type:     string(tx.Type),
		Category: tx.Category,
		Date:     tx.Date.Format(time.RFC3339),
		Display:  format.FormatDate(tx.Date.In(loc)),
	}
}

func toLedgerDTO(l ledger.Ledger, loc *time.Location) LedgerDTO {
	income, expenses := l.Totals()
	txs := l.Transactions()
	dto := LedgerDTO{
		Initialized:    l.IsInitialized(),
		InitialBalance: money(l.InitialBalance()),
		CurrentBalance: money(l.CurrentBalance()),
		TotalIncome:    money(income),
		TotalExpenses:  money(expenses),
		Transactions:   make([]TransactionDTO, len(txs)),
	}
	for i, tx := range txs {
		dto.Transactions[i] = toTransactionDTO(tx, loc)
	}
	return dto
}

func toPeriodDTO(p breakdown.Period) PeriodDTO {
	top := p.Top(breakdown.TopN)
	dto := PeriodDTO{
		Start:         p.Start.Format(time.RFC3339),
		Total:         money(p.Total),
		ExpenseTotal:  money(p.ExpenseTotal),
		IncomeTotal:   money(p.IncomeTotal),
		Count:         p.Count,
		TopCategories: make([]CategoryDTO, len(top)),
	}
	for i, c := range top {
		dto.TopCategories[i] = CategoryDTO{
			Name:    c.Name,
			Amount:  money(c.Amount),
			Count:   c.Count,
			Percent: format.FormatPercent(p.Share(c.Amount)),
		}
	}
	return dto
}

func toBreakdownDTO(b breakdown.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		AsOf:    b.AsOf.Format(time.RFC3339),
		Weekly:  toPeriodDTO(b.Weekly),
		Monthly: toPeriodDTO(b.Monthly),
	}
}
