/*
Package ledger provides the personal finance ledger: the initial balance, the
running balance and the newest-first list of recorded transactions.

PURPOSE:
  The Ledger is the aggregate root of the tracker. It is a value type: every
  transition (set initial balance, add, delete, reset) returns a NEW Ledger and
  leaves the receiver untouched. Persistence is NOT part of the ledger; the
  owning session saves a snapshot after each transition.

KEY CONCEPTS IN THIS FILE (types.go):
  - TxType: expense or income, decides the sign of the balance effect
  - Transaction: an immutable record of one movement of money
  - NewTransaction: the input of AddTransaction

DESIGN PRINCIPLES:
  1. Immutability: Transactions are never modified, only removed
  2. Precision: Amounts use decimal.Decimal, never float64
  3. Unsigned amounts: the sign lives in Type, Amount is always > 0

USAGE:
  l, err := ledger.New().SetInitialBalance(decimal.NewFromInt(1000))
  l, tx, err := l.AddTransaction(ledger.NewTransaction{
      Label:  "Groceries",
      Amount: decimal.NewFromInt(120),
      Type:   ledger.TxExpense,
  })

SEE ALSO:
  - ledger.go: Ledger value and transitions
  - errors.go: Validation and persistence errors
  - store.go: Snapshot persistence adapter
*/
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION TYPE
// =============================================================================

type TxType string

const (
	TxExpense TxType = "expense" // Money leaving the balance
	TxIncome  TxType = "income"  // Money entering the balance
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == TxExpense || t == TxIncome
}

// =============================================================================
// TRANSACTION
// =============================================================================

type TransactionID string

// UncategorizedCategory is the bucket for transactions recorded without a category.
const UncategorizedCategory = "Uncategorized"

type Transaction struct {
	ID       TransactionID
	Label    string
	Amount   decimal.Decimal // always positive
	Date     time.Time
	Type     TxType
	Category string // optional
}

// Effect returns the signed change this transaction applies to the balance.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == TxIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// IsExpense reports whether t reduces the balance.
func (t Transaction) IsExpense() bool { return t.Type == TxExpense }

// IsIncome reports whether t increases the balance.
func (t Transaction) IsIncome() bool { return t.Type == TxIncome }

// CategoryOrDefault returns the category, or UncategorizedCategory when unset.
func (t Transaction) CategoryOrDefault() string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	return UncategorizedCategory
}

// NewTransaction is the input of Ledger.AddTransaction.
// A zero Date means "now"; an empty ID means a freshly generated one.
type NewTransaction struct {
	ID       TransactionID
	Label    string
	Amount   decimal.Decimal
	Type     TxType
	Category string
	Date     time.Time
}
