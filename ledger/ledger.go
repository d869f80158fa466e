/*
ledger.go - The Ledger value and its transitions

CRITICAL INVARIANT:
  currentBalance == initialBalance + Σ(income) − Σ(expense)

  The balance is maintained incrementally: AddTransaction applies the effect,
  DeleteTransaction reverses it. Verify() recomputes from scratch and must
  always agree.

LIFECYCLE:
  New()                 -> uninitialized (no initial balance)
  SetInitialBalance(x)  -> active, balance x, no transactions
  Add/Delete            -> active
  Reset()               -> uninitialized again, transactions discarded

TRANSITIONS ARE PURE:
  Every method has a value receiver and returns a new Ledger. The transaction
  slice is copied on write, so a Ledger handed to a caller never changes under
  its feet.
*/
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	initialized    bool
	initialBalance decimal.Decimal
	currentBalance decimal.Decimal
	transactions   []Transaction // newest first
}

// New returns an uninitialized ledger.
func New() Ledger {
	return Ledger{}
}

// Restore rebuilds an active ledger from persisted values.
// Transactions must already be ordered newest first.
func Restore(initial, current decimal.Decimal, txs []Transaction) Ledger {
	return Ledger{
		initialized:    true,
		initialBalance: initial,
		currentBalance: current,
		transactions:   append([]Transaction(nil), txs...),
	}
}

func (l Ledger) IsInitialized() bool             { return l.initialized }
func (l Ledger) InitialBalance() decimal.Decimal { return l.initialBalance }
func (l Ledger) CurrentBalance() decimal.Decimal { return l.currentBalance }
func (l Ledger) Len() int                        { return len(l.transactions) }

// Transactions returns a copy of the transactions, newest first.
func (l Ledger) Transactions() []Transaction {
	return append([]Transaction(nil), l.transactions...)
}

// Find returns the transaction with the given id.
func (l Ledger) Find(id TransactionID) (Transaction, bool) {
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Totals returns the summed income and expense amounts.
func (l Ledger) Totals() (income, expense decimal.Decimal) {
	for _, tx := range l.transactions {
		if tx.IsIncome() {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SetInitialBalance discards any prior state and starts a fresh active ledger.
func (l Ledger) SetInitialBalance(amount decimal.Decimal) (Ledger, error) {
	if !amount.IsPositive() {
		return l, newValidationError("amount", ErrInvalidAmount,
			"initial balance must be greater than zero, got %s", amount.String())
	}
	return Ledger{
		initialized:    true,
		initialBalance: amount,
		currentBalance: amount,
	}, nil
}

// AddTransaction validates in, prepends the new transaction and applies its
// effect. On error the receiver is returned unchanged.
func (l Ledger) AddTransaction(in NewTransaction) (Ledger, Transaction, error) {
	if !l.initialized {
		return l, Transaction{}, newValidationError("balance", ErrNotInitialized,
			"set an initial balance before recording transactions")
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		return l, Transaction{}, newValidationError("label", ErrEmptyLabel, "label cannot be empty")
	}
	if !in.Amount.IsPositive() {
		return l, Transaction{}, newValidationError("amount", ErrInvalidAmount,
			"amount must be greater than zero, got %s", in.Amount.String())
	}
	if !in.Type.Valid() {
		return l, Transaction{}, newValidationError("type", ErrInvalidType,
			"transaction type must be %q or %q, got %q", TxExpense, TxIncome, in.Type)
	}
	if in.ID != "" {
		if _, taken := l.Find(in.ID); taken {
			return l, Transaction{}, newValidationError("id", ErrDuplicateID,
				"transaction id %q is already in use", in.ID)
		}
	}
	if in.Type == TxExpense && in.Amount.GreaterThan(l.currentBalance) {
		short := &InsufficientBalanceError{
			Available: l.currentBalance,
			Requested: in.Amount,
			Shortfall: in.Amount.Sub(l.currentBalance),
		}
		return l, Transaction{}, &ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("insufficient balance: %s available", l.currentBalance.StringFixed(2)),
			Reason:  short,
		}
	}

	tx := Transaction{
		ID:       in.ID,
		Label:    label,
		Amount:   in.Amount,
		Date:     in.Date,
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
	}
	if tx.ID == "" {
		tx.ID = TransactionID(uuid.NewString())
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	next := Ledger{
		initialized:    true,
		initialBalance: l.initialBalance,
		currentBalance: l.currentBalance.Add(tx.Effect()),
		transactions:   make([]Transaction, 0, len(l.transactions)+1),
	}
	next.transactions = append(next.transactions, tx)
	next.transactions = append(next.transactions, l.transactions...)
	return next, tx, nil
}

// DeleteTransaction removes id and reverses its effect.
// Unknown ids are a no-op: the receiver is returned with false.
func (l Ledger) DeleteTransaction(id TransactionID) (Ledger, bool) {
	idx := -1
	for i, tx := range l.transactions {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return l, false
	}

	removed := l.transactions[idx]
	next := Ledger{
		initialized:    l.initialized,
		initialBalance: l.initialBalance,
		currentBalance: l.currentBalance.Sub(removed.Effect()),
		transactions:   make([]Transaction, 0, len(l.transactions)-1),
	}
	next.transactions = append(next.transactions, l.transactions[:idx]...)
	next.transactions = append(next.transactions, l.transactions[idx+1:]...)
	return next, true
}

// Reset returns the uninitialized ledger.
func (l Ledger) Reset() Ledger {
	return New()
}

// =============================================================================
// INVARIANT CHECK
// =============================================================================

// Verify recomputes the balance from scratch and compares it with the
// incrementally maintained one.
func (l Ledger) Verify() error {
	if !l.initialized {
		return nil
	}
	expected := l.initialBalance
	for _, tx := range l.transactions {
		expected = expected.Add(tx.Effect())
	}
	if !expected.Equal(l.currentBalance) {
		return fmt.Errorf("balance mismatch: stored %s, recomputed %s",
			l.currentBalance.String(), expected.String())
	}
	return nil
}
