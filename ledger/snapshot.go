package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SNAPSHOT WIRE FORMAT
// =============================================================================
//
//   {
//     "initialBalance": 1000,
//     "currentBalance": 880,
//     "expenses": [
//       {"id": "...", "label": "Groceries", "amount": 120,
//        "date": "2026-10-15T09:30:00Z", "type": "expense", "category": "Food"}
//     ]
//   }
//
// The list keeps the historical name "expenses" although it also holds income.
// Amounts are JSON numbers; numeric strings are accepted on read. A missing
// "type" means expense: snapshots written before income existed have none.

type snapshotJSON struct {
	InitialBalance json.Number       `json:"initialBalance"`
	CurrentBalance json.Number       `json:"currentBalance"`
	Expenses       []transactionJSON `json:"expenses"`
}

type transactionJSON struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Amount   json.Number `json:"amount"`
	Date     time.Time   `json:"date"`
	Type     TxType      `json:"type,omitempty"`
	Category string      `json:"category,omitempty"`
}

// EncodeSnapshot serializes an active ledger.
func EncodeSnapshot(l Ledger) ([]byte, error) {
	if !l.IsInitialized() {
		return nil, errors.New("cannot encode an uninitialized ledger")
	}
	snap := snapshotJSON{
		InitialBalance: json.Number(l.initialBalance.String()),
		CurrentBalance: json.Number(l.currentBalance.String()),
		Expenses:       make([]transactionJSON, 0, len(l.transactions)),
	}
	for _, tx := range l.transactions {
		snap.Expenses = append(snap.Expenses, transactionJSON{
			ID:       string(tx.ID),
			Label:    tx.Label,
			Amount:   json.Number(tx.Amount.String()),
			Date:     tx.Date.UTC(),
			Type:     tx.Type,
			Category: tx.Category,
		})
	}
	return json.Marshal(snap)
}

// DecodeSnapshot parses a stored snapshot into an active ledger. Values a
// ledger could never hold are rejected: a non-positive initial balance or
// amount, a blank label, a missing or repeated id.
func DecodeSnapshot(data []byte) (Ledger, error) {
	var snap snapshotJSON
	if err := json.Unmarshal(data, &snap); err != nil {
		return Ledger{}, fmt.Errorf("parse snapshot: %w", err)
	}

	initial, err := parseNumber("initialBalance", snap.InitialBalance)
	if err != nil {
		return Ledger{}, err
	}
	current, err := parseNumber("currentBalance", snap.CurrentBalance)
	if err != nil {
		return Ledger{}, err
	}

	if !initial.IsPositive() {
		return Ledger{}, fmt.Errorf("initialBalance: %w, got %s", ErrInvalidAmount, initial.String())
	}

	txs := make([]Transaction, 0, len(snap.Expenses))
	seen := make(map[string]struct{}, len(snap.Expenses))
	for i, raw := range snap.Expenses {
		if raw.ID == "" {
			return Ledger{}, fmt.Errorf("expenses[%d].id: missing", i)
		}
		if _, dup := seen[raw.ID]; dup {
			return Ledger{}, fmt.Errorf("expenses[%d].id: %w %q", i, ErrDuplicateID, raw.ID)
		}
		seen[raw.ID] = struct{}{}
		if strings.TrimSpace(raw.Label) == "" {
			return Ledger{}, fmt.Errorf("expenses[%d].label: %w", i, ErrEmptyLabel)
		}
		amount, err := parseNumber(fmt.Sprintf("expenses[%d].amount", i), raw.Amount)
		if err != nil {
			return Ledger{}, err
		}
		if !amount.IsPositive() {
			return Ledger{}, fmt.Errorf("expenses[%d].amount: %w, got %s", i, ErrInvalidAmount, amount.String())
		}
		if raw.Date.IsZero() {
			return Ledger{}, fmt.Errorf("expenses[%d].date: missing", i)
		}
		typ := raw.Type
		if typ == "" {
			typ = TxExpense
		}
		if !typ.Valid() {
			return Ledger{}, fmt.Errorf("expenses[%d].type: %w %q", i, ErrInvalidType, typ)
		}
		txs = append(txs, Transaction{
			ID:       TransactionID(raw.ID),
			Label:    raw.Label,
			Amount:   amount,
			Date:     raw.Date,
			Type:     typ,
			Category: raw.Category,
		})
	}
	return Restore(initial, current, txs), nil
}

func parseNumber(field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("%s: missing", field)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
