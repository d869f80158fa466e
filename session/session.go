/*
Package session owns the running ledger.

PURPOSE:
  A Session is the single writer of the ledger for one device. It applies
  transitions, swaps in the resulting Ledger, and saves a snapshot after every
  successful transition.

KEY CONCEPTS:
  - The Ledger itself is an immutable value; the Session is the only mutable
    holder. A mutex serialises transitions so concurrent callers (HTTP
    handlers) observe one-at-a-time updates.
  - Persistence is best-effort: a failed save is logged by the Persister and
    the in-memory state stays authoritative. Transitions never roll back.
  - Failed transitions leave both the ledger and the stored snapshot untouched.

SEE ALSO:
  - ledger/ledger.go: Transition rules
  - ledger/store.go: Snapshot persistence
*/
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/expense-tracker/breakdown"
	"github.com/warp/expense-tracker/ledger"
	"github.com/warp/expense-tracker/report"
)

// =============================================================================
// OPTIONS
// =============================================================================

type Option func(*Session)

// WithClock replaces time.Now as the source of transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator replaces the UUID generator for transaction ids.
func WithIDGenerator(next func() ledger.TransactionID) Option {
	return func(s *Session) { s.nextID = next }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// =============================================================================
// SESSION
// =============================================================================

type Session struct {
	mu        sync.Mutex
	ledger    ledger.Ledger
	persister *ledger.Persister
	now       func() time.Time
	nextID    func() ledger.TransactionID
	log       logrus.FieldLogger
}

// Open restores the stored ledger, or starts uninitialized when none is stored
// or it cannot be read. A nil persister keeps the session in memory only.
func Open(ctx context.Context, p *ledger.Persister, opts ...Option) *Session {
	s := &Session{
		persister: p,
		now:       time.Now,
		nextID:    func() ledger.TransactionID { return ledger.TransactionID(uuid.NewString()) },
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ledger = ledger.New()
	if p != nil {
		if l, ok := p.Load(ctx); ok {
			s.ledger = l
		}
	}
	s.log.WithFields(logrus.Fields{
		"initialized":  s.ledger.IsInitialized(),
		"transactions": s.ledger.Len(),
	}).Info("session opened")
	return s
}

// Ledger returns the current ledger value.
func (s *Session) Ledger() ledger.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SetInitialBalance starts a fresh ledger, discarding all transactions.
func (s *Session) SetInitialBalance(ctx context.Context, amount decimal.Decimal) (ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.ledger.SetInitialBalance(amount)
	if err != nil {
		return s.ledger, err
	}
	s.commit(ctx, next)
	s.log.WithField("initial_balance", amount.String()).Info("initial balance set")
	return next, nil
}

// AddExpense records an expense dated now.
func (s *Session) AddExpense(ctx context.Context, label string, amount decimal.Decimal, category string) (ledger.Transaction, error) {
	return s.AddTransaction(ctx, ledger.NewTransaction{
		Label: label, Amount: amount, Type: ledger.TxExpense, Category: category,
	})
}

// AddIncome records an income dated now.
func (s *Session) AddIncome(ctx context.Context, label string, amount decimal.Decimal, category string) (ledger.Transaction, error) {
	return s.AddTransaction(ctx, ledger.NewTransaction{
		Label: label, Amount: amount, Type: ledger.TxIncome, Category: category,
	})
}

// AddTransaction records in. Missing id and date are filled from the
// session's generator and clock.
func (s *Session) AddTransaction(ctx context.Context, in ledger.NewTransaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID == "" {
		in.ID = s.nextID()
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	next, tx, err := s.ledger.AddTransaction(in)
	if err != nil {
		return ledger.Transaction{}, err
	}
	s.commit(ctx, next)
	s.log.WithFields(logrus.Fields{
		"id":     tx.ID,
		"type":   tx.Type,
		"amount": tx.Amount.String(),
	}).Debug("transaction recorded")
	return tx, nil
}

// DeleteTransaction removes id. It reports false, and saves nothing, when no
// such transaction exists.
func (s *Session) DeleteTransaction(ctx context.Context, id ledger.TransactionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.ledger.DeleteTransaction(id)
	if !ok {
		return false
	}
	s.commit(ctx, next)
	s.log.WithField("id", id).Debug("transaction deleted")
	return true
}

// Reset discards the ledger and its stored snapshot.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, s.ledger.Reset())
	s.log.Info("ledger reset")
}

func (s *Session) commit(ctx context.Context, next ledger.Ledger) {
	s.ledger = next
	if s.persister != nil {
		s.persister.Save(ctx, next)
	}
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// Breakdown computes the weekly and monthly views as of now.
func (s *Session) Breakdown(now time.Time) breakdown.Breakdown {
	return breakdown.Compute(s.Ledger().Transactions(), now)
}

// Report streams the PDF report of the current ledger to w.
func (s *Session) Report(w io.Writer, opts report.Options) (report.Result, error) {
	l, err := s.activeLedger()
	if err != nil {
		return report.Result{}, err
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	return report.WritePDF(w, l.Transactions(), l.InitialBalance(), l.CurrentBalance(), opts)
}

// ExportReport writes the PDF report of the current ledger into dir.
func (s *Session) ExportReport(dir string, opts report.Options) (report.Result, error) {
	l, err := s.activeLedger()
	if err != nil {
		return report.Result{}, err
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	res, err := report.SaveFile(dir, l.Transactions(), l.InitialBalance(), l.CurrentBalance(), opts)
	if err != nil {
		s.log.WithError(err).WithField("dir", dir).Error("report export failed")
		return res, err
	}
	s.log.WithFields(logrus.Fields{
		"path":         res.Path,
		"transactions": res.TransactionCount,
		"pages":        res.Pages,
	}).Info("report exported")
	return res, nil
}

func (s *Session) activeLedger() (ledger.Ledger, error) {
	l := s.Ledger()
	if !l.IsInitialized() {
		return l, ledger.ErrNotInitialized
	}
	return l, nil
}
