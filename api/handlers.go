/*
handlers.go - HTTP API handlers for the expense tracker

PURPOSE:
  Exposes the owning session over a local JSON API. Handles HTTP
  request/response and JSON serialization, and delegates to the session.

ENDPOINTS:
  Ledger:
    GET    /api/ledger                  Balances, totals and transactions
    POST   /api/ledger/initial-balance  Start a fresh ledger
    POST   /api/ledger/reset            Discard everything

  Transactions:
    POST   /api/transactions            Record an expense or income
    DELETE /api/transactions/{id}       Remove a transaction

  Views:
    GET    /api/breakdown               Weekly and monthly top categories
    GET    /api/report                  PDF report download

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown transaction
  - 409: Ledger has no initial balance yet
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
	"github.com/warp/expense-tracker/report"
	"github.com/warp/expense-tracker/session"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Session *session.Session
	Log     logrus.FieldLogger

	// Location is used for display dates, period boundaries and report days.
	Location *time.Location
	Company  report.CompanyInfo
	// ReportTitle is the default title when the request does not set one.
	ReportTitle string
	Now         func() time.Time
}

// NewHandler creates a handler serving sess.
func NewHandler(sess *session.Session, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Session:  sess,
		Log:      log,
		Location: time.Local,
		Now:      time.Now,
	}
}

func (h *Handler) now() time.Time {
	return h.Now().In(h.Location)
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// GetLedger returns the current ledger.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toLedgerDTO(h.Session.Ledger(), h.Location))
}

// SetInitialBalance starts a fresh ledger with the given amount.
func (h *Handler) SetInitialBalance(w http.ResponseWriter, r *http.Request) {
	var req SetInitialBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := format.ParseAmount(string(req.Amount))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	l, err := h.Session.SetInitialBalance(r.Context(), amount)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerDTO(l, h.Location))
}

// ResetLedger discards the ledger and its stored snapshot.
func (h *Handler) ResetLedger(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset(r.Context())
	writeJSON(w, http.StatusOK, toLedgerDTO(h.Session.Ledger(), h.Location))
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// AddTransaction records an expense or an income. The type defaults to
// expense when omitted.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	typ := ledger.TxType(strings.ToLower(strings.TrimSpace(req.Type)))
	if typ == "" {
		typ = ledger.TxExpense
	}

	// A rejected amount is left at zero so the ledger reports problems in
	// its own order (label before amount).
	amount, parseErr := format.ParseAmount(string(req.Amount))

	tx, err := h.Session.AddTransaction(r.Context(), ledger.NewTransaction{
		Label:    req.Label,
		Amount:   amount,
		Type:     typ,
		Category: req.Category,
	})
	if err != nil {
		if parseErr != nil && errors.Is(err, ledger.ErrInvalidAmount) {
			err = parseErr
		}
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransactionCreatedDTO{
		Transaction: toTransactionDTO(tx, h.Location),
		Ledger:      toLedgerDTO(h.Session.Ledger(), h.Location),
	})
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := ledger.TransactionID(chi.URLParam(r, "id"))

	if !h.Session.DeleteTransaction(r.Context(), id) {
		writeError(w, http.StatusNotFound, "Transaction not found", fmt.Errorf("no transaction with id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, toLedgerDTO(h.Session.Ledger(), h.Location))
}

// =============================================================================
// VIEW HANDLERS
// =============================================================================

// GetBreakdown returns the weekly and monthly top categories as of now.
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toBreakdownDTO(h.Session.Breakdown(h.now())))
}

// GetReport renders the PDF report and sends it as an attachment.
//
// Query parameters:
//
//	group_by_category  bool, adds the category breakdown section
//	from, to           YYYY-MM-DD, both or neither
//	title              report title
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	opts, err := h.reportOptions(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	res, err := h.Session.Report(&buf, opts)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "application/pdf")
	hdr.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	hdr.Set("Content-Length", strconv.Itoa(buf.Len()))
	hdr.Set("X-Report-Transactions", strconv.Itoa(res.TransactionCount))
	hdr.Set("X-Report-Total-Expenses", res.TotalExpenses.StringFixed(2))
	hdr.Set("X-Report-Total-Income", res.TotalIncome.StringFixed(2))
	hdr.Set("X-Report-Net", res.Net.StringFixed(2))
	hdr.Set("X-Report-Pages", strconv.Itoa(res.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Log.WithError(err).WithField("filename", res.Filename).Warn("report download interrupted")
	}
}

func (h *Handler) reportOptions(r *http.Request) (report.Options, error) {
	q := r.URL.Query()
	opts := report.Options{
		Title:    strings.TrimSpace(q.Get("title")),
		Company:  h.Company,
		Now:      h.now(),
		Location: h.Location,
	}
	if opts.Title == "" {
		opts.Title = h.ReportTitle
	}

	if v := q.Get("group_by_category"); v != "" {
		group, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &ledger.ValidationError{Field: "group_by_category", Message: fmt.Sprintf("group_by_category must be true or false, got %q", v)}
		}
		opts.GroupByCategory = group
	}

	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		return opts, nil
	}
	if from == "" || to == "" {
		return opts, &ledger.ValidationError{Field: "date_range", Message: "from and to must be given together"}
	}
	fromDay, err := format.ParseISODay(from, h.Location)
	if err != nil {
		return opts, &ledger.ValidationError{Field: "from", Message: fmt.Sprintf("from must be YYYY-MM-DD, got %q", from)}
	}
	toDay, err := format.ParseISODay(to, h.Location)
	if err != nil {
		return opts, &ledger.ValidationError{Field: "to", Message: fmt.Sprintf("to must be YYYY-MM-DD, got %q", to)}
	}
	opts.DateRange = &report.DateRange{From: fromDay, To: toDay}
	return opts, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps ledger and session errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrNotInitialized):
		writeError(w, http.StatusConflict, "Ledger not initialized", errors.New("set an initial balance first"))
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Field: ve.Field, Details: ve.Message})
	default:
		h.Log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
