/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     logrus request logging, tagged with the request ID
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for a browser frontend

ROUTE GROUPS:
  /api/ledger/*         Balances and lifecycle
  /api/transactions/*   Record and delete transactions
  /api/breakdown        Weekly/monthly view
  /api/report           PDF export
  /api/health           Liveness probe

SECURITY NOTE:
  No authentication. The API is meant to listen on the local device only.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/warp/expense-tracker/logging"
)

// NewRouter creates a new router with all routes configured.
// allowedOrigins lists the browser origins accepted by CORS.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Report-Transactions", "X-Report-Total-Expenses", "X-Report-Total-Income", "X-Report-Net", "X-Report-Pages"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Ledger routes
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", h.GetLedger)
			r.Post("/initial-balance", h.SetInitialBalance)
			r.Post("/reset", h.ResetLedger)
		})

		// Transaction routes
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.AddTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})

		r.Get("/breakdown", h.GetBreakdown)
		r.Get("/report", h.GetReport)
	})

	return r
}
