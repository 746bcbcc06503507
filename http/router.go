package http

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Payoff      *PayoffHandler
	Debts       *DebtHandler
	Installment *InstallmentHandler
}

// NewRouter wires every route behind the shared middleware stack. A nil
// limiter disables rate limiting.
//
// sentryhttp sits inside Recoverer: it reports the panic and re-panics so
// Recoverer can still answer 500.
func NewRouter(h Handlers, limiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Post("/debts/payoff", h.Payoff.Project)
		r.Post("/debts/payoff/compare", h.Payoff.Compare)

		r.Route("/users/{userID}/debts", func(r chi.Router) {
			r.Get("/", h.Debts.List)
			r.Post("/", h.Debts.Create)
			r.Get("/payoff", h.Payoff.ProjectForUser)
			r.Post("/{debtID}/archive", h.Debts.Archive)
		})

		r.Post("/installments/schedule", h.Installment.Schedule)
		r.Post("/installments/billing-cycle", h.Installment.BillingCycle)
	})

	return r
}
