package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"debt-planner/domain"
	"debt-planner/service"
)

type PayoffHandler struct {
	payoff     *service.DebtPayoffService
	comparison *service.ComparisonService
}

func NewPayoffHandler(payoff *service.DebtPayoffService, comparison *service.ComparisonService) *PayoffHandler {
	return &PayoffHandler{payoff: payoff, comparison: comparison}
}

// Project handles POST /debts/payoff.
func (h *PayoffHandler) Project(w http.ResponseWriter, r *http.Request) {
	var input domain.PayoffRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Strategy == "" {
		input.Strategy = domain.Snowball
	}

	result, err := h.payoff.Project(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Compare handles POST /debts/payoff/compare.
func (h *PayoffHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.PayoffRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.comparison.Compare(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ProjectForUser handles GET /users/{userID}/debts/payoff?strategy=&extra=.
func (h *PayoffHandler) ProjectForUser(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	strategy := domain.Strategy(query.Get("strategy"))
	if strategy == "" {
		strategy = domain.Snowball
	}

	extra := decimal.Zero
	if raw := query.Get("extra"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, r, &service.ValidationError{Field: "extra", Message: "pago extra inválido"})
			return
		}
		extra = parsed
	}

	result, err := h.payoff.ProjectForUser(r.Context(), chi.URLParam(r, "userID"), extra, strategy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
