package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"debt-planner/domain"
	"debt-planner/service"
)

type DebtHandler struct {
	service *service.DebtService
}

func NewDebtHandler(service *service.DebtService) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.service.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.Debt
	if !decodeJSON(w, r, &input) {
		return
	}

	debt, err := h.service.Create(r.Context(), chi.URLParam(r, "userID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, debt)
}

func (h *DebtHandler) Archive(w http.ResponseWriter, r *http.Request) {
	err := h.service.Archive(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "debtID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
