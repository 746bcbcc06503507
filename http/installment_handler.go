package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/service"
)

type InstallmentHandler struct {
	service *service.InstallmentService
}

func NewInstallmentHandler(service *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{service: service}
}

func (h *InstallmentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.ScheduleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Schedule(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *InstallmentHandler) BillingCycle(w http.ResponseWriter, r *http.Request) {
	var input domain.BillingCycleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.BillingCycle(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
