package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

var (
	maxDebtAmount   = decimal.NewFromFloat(MaxDebtAmount)
	maxInterestRate = decimal.NewFromFloat(MaxInterestRate)
)

// validatePayoffRequest rechaza entradas malformadas antes de simular.
// Un pago mínimo en cero es válido: la proyección lo reporta como NeverPaidOff.
func validatePayoffRequest(req domain.PayoffRequest) error {
	var errs ValidationErrors

	if !req.Strategy.Valid() {
		errs.add("strategy", "estrategia inválida: %q", req.Strategy)
	}
	if req.ExtraMonthlyPayment.IsNegative() {
		errs.add("extra_monthly_payment", "el pago extra no puede ser negativo")
	}
	if len(req.Debts) > MaxDebtsPerRequest {
		errs.add("debts", "número de deudas excede el máximo de %d", MaxDebtsPerRequest)
		return errs.err()
	}

	ids := make(map[string]bool, len(req.Debts))
	for i, debt := range req.Debts {
		field := fmt.Sprintf("debts[%d]", i)
		if debt.ID == "" {
			errs.add(field+".id", "el id de la deuda no puede estar vacío")
		} else if ids[debt.ID] {
			errs.add(field+".id", "id de deuda duplicado: %s", debt.ID)
		}
		ids[debt.ID] = true

		validateDebtAmounts(&errs, field, debt)
	}

	return errs.err()
}

func validateDebtAmounts(errs *ValidationErrors, field string, debt domain.Debt) {
	if debt.CurrentBalance.IsNegative() {
		errs.add(field+".current_balance", "saldo actual inválido")
	}
	if debt.CurrentBalance.GreaterThan(maxDebtAmount) {
		errs.add(field+".current_balance", "monto de deuda excede el máximo de $%.2f", MaxDebtAmount)
	}
	if debt.InitialBalance.IsNegative() {
		errs.add(field+".initial_balance", "saldo inicial inválido")
	}
	if debt.InterestRateAnnual.IsNegative() {
		errs.add(field+".interest_rate_annual", "tasa de interés inválida")
	}
	if debt.InterestRateAnnual.GreaterThan(maxInterestRate) {
		errs.add(field+".interest_rate_annual", "tasa de interés excede el máximo de %.2f%%", MaxInterestRate)
	}
	if debt.MinimumPayment.IsNegative() {
		errs.add(field+".minimum_payment", "pago mínimo inválido")
	}
}
