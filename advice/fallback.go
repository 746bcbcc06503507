package advice

import (
	"context"
	"fmt"

	"debt-planner/domain"
)

// Fallback builds the summary from the projection alone.
type Fallback struct{}

func (Fallback) Advise(ctx context.Context, p domain.DebtProjection) string {
	if len(p.PayoffDetails) == 0 {
		return "No tienes deudas activas para proyectar."
	}

	name := strategyName(p.Strategy)
	if !p.Converges() {
		return fmt.Sprintf("Con la estrategia %s y los pagos actuales tus deudas no se terminan de pagar en %d años: "+
			"los pagos mínimos no alcanzan a cubrir los intereses. Aumenta el pago extra mensual o renegocia la tasa de tus deudas más caras.",
			name, maxYears)
	}

	return fmt.Sprintf("Con la estrategia %s, pagarás $%s en intereses y terminarás de pagar todas tus deudas en %d meses (%.1f años). %s",
		name, p.TotalInterestPaid.StringFixed(2), p.MonthsToPayoff, float64(p.MonthsToPayoff)/12.0,
		strategyTip(p.Strategy))
}

const maxYears = 60

func strategyName(s domain.Strategy) string {
	switch s {
	case domain.Avalanche:
		return "Avalanche (Avalancha)"
	case domain.Minimums:
		return "de pagos mínimos"
	}
	return "Snowball (Bola de Nieve)"
}

func strategyTip(s domain.Strategy) string {
	switch s {
	case domain.Avalanche:
		return "Esta estrategia minimiza el costo total pagando primero las deudas con mayor interés."
	case domain.Minimums:
		return "Agregar aunque sea un pequeño pago extra cada mes acorta el plazo y reduce los intereses."
	}
	return "Esta estrategia te ayuda a mantener la motivación al ver progreso rápido pagando deudas pequeñas primero."
}
