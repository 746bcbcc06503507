package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// monthsInYearPercent convierte una tasa anual en porcentaje a tasa mensual.
var monthsInYearPercent = decimal.NewFromInt(1200)

// roundToCents redondea un monto a 2 decimales (mitad lejos de cero)
func roundToCents(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.DivRound(monthsInYearPercent, 16)
}

// workingDebt is the mutable copy of one debt for the length of a single run.
type workingDebt struct {
	debt           domain.Debt
	initial        decimal.Decimal
	annual         decimal.Decimal
	rate           decimal.Decimal
	minimum        decimal.Decimal
	balance        decimal.Decimal
	accrued        decimal.Decimal // interés cargado en el mes en curso
	interestPaid   decimal.Decimal
	monthsToPayoff int
	payments       []domain.MonthlyPayment
	active         bool
}

func newWorkingDebt(d domain.Debt) *workingDebt {
	initial := d.InitialBalance
	if !initial.IsPositive() {
		initial = d.CurrentBalance
	}
	annual := decimal.Max(d.InterestRateAnnual, decimal.Zero)
	return &workingDebt{
		debt:    d,
		initial: initial,
		annual:  annual,
		rate:    monthlyRate(annual),
		minimum: decimal.Max(d.MinimumPayment, decimal.Zero),
		balance: d.CurrentBalance,
		active:  true,
	}
}

func (w *workingDebt) paidOff() bool {
	return !w.balance.IsPositive()
}

// addExtra records a principal-only payment, amending this month's entry when
// the minimum payment already created one.
func (w *workingDebt) addExtra(month int, amount decimal.Decimal) {
	w.balance = w.balance.Sub(amount)
	if n := len(w.payments); n > 0 && w.payments[n-1].Month == month {
		last := &w.payments[n-1]
		last.Payment = last.Payment.Add(amount)
		last.Principal = last.Principal.Add(amount)
		last.RemainingBalance = w.balance
		return
	}
	w.payments = append(w.payments, domain.MonthlyPayment{
		Month:            month,
		Payment:          amount,
		Interest:         decimal.Zero,
		Principal:        amount,
		RemainingBalance: w.balance,
	})
}

func (w *workingDebt) detail() domain.DebtPayoffDetail {
	principal := w.initial.Sub(w.balance)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	return domain.DebtPayoffDetail{
		DebtID:          w.debt.ID,
		MonthsToPayoff:  w.monthsToPayoff,
		InterestPaid:    w.interestPaid,
		PrincipalPaid:   principal,
		MonthlyPayments: w.payments,
	}
}

// CalculateDebtPayoff simulates the monthly amortization of debts until every
// balance reaches zero or MaxPayoffMonths is hit. Archived debts and debts
// without a positive balance are ignored. Input slices are never modified.
//
// Each month interest accrues first, then every debt receives its minimum
// payment, then the extra payment pool (the extra amount plus the minimums of
// debts that finished) is spent in strategy order. A projection that hits the
// cap with debt outstanding reports domain.NeverPaidOff.
func CalculateDebtPayoff(
	debts []domain.Debt,
	extraMonthlyPayment decimal.Decimal,
	strategy domain.Strategy,
) domain.DebtProjection {

	extra := decimal.Max(extraMonthlyPayment, decimal.Zero)

	working := make([]*workingDebt, 0, len(debts))
	for _, d := range debts {
		if d.Payable() {
			working = append(working, newWorkingDebt(d))
		}
	}

	totalInterest := decimal.Zero
	month := 0

	for hasActive(working) && month < MaxPayoffMonths {
		month++

		// 1. Acumular intereses
		for _, w := range working {
			if !w.active {
				continue
			}
			w.accrued = roundToCents(w.balance.Mul(w.rate))
			w.balance = w.balance.Add(w.accrued)
			w.interestPaid = w.interestPaid.Add(w.accrued)
			totalInterest = totalInterest.Add(w.accrued)
		}

		// 2. Pagos mínimos; los mínimos liberados pasan al pool del mes
		pool := extra
		for _, w := range working {
			if !w.active {
				continue
			}
			payment := decimal.Min(w.balance, w.minimum)
			interest := decimal.Min(w.accrued, payment)
			w.balance = w.balance.Sub(payment)
			w.payments = append(w.payments, domain.MonthlyPayment{
				Month:            month,
				Payment:          payment,
				Interest:         interest,
				Principal:        payment.Sub(interest),
				RemainingBalance: w.balance,
			})
			if w.paidOff() {
				pool = pool.Add(w.minimum)
			}
		}

		// 3. Repartir el pool según la estrategia, en cascada dentro del mes
		for _, w := range payoffOrder(working, strategy) {
			if !pool.IsPositive() {
				break
			}
			payment := decimal.Min(w.balance, pool)
			w.addExtra(month, payment)
			pool = pool.Sub(payment)
			if w.paidOff() {
				pool = pool.Add(w.minimum)
			}
		}

		// 4. Registrar las deudas saldadas este mes
		for _, w := range working {
			if w.active && w.paidOff() {
				w.monthsToPayoff = month
				w.active = false
			}
		}
	}

	monthsToPayoff := month
	for _, w := range working {
		if w.active {
			w.monthsToPayoff = MaxPayoffMonths
			monthsToPayoff = domain.NeverPaidOff
		}
	}

	sort.SliceStable(working, func(i, j int) bool {
		if working[i].monthsToPayoff != working[j].monthsToPayoff {
			return working[i].monthsToPayoff < working[j].monthsToPayoff
		}
		return working[i].initial.LessThan(working[j].initial)
	})

	details := make([]domain.DebtPayoffDetail, 0, len(working))
	totalPrincipal := decimal.Zero
	for _, w := range working {
		detail := w.detail()
		totalPrincipal = totalPrincipal.Add(detail.PrincipalPaid)
		details = append(details, detail)
	}

	return domain.DebtProjection{
		Strategy:           strategy,
		MonthsToPayoff:     monthsToPayoff,
		TotalInterestPaid:  totalInterest,
		TotalPrincipalPaid: totalPrincipal,
		TotalPaid:          totalInterest.Add(totalPrincipal),
		PayoffDetails:      details,
	}
}

func hasActive(working []*workingDebt) bool {
	for _, w := range working {
		if w.active {
			return true
		}
	}
	return false
}

// payoffOrder returns the debts that still owe money, ordered by the strategy.
// Ties keep input order.
func payoffOrder(working []*workingDebt, strategy domain.Strategy) []*workingDebt {
	order := make([]*workingDebt, 0, len(working))
	for _, w := range working {
		if w.active && !w.paidOff() {
			order = append(order, w)
		}
	}

	switch strategy {
	case domain.Avalanche:
		sort.SliceStable(order, func(i, j int) bool {
			if c := order[i].annual.Cmp(order[j].annual); c != 0 {
				return c > 0
			}
			return order[i].balance.LessThan(order[j].balance)
		})
	default: // Snowball y Minimums
		sort.SliceStable(order, func(i, j int) bool {
			if c := order[i].balance.Cmp(order[j].balance); c != 0 {
				return c < 0
			}
			return order[i].annual.GreaterThan(order[j].annual)
		})
	}
	return order
}
