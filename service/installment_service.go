package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// InstallmentService computes credit card installment plans and billing cycles.
type InstallmentService struct{}

func NewInstallmentService() *InstallmentService {
	return &InstallmentService{}
}

// CalculateInstallmentAmount returns the installment amount, the total paid and
// the interest for a purchase split into count installments. A zero rate splits
// the total evenly; otherwise the French amortization formula applies.
func CalculateInstallmentAmount(
	total decimal.Decimal,
	count int,
	annualRate decimal.Decimal,
) (installment, totalPayment, totalInterest decimal.Decimal) {

	n := decimal.NewFromInt(int64(count))

	if annualRate.IsZero() {
		installment = total.DivRound(n, 2)
		return installment, total, decimal.Zero
	}

	// cuota = P * r * (1+r)^n / ((1+r)^n - 1)
	tasaMensual := monthlyRate(annualRate)
	factor := decimal.NewFromInt(1).Add(tasaMensual).Pow(n)
	cuota := total.Mul(tasaMensual).Mul(factor).DivRound(factor.Sub(decimal.NewFromInt(1)), 16)

	installment = roundToCents(cuota)
	totalPayment = installment.Mul(n)
	return installment, totalPayment, totalPayment.Sub(total)
}

// Schedule lists every installment of a purchase with its statement and due date.
func (s *InstallmentService) Schedule(input domain.ScheduleInput) (domain.InstallmentSchedule, error) {
	var errs ValidationErrors
	validateCard(&errs, input.Card)
	validatePurchase(&errs, "purchase", input.Purchase)
	if err := errs.err(); err != nil {
		return domain.InstallmentSchedule{}, err
	}

	p := input.Purchase
	amount, totalPayment, totalInterest := CalculateInstallmentAmount(p.TotalAmount, p.InstallmentCount, p.InterestRateAnnual)

	installments := make([]domain.Installment, 0, p.InstallmentCount)
	for n := 1; n <= p.InstallmentCount; n++ {
		statement, due := CalculateInstallmentDueDate(p.PurchaseDate, n, input.Card)
		installments = append(installments, domain.Installment{
			PurchaseID: p.ID,
			Number:     n,
			Of:         p.InstallmentCount,
			Amount:     installmentAmount(n, p.InstallmentCount, amount, totalPayment),
			Statement:  statement,
			DueDate:    due,
		})
	}

	return domain.InstallmentSchedule{
		PurchaseID:        p.ID,
		InstallmentAmount: amount,
		TotalPayment:      totalPayment,
		TotalInterest:     totalInterest,
		Installments:      installments,
	}, nil
}

// BillingCycle returns the installments billed on the statement that closes in
// the given month.
func (s *InstallmentService) BillingCycle(input domain.BillingCycleInput) (domain.BillingCycleResult, error) {
	var errs ValidationErrors
	validateCard(&errs, input.Card)
	if input.Year < 1 || input.Month < time.January || input.Month > time.December {
		errs.add("month", "periodo de facturación inválido")
	}
	for i, p := range input.Purchases {
		validatePurchase(&errs, fmt.Sprintf("purchases[%d]", i), p)
	}
	if err := errs.err(); err != nil {
		return domain.BillingCycleResult{}, err
	}

	installments := EligibleInstallmentsForBillingCycle(input.Purchases, input.Card, input.Year, input.Month)
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.Amount)
	}

	statement := statementDate(input.Year, input.Month, input.Card, time.UTC)
	return domain.BillingCycleResult{
		Statement:    statement,
		DueDate:      dueDateFor(statement, input.Card),
		Total:        total,
		Installments: installments,
	}, nil
}

// EligibleInstallmentsForBillingCycle picks, for each purchase, the installment
// billed on the statement closing in year/month, if any.
func EligibleInstallmentsForBillingCycle(
	purchases []domain.InstallmentPurchase,
	card domain.CreditCard,
	year int,
	month time.Month,
) []domain.Installment {

	out := []domain.Installment{}
	for _, p := range purchases {
		if p.InstallmentCount <= 0 {
			continue
		}
		fy, fm := firstStatementMonth(p.PurchaseDate, card)
		n := (year-fy)*12 + int(month-fm) + 1
		if n < 1 || n > p.InstallmentCount {
			continue
		}

		amount, totalPayment, _ := CalculateInstallmentAmount(p.TotalAmount, p.InstallmentCount, p.InterestRateAnnual)
		statement, due := CalculateInstallmentDueDate(p.PurchaseDate, n, card)
		out = append(out, domain.Installment{
			PurchaseID: p.ID,
			Number:     n,
			Of:         p.InstallmentCount,
			Amount:     installmentAmount(n, p.InstallmentCount, amount, totalPayment),
			Statement:  statement,
			DueDate:    due,
		})
	}
	return out
}

// CalculateInstallmentDueDate returns the statement closing date and payment
// due date of installment number (1-based) of a purchase. Purchases made on or
// before the closing day are billed that month, later ones the next month.
func CalculateInstallmentDueDate(purchaseDate time.Time, number int, card domain.CreditCard) (statement, due time.Time) {
	y, m := firstStatementMonth(purchaseDate, card)
	first := time.Date(y, m, 1, 0, 0, 0, 0, purchaseDate.Location())
	billed := first.AddDate(0, number-1, 0)

	statement = statementDate(billed.Year(), billed.Month(), card, purchaseDate.Location())
	return statement, dueDateFor(statement, card)
}

// la última cuota absorbe la diferencia de redondeo
func installmentAmount(n, count int, amount, totalPayment decimal.Decimal) decimal.Decimal {
	if n < count {
		return amount
	}
	return totalPayment.Sub(amount.Mul(decimal.NewFromInt(int64(count - 1))))
}

func firstStatementMonth(purchaseDate time.Time, card domain.CreditCard) (int, time.Month) {
	closing := statementDate(purchaseDate.Year(), purchaseDate.Month(), card, purchaseDate.Location())
	if purchaseDate.Day() <= closing.Day() {
		return purchaseDate.Year(), purchaseDate.Month()
	}
	next := time.Date(purchaseDate.Year(), purchaseDate.Month()+1, 1, 0, 0, 0, 0, purchaseDate.Location())
	return next.Year(), next.Month()
}

func statementDate(year int, month time.Month, card domain.CreditCard, loc *time.Location) time.Time {
	return clampedDate(year, month, card.ClosingDay, loc)
}

// dueDateFor vence el mismo mes del corte si el día de pago es posterior al
// corte, si no el mes siguiente.
func dueDateFor(statement time.Time, card domain.CreditCard) time.Time {
	if card.DueDay > card.ClosingDay {
		return clampedDate(statement.Year(), statement.Month(), card.DueDay, statement.Location())
	}
	next := time.Date(statement.Year(), statement.Month()+1, 1, 0, 0, 0, 0, statement.Location())
	return clampedDate(next.Year(), next.Month(), card.DueDay, statement.Location())
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func validateCard(errs *ValidationErrors, card domain.CreditCard) {
	if card.ClosingDay < 1 || card.ClosingDay > 31 {
		errs.add("card.closing_day", "día de corte inválido")
	}
	if card.DueDay < 1 || card.DueDay > 31 {
		errs.add("card.due_day", "día de pago inválido")
	}
}

func validatePurchase(errs *ValidationErrors, field string, p domain.InstallmentPurchase) {
	if !p.TotalAmount.IsPositive() {
		errs.add(field+".total_amount", "monto inválido")
	}
	if p.TotalAmount.GreaterThan(maxDebtAmount) {
		errs.add(field+".total_amount", "monto excede el máximo permitido de $%.2f", MaxDebtAmount)
	}
	if p.InstallmentCount <= 0 || p.InstallmentCount > MaxInstallments {
		errs.add(field+".installment_count", "número de cuotas inválido (1-%d)", MaxInstallments)
	}
	if p.InterestRateAnnual.IsNegative() || p.InterestRateAnnual.GreaterThan(maxInterestRate) {
		errs.add(field+".interest_rate_annual", "tasa inválida")
	}
	if p.PurchaseDate.IsZero() {
		errs.add(field+".purchase_date", "fecha de compra requerida")
	}
}
