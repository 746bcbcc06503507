package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
)

var cent = decimal.RequireFromString("0.01")

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	want := money(expected)
	assert.True(t, actual.Sub(want).Abs().LessThanOrEqual(cent), "expected %s, got %s", want, actual)
}

func newDebt(id, balance, rate, minimum string) domain.Debt {
	return domain.Debt{
		ID:                 id,
		InitialBalance:     money(balance),
		CurrentBalance:     money(balance),
		InterestRateAnnual: money(rate),
		MinimumPayment:     money(minimum),
	}
}

func detailFor(t *testing.T, p domain.DebtProjection, id string) domain.DebtPayoffDetail {
	t.Helper()
	for _, d := range p.PayoffDetails {
		if d.DebtID == id {
			return d
		}
	}
	require.Failf(t, "missing payoff detail", "debt %s", id)
	return domain.DebtPayoffDetail{}
}

func TestCalculateDebtPayoff_NoDebts(t *testing.T) {
	for _, strategy := range domain.Strategies {
		p := CalculateDebtPayoff(nil, money("150"), strategy)

		assert.Equal(t, strategy, p.Strategy)
		assert.Equal(t, 0, p.MonthsToPayoff)
		assert.True(t, p.TotalInterestPaid.IsZero())
		assert.True(t, p.TotalPrincipalPaid.IsZero())
		assert.True(t, p.TotalPaid.IsZero())
		assert.Empty(t, p.PayoffDetails)
		assert.True(t, p.Converges())
	}
}

func TestCalculateDebtPayoff_ZeroInterest(t *testing.T) {
	p := CalculateDebtPayoff(
		[]domain.Debt{newDebt("d1", "1200", "0", "100")},
		decimal.Zero,
		domain.Snowball,
	)

	assert.Equal(t, 12, p.MonthsToPayoff)
	assert.True(t, p.TotalInterestPaid.IsZero())
	assertMoney(t, "1200", p.TotalPrincipalPaid)
	assertMoney(t, "1200", p.TotalPaid)

	require.Len(t, p.PayoffDetails, 1)
	detail := p.PayoffDetails[0]
	assert.Equal(t, 12, detail.MonthsToPayoff)
	require.Len(t, detail.MonthlyPayments, 12)
	for i, m := range detail.MonthlyPayments {
		assert.Equal(t, i+1, m.Month)
		assertMoney(t, "100", m.Payment)
		assertMoney(t, "100", m.Principal)
		assert.True(t, m.Interest.IsZero())
	}
	assert.True(t, detail.MonthlyPayments[11].RemainingBalance.IsZero())
}

func TestCalculateDebtPayoff_ExtraPaymentAccelerates(t *testing.T) {
	debts := []domain.Debt{newDebt("card", "5000", "19.9", "150")}

	base := CalculateDebtPayoff(debts, decimal.Zero, domain.Snowball)
	faster := CalculateDebtPayoff(debts, money("200"), domain.Snowball)

	assert.Equal(t, 49, base.MonthsToPayoff)
	assertMoney(t, "2338.94", base.TotalInterestPaid)
	assert.Equal(t, 17, faster.MonthsToPayoff)
	assertMoney(t, "754.28", faster.TotalInterestPaid)

	assert.LessOrEqual(t, faster.MonthsToPayoff, base.MonthsToPayoff)
	assert.True(t, faster.TotalInterestPaid.LessThan(base.TotalInterestPaid))
}

func twoDebtPortfolio() []domain.Debt {
	return []domain.Debt{
		newDebt("A", "500", "10", "50"),
		newDebt("B", "2000", "25", "50"),
	}
}

func TestCalculateDebtPayoff_SnowballPaysSmallestFirst(t *testing.T) {
	p := CalculateDebtPayoff(twoDebtPortfolio(), money("100"), domain.Snowball)

	a := detailFor(t, p, "A")
	b := detailFor(t, p, "B")
	assert.Less(t, a.MonthsToPayoff, b.MonthsToPayoff)
	assert.Equal(t, 4, a.MonthsToPayoff)
	assert.Equal(t, 19, b.MonthsToPayoff)
	assert.Equal(t, 19, p.MonthsToPayoff)
	assertMoney(t, "476.74", p.TotalInterestPaid)

	// el extra va a A desde el primer mes
	assertMoney(t, "150", a.MonthlyPayments[0].Payment)
	assertMoney(t, "50", b.MonthlyPayments[0].Payment)

	assert.Equal(t, "A", p.PayoffDetails[0].DebtID)
}

func TestCalculateDebtPayoff_AvalanchePaysHighestRateFirst(t *testing.T) {
	avalanche := CalculateDebtPayoff(twoDebtPortfolio(), money("100"), domain.Avalanche)
	snowball := CalculateDebtPayoff(twoDebtPortfolio(), money("100"), domain.Snowball)

	a := detailFor(t, avalanche, "A")
	b := detailFor(t, avalanche, "B")
	assertMoney(t, "50", a.MonthlyPayments[0].Payment)
	assertMoney(t, "150", b.MonthlyPayments[0].Payment)

	// A termina primero solo con mínimos
	assert.Equal(t, 11, a.MonthsToPayoff)
	assert.Equal(t, 16, b.MonthsToPayoff)
	assert.Equal(t, 16, avalanche.MonthsToPayoff)
	assertMoney(t, "386.49", avalanche.TotalInterestPaid)

	assert.True(t, avalanche.TotalInterestPaid.LessThanOrEqual(snowball.TotalInterestPaid))
}

func TestCalculateDebtPayoff_MinimumsMatchesSnowball(t *testing.T) {
	minimums := CalculateDebtPayoff(twoDebtPortfolio(), money("100"), domain.Minimums)
	snowball := CalculateDebtPayoff(twoDebtPortfolio(), money("100"), domain.Snowball)

	assert.Equal(t, domain.Minimums, minimums.Strategy)
	assert.Equal(t, snowball.MonthsToPayoff, minimums.MonthsToPayoff)
	assert.True(t, snowball.TotalInterestPaid.Equal(minimums.TotalInterestPaid))
	require.Len(t, minimums.PayoffDetails, len(snowball.PayoffDetails))
	for i := range snowball.PayoffDetails {
		assert.Equal(t, snowball.PayoffDetails[i].DebtID, minimums.PayoffDetails[i].DebtID)
		assert.Equal(t, snowball.PayoffDetails[i].MonthsToPayoff, minimums.PayoffDetails[i].MonthsToPayoff)
	}
}

func TestCalculateDebtPayoff_NeverConverges(t *testing.T) {
	p := CalculateDebtPayoff(
		[]domain.Debt{newDebt("huge", "100000", "30", "1")},
		decimal.Zero,
		domain.Snowball,
	)

	assert.Equal(t, domain.NeverPaidOff, p.MonthsToPayoff)
	assert.False(t, p.Converges())

	require.Len(t, p.PayoffDetails, 1)
	detail := p.PayoffDetails[0]
	assert.Equal(t, MaxPayoffMonths, detail.MonthsToPayoff)
	assert.Len(t, detail.MonthlyPayments, MaxPayoffMonths)
	assert.True(t, detail.PrincipalPaid.IsZero())
	last := detail.MonthlyPayments[MaxPayoffMonths-1]
	assert.True(t, last.RemainingBalance.GreaterThan(money("100000")))
}

func TestCalculateDebtPayoff_Conservation(t *testing.T) {
	debts := []domain.Debt{
		newDebt("a1", "1000", "12", "100"),
		newDebt("a2", "3000", "18", "150"),
		newDebt("a3", "750.55", "24.99", "35"),
	}

	for _, strategy := range domain.Strategies {
		p := CalculateDebtPayoff(debts, money("120"), strategy)
		require.True(t, p.Converges(), strategy)

		assert.True(t, p.TotalPaid.Equal(p.TotalInterestPaid.Add(p.TotalPrincipalPaid)))
		assertMoney(t, "4750.55", p.TotalPrincipalPaid)

		paid := decimal.Zero
		interest := decimal.Zero
		for _, d := range p.PayoffDetails {
			interest = interest.Add(d.InterestPaid)
			for _, m := range d.MonthlyPayments {
				paid = paid.Add(m.Payment)
				assert.True(t, m.Payment.Equal(m.Interest.Add(m.Principal)))
				assert.False(t, m.RemainingBalance.IsNegative())
			}
		}
		assert.True(t, paid.Equal(p.TotalPaid), strategy)
		assert.True(t, interest.Equal(p.TotalInterestPaid), strategy)
	}
}

func TestCalculateDebtPayoff_AvalancheScenario(t *testing.T) {
	debts := []domain.Debt{
		newDebt("a1", "1000", "12", "100"),
		newDebt("a2", "3000", "18", "150"),
	}

	p := CalculateDebtPayoff(debts, money("200"), domain.Avalanche)

	assert.Equal(t, 10, p.MonthsToPayoff)
	assertMoney(t, "294.08", p.TotalInterestPaid)
	assertMoney(t, "4000", p.TotalPrincipalPaid)
	assertMoney(t, "4294.08", p.TotalPaid)

	a1 := detailFor(t, p, "a1")
	a2 := detailFor(t, p, "a2")
	assertMoney(t, "350", a2.MonthlyPayments[0].Payment)
	assertMoney(t, "45", a2.MonthlyPayments[0].Interest)
	assertMoney(t, "2695", a2.MonthlyPayments[0].RemainingBalance)
	assertMoney(t, "100", a1.MonthlyPayments[0].Payment)

	// a2 se liquida en el mes 10 y su mínimo liberado termina a1 ese mismo mes
	assert.Equal(t, 10, a1.MonthsToPayoff)
	assert.Equal(t, 10, a2.MonthsToPayoff)
	assertMoney(t, "158.40", a1.MonthlyPayments[9].Payment)
	assertMoney(t, "85.68", a2.MonthlyPayments[9].Payment)

	// mismo mes: la deuda con menor saldo inicial va primero
	assert.Equal(t, "a1", p.PayoffDetails[0].DebtID)
	assert.Equal(t, "a2", p.PayoffDetails[1].DebtID)
}

func TestCalculateDebtPayoff_SkipsArchivedAndSettledDebts(t *testing.T) {
	archived := newDebt("old", "800", "15", "40")
	archived.IsArchived = true
	settled := newDebt("done", "500", "9", "25")
	settled.CurrentBalance = decimal.Zero

	p := CalculateDebtPayoff(
		[]domain.Debt{archived, settled, newDebt("live", "300", "0", "100")},
		decimal.Zero,
		domain.Avalanche,
	)

	require.Len(t, p.PayoffDetails, 1)
	assert.Equal(t, "live", p.PayoffDetails[0].DebtID)
	assert.Equal(t, 3, p.MonthsToPayoff)
}

func TestCalculateDebtPayoff_PrincipalUsesInitialBalance(t *testing.T) {
	partial := newDebt("p", "5000", "0", "1000")
	partial.CurrentBalance = money("3000")
	missing := newDebt("m", "0", "0", "1000")
	missing.CurrentBalance = money("2000")

	p := CalculateDebtPayoff([]domain.Debt{partial, missing}, decimal.Zero, domain.Snowball)

	// m termina en el mes 2 y su mínimo liberado salda p ese mismo mes
	assert.Equal(t, 2, p.MonthsToPayoff)
	assertMoney(t, "5000", detailFor(t, p, "p").PrincipalPaid)
	assertMoney(t, "2000", detailFor(t, p, "m").PrincipalPaid)
	assertMoney(t, "7000", p.TotalPrincipalPaid)
}

func TestCalculateDebtPayoff_FreedMinimumCascades(t *testing.T) {
	debts := []domain.Debt{
		newDebt("small", "100", "0", "100"),
		newDebt("large", "1000", "0", "100"),
	}

	p := CalculateDebtPayoff(debts, decimal.Zero, domain.Snowball)

	small := detailFor(t, p, "small")
	large := detailFor(t, p, "large")
	assert.Equal(t, 1, small.MonthsToPayoff)
	// mes 1: mínimo de large más el mínimo liberado de small
	assertMoney(t, "200", large.MonthlyPayments[0].Payment)
	assertMoney(t, "800", large.MonthlyPayments[0].RemainingBalance)
	// el pool se reinicia cada mes: desde el mes 2 solo el mínimo propio
	assertMoney(t, "100", large.MonthlyPayments[1].Payment)
	assert.Equal(t, 9, large.MonthsToPayoff)
}

func TestCalculateDebtPayoff_DoesNotMutateInput(t *testing.T) {
	debts := twoDebtPortfolio()
	before := make([]domain.Debt, len(debts))
	copy(before, debts)

	CalculateDebtPayoff(debts, money("100"), domain.Avalanche)

	for i := range debts {
		assert.True(t, before[i].CurrentBalance.Equal(debts[i].CurrentBalance))
		assert.Equal(t, before[i].ID, debts[i].ID)
	}
}

func TestCalculateDebtPayoff_NegativeInputsAreClamped(t *testing.T) {
	d := newDebt("neg", "600", "-5", "100")

	p := CalculateDebtPayoff([]domain.Debt{d}, money("-50"), domain.Snowball)

	assert.Equal(t, 6, p.MonthsToPayoff)
	assert.True(t, p.TotalInterestPaid.IsZero())
}

func TestCalculateDebtPayoff_PayoffMonthInterestIsAccrued(t *testing.T) {
	// 100 al 12%: se cargan 1.00 de interés y se paga 101 en el primer mes.
	// La parte de interés es lo cargado en el mes, no 101 * 1%.
	p := CalculateDebtPayoff([]domain.Debt{newDebt("d", "100", "12", "200")}, decimal.Zero, domain.Snowball)

	entry := detailFor(t, p, "d").MonthlyPayments[0]
	assertMoney(t, "101", entry.Payment)
	assert.True(t, entry.Interest.Equal(money("1")), "interest %s", entry.Interest)
	assert.True(t, entry.Principal.Equal(money("100")), "principal %s", entry.Principal)
}
