package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

type ComparisonService struct {
	payoff *DebtPayoffService
}

func NewComparisonService(payoff *DebtPayoffService) *ComparisonService {
	return &ComparisonService{payoff: payoff}
}

// Compare projects the debts under every strategy and recommends one.
// The request's Strategy is ignored.
func (s *ComparisonService) Compare(
	ctx context.Context,
	req domain.PayoffRequest,
) (domain.Comparison, error) {

	req.Strategy = domain.Snowball
	if err := validatePayoffRequest(req); err != nil {
		return domain.Comparison{}, err
	}

	// Calcular todas las estrategias en paralelo
	projections := make([]domain.DebtProjection, len(domain.Strategies))
	var wg sync.WaitGroup
	for i, strategy := range domain.Strategies {
		wg.Add(1)
		go func(i int, r domain.PayoffRequest) {
			defer wg.Done()
			projections[i] = s.payoff.simulate(ctx, r)
		}(i, domain.PayoffRequest{
			Debts:               req.Debts,
			ExtraMonthlyPayment: req.ExtraMonthlyPayment,
			Strategy:            strategy,
		})
	}
	wg.Wait()

	var baseline domain.DebtProjection
	for _, p := range projections {
		if p.Strategy == domain.Minimums {
			baseline = p
		}
	}

	best := 0
	results := make([]domain.StrategyResult, 0, len(projections))
	for i, p := range projections {
		results = append(results, strategyResult(p, baseline))
		if better(p, projections[best]) {
			best = i
		}
	}

	recommended := projections[best]
	recommended.Advice = s.payoff.advisor.Advise(ctx, recommended)

	return domain.Comparison{
		Recommended: recommended.Strategy,
		Results:     results,
		Projection:  recommended,
	}, nil
}

func strategyResult(p, baseline domain.DebtProjection) domain.StrategyResult {
	r := domain.StrategyResult{
		Strategy:          p.Strategy,
		TotalInterestPaid: p.TotalInterestPaid,
		MonthsToPayoff:    p.MonthsToPayoff,
		InterestSaved:     decimal.Zero,
	}
	if p.Converges() && baseline.Converges() {
		r.InterestSaved = decimal.Max(baseline.TotalInterestPaid.Sub(p.TotalInterestPaid), decimal.Zero)
		r.MonthsSaved = baseline.MonthsToPayoff - p.MonthsToPayoff
	}
	return r
}

// better reports whether a should be recommended over b. Plans that finish win;
// then less interest, then fewer months. Without a finishing plan the one that
// repays more principal wins.
func better(a, b domain.DebtProjection) bool {
	if a.Converges() != b.Converges() {
		return a.Converges()
	}
	if !a.Converges() {
		return a.TotalPrincipalPaid.GreaterThan(b.TotalPrincipalPaid)
	}
	if c := a.TotalInterestPaid.Cmp(b.TotalInterestPaid); c != 0 {
		return c < 0
	}
	return a.MonthsToPayoff < b.MonthsToPayoff
}
