package domain

import "github.com/shopspring/decimal"

type StrategyResult struct {
	Strategy          Strategy        `json:"strategy"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	MonthsToPayoff    int             `json:"months_to_payoff"`
	// Savings against the minimums baseline. Zero when either side never converges.
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

type Comparison struct {
	Recommended Strategy         `json:"recommended"`
	Results     []StrategyResult `json:"results"`
	Projection  DebtProjection   `json:"projection"` // projection of the recommended strategy
}
