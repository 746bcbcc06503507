package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Strategy selects how the extra payment pool is allocated across debts.
type Strategy string

const (
	Snowball  Strategy = "snowball"  // smallest balance first
	Avalanche Strategy = "avalanche" // highest annual rate first
	Minimums  Strategy = "minimums"  // minimums only, freed minimums still roll forward
)

// Strategies lists every supported strategy in presentation order.
var Strategies = []Strategy{Snowball, Avalanche, Minimums}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case Snowball, Avalanche, Minimums:
		return true
	}
	return false
}

type DebtKind string

const (
	KindCard         DebtKind = "card"
	KindLineOfCredit DebtKind = "line_of_credit"
	KindPersonalLoan DebtKind = "personal_loan"
	KindAutoLoan     DebtKind = "auto_loan"
	KindStudentLoan  DebtKind = "student_loan"
	KindMortgage     DebtKind = "mortgage"
	KindOther        DebtKind = "other"
)

type Debt struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name,omitempty"`
	Kind               DebtKind        `json:"kind,omitempty"`
	InitialBalance     decimal.Decimal `json:"initial_balance"`
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	InterestRateAnnual decimal.Decimal `json:"interest_rate_annual"`
	MinimumPayment     decimal.Decimal `json:"minimum_payment"`
	IsArchived         bool            `json:"is_archived"`
	CreatedAt          time.Time       `json:"created_at,omitzero"`
}

// Payable reports whether the debt takes part in a payoff simulation.
func (d Debt) Payable() bool {
	return !d.IsArchived && d.CurrentBalance.IsPositive()
}

// MonthlyPayment is one month of activity against a single debt.
type MonthlyPayment struct {
	Month            int             `json:"month"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

type DebtPayoffDetail struct {
	DebtID          string           `json:"debt_id"`
	MonthsToPayoff  int              `json:"months_to_payoff"`
	InterestPaid    decimal.Decimal  `json:"interest_paid"`
	PrincipalPaid   decimal.Decimal  `json:"principal_paid"`
	MonthlyPayments []MonthlyPayment `json:"monthly_payments"`
}

// DebtProjection is the result of a payoff simulation. MonthsToPayoff is
// NeverPaidOff when the simulation hit its month cap with debt outstanding.
type DebtProjection struct {
	Strategy           Strategy           `json:"strategy"`
	MonthsToPayoff     int                `json:"months_to_payoff"`
	TotalInterestPaid  decimal.Decimal    `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal    `json:"total_principal_paid"`
	TotalPaid          decimal.Decimal    `json:"total_paid"`
	PayoffDetails      []DebtPayoffDetail `json:"payoff_details"`
	Advice             string             `json:"advice,omitempty"`
}

// NeverPaidOff marks a projection that does not converge.
const NeverPaidOff = -1

// Converges reports whether every debt in the projection gets paid off.
func (p DebtProjection) Converges() bool {
	return p.MonthsToPayoff != NeverPaidOff
}

// PayoffRequest is the input to a projection.
type PayoffRequest struct {
	Debts               []Debt          `json:"debts"`
	ExtraMonthlyPayment decimal.Decimal `json:"extra_monthly_payment"`
	Strategy            Strategy        `json:"strategy"`
}
