package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCard carries the billing calendar of a card. Days are 1-31 and are
// clamped to the length of shorter months.
type CreditCard struct {
	ClosingDay int `json:"closing_day"`
	DueDay     int `json:"due_day"`
}

type InstallmentPurchase struct {
	ID                 string          `json:"id"`
	Description        string          `json:"description,omitempty"`
	PurchaseDate       time.Time       `json:"purchase_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	InstallmentCount   int             `json:"installment_count"`
	InterestRateAnnual decimal.Decimal `json:"interest_rate_annual"`
}

type Installment struct {
	PurchaseID string          `json:"purchase_id"`
	Number     int             `json:"number"`
	Of         int             `json:"of"`
	Amount     decimal.Decimal `json:"amount"`
	Statement  time.Time       `json:"statement"` // closing date of the statement that bills it
	DueDate    time.Time       `json:"due_date"`
}

type InstallmentSchedule struct {
	PurchaseID        string          `json:"purchase_id"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalPayment      decimal.Decimal `json:"total_payment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	Installments      []Installment   `json:"installments"`
}

type ScheduleInput struct {
	Card     CreditCard          `json:"card"`
	Purchase InstallmentPurchase `json:"purchase"`
}

type BillingCycleInput struct {
	Card      CreditCard            `json:"card"`
	Year      int                   `json:"year"`
	Month     time.Month            `json:"month"`
	Purchases []InstallmentPurchase `json:"purchases"`
}

type BillingCycleResult struct {
	Statement    time.Time       `json:"statement"`
	DueDate      time.Time       `json:"due_date"`
	Total        decimal.Decimal `json:"total"`
	Installments []Installment   `json:"installments"`
}
