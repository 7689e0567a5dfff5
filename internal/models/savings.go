package models

import (
	"github.com/shopspring/decimal"
)

// SavingsRequest holds the inputs of a single savings calculation.
type SavingsRequest struct {
	GoalAmount     float64 `json:"goal_amount"`
	CurrentSavings float64 `json:"current_savings"`
	YearsToSave    float64 `json:"years_to_save"`
}

// SavingsResult is the outcome of a savings calculation. Amounts carry two decimal places.
type SavingsResult struct {
	AmountNeeded    decimal.Decimal `json:"amount_needed"`
	MonthlySaving   decimal.Decimal `json:"monthly_saving"`
	MonthsRemaining int             `json:"months_remaining"`
}
