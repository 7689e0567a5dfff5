package models

import (
	"github.com/shopspring/decimal"
)

// GoalTemplate is a named preset the savings form can be filled from.
type GoalTemplate struct {
	ID          string          `json:"id"` // RowKey
	Name        string          `json:"name"`
	GoalAmount  decimal.Decimal `json:"goal_amount"`
	YearsToSave float64         `json:"years_to_save"`
}

// PlanRow is one goal read from a batch plan CSV.
type PlanRow struct {
	Row     int
	Name    string
	Request SavingsRequest
}

// PlanLine is a computed batch plan row.
type PlanLine struct {
	Name   string
	Result SavingsResult
}
