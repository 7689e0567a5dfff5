// Package calculator turns a savings goal, the amount already saved and a
// horizon in years into the monthly contribution needed to reach the goal.
package calculator

import (
	"math"

	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
)

const (
	monthsPerYear  = 12
	currencyPlaces = 2

	// MaxYearsToSave is the longest horizon whose month count still fits an int64.
	MaxYearsToSave = math.MaxInt64 / monthsPerYear
)

// Compute validates the request and returns the savings plan for it.
// On invalid input the error is a ValidationErrors listing every violated rule.
//
// Months are the horizon in whole months rounded down, so available time is
// never overstated. Amounts are computed at full precision and rounded to
// cents (half away from zero) only when the result is built.
func Compute(req models.SavingsRequest) (models.SavingsResult, error) {
	if errs := Validate(req); len(errs) > 0 {
		return models.SavingsResult{}, errs
	}

	goal := decimal.NewFromFloat(req.GoalAmount)
	current := decimal.NewFromFloat(req.CurrentSavings)
	amountNeeded := decimal.Max(goal.Sub(current), decimal.Zero)
	months := monthsRemaining(req.YearsToSave)

	var monthly decimal.Decimal
	switch {
	case amountNeeded.IsZero():
		// Goal already met, whatever the horizon.
		monthly = decimal.Zero
	case months == 0:
		// Horizon elapsed: the whole shortfall is due now.
		monthly = amountNeeded
	default:
		monthly = amountNeeded.Div(decimal.NewFromInt(months))
	}

	return models.SavingsResult{
		AmountNeeded:    amountNeeded.Round(currencyPlaces),
		MonthlySaving:   monthly.Round(currencyPlaces),
		MonthsRemaining: int(months),
	}, nil
}

// monthsRemaining converts a validated horizon to whole months, clamped at zero.
func monthsRemaining(years float64) int64 {
	if years <= 0 {
		return 0
	}
	months := decimal.NewFromFloat(years).Mul(decimal.NewFromInt(monthsPerYear)).Floor()
	if !months.IsPositive() {
		return 0
	}
	return months.IntPart()
}
