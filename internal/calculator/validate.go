package calculator

import (
	"fmt"
	"math"

	"github.com/rocjay1/savings-goal/internal/models"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateGoalAmount checks that the goal is a finite, non-negative amount.
func ValidateGoalAmount(goal float64) *ValidationError {
	if !isFinite(goal) || goal < 0 {
		return &ValidationError{
			Code:    CodeInvalidGoalAmount,
			Field:   FieldGoalAmount,
			Message: "goal_amount must be a finite number greater than or equal to 0",
		}
	}
	return nil
}

// ValidateCurrentSavings checks that current savings are a finite, non-negative amount.
func ValidateCurrentSavings(current float64) *ValidationError {
	if !isFinite(current) || current < 0 {
		return &ValidationError{
			Code:    CodeInvalidCurrentSavings,
			Field:   FieldCurrentSavings,
			Message: "current_savings must be a finite number greater than or equal to 0",
		}
	}
	return nil
}

// ValidateYearsToSave checks that the horizon is finite and at most MaxYearsToSave.
// Zero and negative horizons are valid: the shortfall is then due at once.
func ValidateYearsToSave(years float64) *ValidationError {
	if !isFinite(years) {
		return &ValidationError{
			Code:    CodeInvalidYears,
			Field:   FieldYearsToSave,
			Message: "years_to_save must be a finite number",
		}
	}
	if years > MaxYearsToSave {
		return &ValidationError{
			Code:    CodeInvalidYears,
			Field:   FieldYearsToSave,
			Message: fmt.Sprintf("years_to_save must not exceed %d", int64(MaxYearsToSave)),
		}
	}
	return nil
}

// Validate runs every rule against the request and returns all violations, or nil.
func Validate(req models.SavingsRequest) ValidationErrors {
	var errs ValidationErrors
	if err := ValidateGoalAmount(req.GoalAmount); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateCurrentSavings(req.CurrentSavings); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateYearsToSave(req.YearsToSave); err != nil {
		errs = append(errs, err)
	}
	return errs
}
