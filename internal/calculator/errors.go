package calculator

import (
	"fmt"
	"strings"
)

// ErrorCode identifies which input constraint a request violated.
type ErrorCode string

const (
	CodeInvalidGoalAmount     ErrorCode = "InvalidGoalAmount"
	CodeInvalidCurrentSavings ErrorCode = "InvalidCurrentSavings"
	CodeInvalidYears          ErrorCode = "InvalidYears"
	CodeNotANumber            ErrorCode = "NotANumber"
)

// Request field names as they appear on the wire.
const (
	FieldGoalAmount     = "goal_amount"
	FieldCurrentSavings = "current_savings"
	FieldYearsToSave    = "years_to_save"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotANumber reports a field whose raw value could not be read as a number.
func NotANumber(field string) *ValidationError {
	return &ValidationError{
		Code:    CodeNotANumber,
		Field:   field,
		Message: fmt.Sprintf("%s must be a number", field),
	}
}

// ValidationErrors collects every violation found in a request.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any violation carries the given code.
func (errs ValidationErrors) Has(code ErrorCode) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}
