package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocjay1/savings-goal/internal/calculator"
	"github.com/rocjay1/savings-goal/internal/models"
)

// savingsRequestBody keeps each field raw so a bad value can be reported
// against its own field instead of failing the whole body.
type savingsRequestBody struct {
	GoalAmount     json.RawMessage `json:"goal_amount"`
	CurrentSavings json.RawMessage `json:"current_savings"`
	YearsToSave    json.RawMessage `json:"years_to_save"`
}

// savingsResponse is the wire form of models.SavingsResult. Amounts are plain
// JSON numbers whatever the decimal package's quoting setting.
type savingsResponse struct {
	AmountNeeded    float64 `json:"amount_needed"`
	MonthlySaving   float64 `json:"monthly_saving"`
	MonthsRemaining int     `json:"months_remaining"`
}

// HandleCalculateSavings computes the monthly saving for a goal.
func (d *Dependencies) HandleCalculateSavings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var body savingsRequestBody
	if err := decodeJSONBody(w, r, &body); err != nil {
		slog.Warn("invalid savings calculation body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, errs := body.toRequest()
	if len(errs) > 0 {
		slog.Warn("rejected savings calculation", "errors", errs.Error())
		WriteValidationError(w, errs)
		return
	}

	result, err := calculator.Compute(req)
	if err != nil {
		var verrs calculator.ValidationErrors
		if errors.As(err, &verrs) {
			slog.Warn("rejected savings calculation", "errors", verrs.Error())
			WriteValidationError(w, verrs)
			return
		}
		slog.Error("savings calculation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Calculation failed")
		return
	}

	slog.Info("calculated savings",
		"amount_needed", result.AmountNeeded.StringFixed(2),
		"monthly_saving", result.MonthlySaving.StringFixed(2),
		"months_remaining", result.MonthsRemaining,
	)
	WriteJSON(w, http.StatusOK, savingsResponse{
		AmountNeeded:    result.AmountNeeded.InexactFloat64(),
		MonthlySaving:   result.MonthlySaving.InexactFloat64(),
		MonthsRemaining: result.MonthsRemaining,
	})
}

// HandleHealth reports that the handler is up.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// toRequest reads every field, checking each one on its own so all problems
// are reported together.
func (b savingsRequestBody) toRequest() (models.SavingsRequest, calculator.ValidationErrors) {
	var req models.SavingsRequest
	var errs calculator.ValidationErrors

	fields := []struct {
		name     string
		raw      json.RawMessage
		dst      *float64
		validate func(float64) *calculator.ValidationError
	}{
		{calculator.FieldGoalAmount, b.GoalAmount, &req.GoalAmount, calculator.ValidateGoalAmount},
		{calculator.FieldCurrentSavings, b.CurrentSavings, &req.CurrentSavings, calculator.ValidateCurrentSavings},
		{calculator.FieldYearsToSave, b.YearsToSave, &req.YearsToSave, calculator.ValidateYearsToSave},
	}

	for _, f := range fields {
		v, verr := readNumber(f.name, f.raw)
		if verr == nil {
			verr = f.validate(v)
		}
		if verr != nil {
			errs = append(errs, verr)
			continue
		}
		*f.dst = v
	}
	return req, errs
}

// readNumber accepts a JSON number or a string holding one, as form inputs send.
func readNumber(field string, raw json.RawMessage) (float64, *calculator.ValidationError) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, calculator.NotANumber(field)
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, calculator.NotANumber(field)
		}
		return calculator.ParseNumber(field, s)
	case c == '-' || (c >= '0' && c <= '9'):
		return calculator.ParseNumber(field, string(raw))
	default:
		// null, booleans, objects and arrays
		return 0, calculator.NotANumber(field)
	}
}
