package csvparse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rocjay1/savings-goal/internal/calculator"
	"github.com/rocjay1/savings-goal/internal/models"
)

// Recognised headers, lower-cased.
const (
	headerName           = "name"
	headerGoalAmount     = "goal amount"
	headerCurrentSavings = "current savings"
	headerYearsToSave    = "years to save"
)

var requiredHeaders = []string{headerName, headerGoalAmount, headerCurrentSavings, headerYearsToSave}

// ParsePlanCSV reads the goals of a batch plan.
// It returns the rows that parsed and one message per rejected row.
func ParsePlanCSV(content string) ([]models.PlanRow, []string) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.PlanRow{}, nil
	}
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to read CSV: %v", err)}
	}

	columns := parseHeaders(header)
	var missing []string
	for _, h := range requiredHeaders {
		if _, ok := columns[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Missing columns: %s", strings.Join(missing, ", "))}
	}

	rows := []models.PlanRow{}
	var errors []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Failed to read CSV: %v", err))
			break
		}
		if isBlank(record) {
			continue
		}

		// Row numbers are file lines so they match what a spreadsheet shows.
		rowNum, _ := reader.FieldPos(0)
		row, err := mapToPlanRow(columns, record)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		row.Row = rowNum
		rows = append(rows, *row)
	}

	return rows, errors
}

// parseHeaders maps lower-cased, trimmed header names to their column index.
func parseHeaders(row []string) map[string]int {
	columns := make(map[string]int, len(row))
	for i, h := range row {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return columns
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func mapToPlanRow(columns map[string]int, record []string) (*models.PlanRow, error) {
	cell := func(header string) string {
		idx := columns[header]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := cell(headerName)
	if name == "" {
		return nil, fmt.Errorf("missing Name")
	}

	goal, verr := calculator.ParseNumber(calculator.FieldGoalAmount, cell(headerGoalAmount))
	if verr != nil {
		return nil, verr
	}
	current, verr := calculator.ParseNumber(calculator.FieldCurrentSavings, cell(headerCurrentSavings))
	if verr != nil {
		return nil, verr
	}
	years, verr := calculator.ParseNumber(calculator.FieldYearsToSave, cell(headerYearsToSave))
	if verr != nil {
		return nil, verr
	}

	return &models.PlanRow{
		Name: name,
		Request: models.SavingsRequest{
			GoalAmount:     goal,
			CurrentSavings: current,
			YearsToSave:    years,
		},
	}, nil
}
