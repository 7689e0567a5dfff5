package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rocjay1/savings-goal/internal/calculator"
	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
)

// templateRequestBody is the POST form of a goal template. Numbers stay raw so
// they are read the same way as calculator input.
type templateRequestBody struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GoalAmount  json.RawMessage `json:"goal_amount"`
	YearsToSave json.RawMessage `json:"years_to_save"`
}

// HandleTemplates handles GET, POST, and DELETE requests for goal templates.
func (d *Dependencies) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	if d.Templates == nil {
		WriteError(w, http.StatusServiceUnavailable, "Goal templates are not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		templates, err := d.Templates.ListTemplates(r.Context())
		if err != nil {
			slog.Error("failed to list goal templates", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to list goal templates: "+err.Error())
			return
		}
		slog.Info("listed goal templates", "count", len(templates))
		WriteJSON(w, http.StatusOK, templates)

	case http.MethodPost:
		var body templateRequestBody
		if err := decodeJSONBody(w, r, &body); err != nil {
			slog.Warn("invalid goal template body", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		tmpl, errs := body.toTemplate()
		if tmpl.Name == "" {
			WriteError(w, http.StatusBadRequest, "Template name is required")
			return
		}
		if len(errs) > 0 {
			slog.Warn("rejected goal template", "name", tmpl.Name, "errors", errs.Error())
			WriteValidationError(w, errs)
			return
		}

		if tmpl.ID == "" {
			tmpl.ID = uuid.New().String()
		}

		if err := d.Templates.SaveTemplate(r.Context(), tmpl); err != nil {
			slog.Error("failed to save goal template", "id", tmpl.ID, "name", tmpl.Name, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to save goal template: "+err.Error())
			return
		}

		slog.Info("saved goal template", "id", tmpl.ID, "name", tmpl.Name)
		WriteJSON(w, http.StatusOK, tmpl)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "Missing template ID")
			return
		}

		if err := d.Templates.DeleteTemplate(r.Context(), id); err != nil {
			slog.Error("failed to delete goal template", "id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to delete goal template: "+err.Error())
			return
		}

		slog.Info("deleted goal template", "id", id)
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// toTemplate reads and checks the numeric fields, reporting every problem.
func (b templateRequestBody) toTemplate() (models.GoalTemplate, calculator.ValidationErrors) {
	tmpl := models.GoalTemplate{
		ID:   strings.TrimSpace(b.ID),
		Name: strings.TrimSpace(b.Name),
	}
	var errs calculator.ValidationErrors

	goal, verr := readNumber(calculator.FieldGoalAmount, b.GoalAmount)
	if verr == nil {
		verr = calculator.ValidateGoalAmount(goal)
	}
	if verr != nil {
		errs = append(errs, verr)
	} else {
		tmpl.GoalAmount = decimal.NewFromFloat(goal)
	}

	years, verr := readNumber(calculator.FieldYearsToSave, b.YearsToSave)
	if verr == nil {
		verr = calculator.ValidateYearsToSave(years)
	}
	if verr != nil {
		errs = append(errs, verr)
	} else {
		tmpl.YearsToSave = years
	}

	return tmpl, errs
}
