package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocjay1/savings-goal/internal/calculator"
	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTemplates_Get_Success(t *testing.T) {
	mockStore := &MockTemplateStore{}
	deps := &Dependencies{Templates: mockStore}

	mockStore.ListTemplatesFunc = func(ctx context.Context) ([]models.GoalTemplate, error) {
		return []models.GoalTemplate{
			{ID: "1", Name: "Emergency fund", GoalAmount: decimal.NewFromFloat(10000), YearsToSave: 2},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []models.GoalTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Emergency fund", resp[0].Name)
	assert.True(t, resp[0].GoalAmount.Equal(decimal.NewFromFloat(10000)))
}

func TestHandleTemplates_Get_StoreError(t *testing.T) {
	mockStore := &MockTemplateStore{}
	deps := &Dependencies{Templates: mockStore}

	mockStore.ListTemplatesFunc = func(ctx context.Context) ([]models.GoalTemplate, error) {
		return nil, errors.New("table error")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleTemplates_Post_AssignsID(t *testing.T) {
	mockStore := &MockTemplateStore{}
	deps := &Dependencies{Templates: mockStore}

	var saved models.GoalTemplate
	mockStore.SaveTemplateFunc = func(ctx context.Context, tmpl models.GoalTemplate) error {
		saved = tmpl
		return nil
	}

	body := `{"name": "  House deposit ", "goal_amount": 40000.5, "years_to_save": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "House deposit", saved.Name)
	assert.True(t, saved.GoalAmount.Equal(decimal.RequireFromString("40000.5")))
	assert.Equal(t, 5.0, saved.YearsToSave)

	var resp models.GoalTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, saved.ID, resp.ID)
}

func TestHandleTemplates_Post_KeepsID(t *testing.T) {
	mockStore := &MockTemplateStore{}
	deps := &Dependencies{Templates: mockStore}

	mockStore.SaveTemplateFunc = func(ctx context.Context, tmpl models.GoalTemplate) error {
		assert.Equal(t, "existing", tmpl.ID)
		return nil
	}

	body := `{"id": "existing", "name": "Trip", "goal_amount": "2500", "years_to_save": 1}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleTemplates_Post_Invalid(t *testing.T) {
	deps := &Dependencies{Templates: &MockTemplateStore{
		SaveTemplateFunc: func(ctx context.Context, tmpl models.GoalTemplate) error {
			t.Fatal("invalid template must not be saved")
			return nil
		},
	}}

	tests := []struct {
		name string
		body string
		code calculator.ErrorCode
	}{
		{"missing name", `{"goal_amount": 100, "years_to_save": 1}`, ""},
		{"negative goal", `{"name": "x", "goal_amount": -100, "years_to_save": 1}`, calculator.CodeInvalidGoalAmount},
		{"too many years", `{"name": "x", "goal_amount": 100, "years_to_save": 1e18}`, calculator.CodeInvalidYears},
		{"null goal", `{"name": "x", "goal_amount": null, "years_to_save": 1}`, calculator.CodeNotANumber},
		{"missing years", `{"name": "x", "goal_amount": 100}`, calculator.CodeNotANumber},
		{"huge exponent", `{"name": "x", "goal_amount": 1e40000000, "years_to_save": 1}`, calculator.CodeInvalidGoalAmount},
		{"bad json", `{"name":`, ""},
		{"trailing data", `{"name": "x", "goal_amount": 100, "years_to_save": 1} {}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			deps.HandleTemplates(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestHandleTemplates_Delete(t *testing.T) {
	mockStore := &MockTemplateStore{}
	deps := &Dependencies{Templates: mockStore}

	mockStore.DeleteTemplateFunc = func(ctx context.Context, id string) error {
		assert.Equal(t, "abc", id)
		return nil
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/templates?id=abc", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleTemplates_Delete_MissingID(t *testing.T) {
	deps := &Dependencies{Templates: &MockTemplateStore{}}
	req := httptest.NewRequest(http.MethodDelete, "/api/templates", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTemplates_NotConfigured(t *testing.T) {
	deps := &Dependencies{}
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleTemplates_MethodNotAllowed(t *testing.T) {
	deps := &Dependencies{Templates: &MockTemplateStore{}}
	req := httptest.NewRequest(http.MethodPut, "/api/templates", nil)
	w := httptest.NewRecorder()

	deps.HandleTemplates(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
