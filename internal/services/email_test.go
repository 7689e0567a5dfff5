package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCredential implements azcore.TokenCredential for testing.
type MockCredential struct{}

func (m *MockCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{
		Token:     "mock-token",
		ExpiresOn: time.Now().Add(1 * time.Hour),
	}, nil
}

// testClientOptions sends pipeline traffic to server without retries.
func testClientOptions(server *httptest.Server) *policy.ClientOptions {
	return &policy.ClientOptions{
		Transport: server.Client(),
		Retry:     policy.RetryOptions{MaxRetries: -1},
	}
}

func TestEmailService_SendPlanSummary(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails:send", r.URL.Path)
		assert.Equal(t, emailAPIVersion, r.URL.Query().Get("api-version"))
		assert.Equal(t, "Bearer mock-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req emailRequest
		require.NoError(t, json.Unmarshal(body, &req))

		assert.Equal(t, "sender@test.com", req.SenderAddress)
		if assert.Len(t, req.Recipients.To, 1) {
			assert.Equal(t, "recipient@test.com", req.Recipients.To[0].Address)
		}
		assert.Equal(t, "Savings plan: goals.csv", req.Content.Subject)
		assert.Contains(t, req.Content.HTML, "Emergency fund")
		assert.Contains(t, req.Content.HTML, "395,83\u00a0€")

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	service, err := NewEmailService(server.URL+"/", "sender@test.com", &MockCredential{}, testClientOptions(server))
	require.NoError(t, err)

	lines := []models.PlanLine{{
		Name: "Emergency fund",
		Result: models.SavingsResult{
			AmountNeeded:    decimal.RequireFromString("9500.00"),
			MonthlySaving:   decimal.RequireFromString("395.83"),
			MonthsRemaining: 24,
		},
	}}
	err = service.SendPlanSummary(context.Background(), []string{"recipient@test.com"}, "goals.csv", lines, nil)
	assert.NoError(t, err)
}

func TestEmailService_SendEmail_Error(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Error"))
	}))
	defer server.Close()

	service, err := NewEmailService(server.URL, "sender@test.com", &MockCredential{}, testClientOptions(server))
	require.NoError(t, err)

	err = service.SendEmail(context.Background(), []string{"recipient@test.com"}, "Sub", "Body")
	require.Error(t, err)

	var respErr *azcore.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
}

func TestNewEmailService_MissingSettings(t *testing.T) {
	_, err := NewEmailService("", "sender@test.com", &MockCredential{}, nil)
	assert.Error(t, err)

	_, err = NewEmailService("https://acs.example.com", "", &MockCredential{}, nil)
	assert.Error(t, err)
}
