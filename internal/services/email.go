package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/rocjay1/savings-goal/internal/models"
)

const (
	emailModule     = "savingsgoal/email"
	emailVersion    = "v1.0.0"
	emailAPIVersion = "2023-03-31"
	emailScope      = "https://communication.azure.com//.default"
)

// EmailService sends mail through the Azure Communication Services REST API.
// Requests go through an azcore pipeline that adds the bearer token and retries.
type EmailService struct {
	sendURL  string
	sender   string
	pipeline runtime.Pipeline
}

// NewEmailService creates an EmailService for the given endpoint and sender.
// A nil cred falls back to DefaultAzureCredential; opts may be nil.
func NewEmailService(endpoint, sender string, cred azcore.TokenCredential, opts *policy.ClientOptions) (*EmailService, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("communication services endpoint is required")
	}
	if sender == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	if cred == nil {
		var err error
		cred, err = newManagedIdentityCredential("email")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
	}

	clientOpts := policy.ClientOptions{}
	if opts != nil {
		clientOpts = *opts
	}
	if clientOpts.Retry.TryTimeout == 0 {
		clientOpts.Retry.TryTimeout = 30 * time.Second
	}

	auth := runtime.NewBearerTokenPolicy(cred, []string{emailScope}, nil)
	return &EmailService{
		sendURL:  fmt.Sprintf("%s/emails:send?api-version=%s", strings.TrimSuffix(endpoint, "/"), emailAPIVersion),
		sender:   sender,
		pipeline: runtime.NewPipeline(emailModule, emailVersion, runtime.PipelineOptions{PerRetry: []policy.Policy{auth}}, &clientOpts),
	}, nil
}

type emailAddress struct {
	Address string `json:"address"`
}

type emailRecipients struct {
	To []emailAddress `json:"to"`
}

type emailContent struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type emailRequest struct {
	SenderAddress string          `json:"senderAddress"`
	Content       emailContent    `json:"content"`
	Recipients    emailRecipients `json:"recipients"`
}

func (s *EmailService) newEmailRequest(to []string, subject, html string) emailRequest {
	msg := emailRequest{
		SenderAddress: s.sender,
		Content:       emailContent{Subject: subject, HTML: html},
	}
	for _, addr := range to {
		msg.Recipients.To = append(msg.Recipients.To, emailAddress{Address: addr})
	}
	return msg
}

// SendEmail queues an HTML email for the recipients. ACS answers 202 once the
// message is accepted; any other status is returned as an *azcore.ResponseError.
func (s *EmailService) SendEmail(ctx context.Context, to []string, subject, html string) error {
	req, err := runtime.NewRequest(ctx, http.MethodPost, s.sendURL)
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	if err := runtime.MarshalAsJSON(req, s.newEmailRequest(to, subject, html)); err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	resp, err := s.pipeline.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if !runtime.HasStatusCode(resp, http.StatusAccepted) {
		return fmt.Errorf("email request rejected: %w", runtime.NewResponseError(resp))
	}

	slog.Info("email sent", "recipients", to, "subject", subject, "operation_location", resp.Header.Get("Operation-Location"))
	return nil
}

// SendPlanSummary mails the computed plan lines and any rejected rows.
func (s *EmailService) SendPlanSummary(ctx context.Context, recipients []string, filename string, lines []models.PlanLine, rowErrors []string) error {
	subject := fmt.Sprintf("Savings plan: %s", filename)
	if len(lines) == 0 {
		subject = fmt.Sprintf("Savings plan failed: %s", filename)
	}
	return s.SendEmail(ctx, recipients, subject, RenderPlanBody(filename, lines, rowErrors))
}
