package handler

import (
	"context"

	"github.com/rocjay1/savings-goal/internal/models"
)

// TemplateStore defines the goal template operations used by handlers.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]models.GoalTemplate, error)
	SaveTemplate(ctx context.Context, tmpl models.GoalTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
}

// BlobClient defines the blob storage operations used by handlers.
type BlobClient interface {
	UploadText(ctx context.Context, containerName, blobName, content string) error
	DownloadText(ctx context.Context, containerName, blobName string) (string, error)
	DeleteBlob(ctx context.Context, containerName, blobName string) error
}

// QueueClient defines the queue operations used by handlers.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, queueName string, message any) error
}

// EmailClient defines the email operations used by handlers.
type EmailClient interface {
	SendPlanSummary(ctx context.Context, recipients []string, filename string, lines []models.PlanLine, rowErrors []string) error
}
