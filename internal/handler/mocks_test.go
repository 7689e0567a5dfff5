package handler

import (
	"context"

	"github.com/rocjay1/savings-goal/internal/models"
)

// MockTemplateStore is a mock implementation of TemplateStore
type MockTemplateStore struct {
	ListTemplatesFunc  func(ctx context.Context) ([]models.GoalTemplate, error)
	SaveTemplateFunc   func(ctx context.Context, tmpl models.GoalTemplate) error
	DeleteTemplateFunc func(ctx context.Context, id string) error
}

func (m *MockTemplateStore) ListTemplates(ctx context.Context) ([]models.GoalTemplate, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockTemplateStore) SaveTemplate(ctx context.Context, tmpl models.GoalTemplate) error {
	if m.SaveTemplateFunc != nil {
		return m.SaveTemplateFunc(ctx, tmpl)
	}
	return nil
}

func (m *MockTemplateStore) DeleteTemplate(ctx context.Context, id string) error {
	if m.DeleteTemplateFunc != nil {
		return m.DeleteTemplateFunc(ctx, id)
	}
	return nil
}

// MockBlobClient is a mock implementation of BlobClient
type MockBlobClient struct {
	UploadTextFunc   func(ctx context.Context, containerName, blobName, content string) error
	DownloadTextFunc func(ctx context.Context, containerName, blobName string) (string, error)
	DeleteBlobFunc   func(ctx context.Context, containerName, blobName string) error
}

func (m *MockBlobClient) UploadText(ctx context.Context, containerName, blobName, content string) error {
	if m.UploadTextFunc != nil {
		return m.UploadTextFunc(ctx, containerName, blobName, content)
	}
	return nil
}

func (m *MockBlobClient) DownloadText(ctx context.Context, containerName, blobName string) (string, error) {
	if m.DownloadTextFunc != nil {
		return m.DownloadTextFunc(ctx, containerName, blobName)
	}
	return "", nil
}

func (m *MockBlobClient) DeleteBlob(ctx context.Context, containerName, blobName string) error {
	if m.DeleteBlobFunc != nil {
		return m.DeleteBlobFunc(ctx, containerName, blobName)
	}
	return nil
}

// MockQueueClient is a mock implementation of QueueClient
type MockQueueClient struct {
	EnqueueMessageFunc func(ctx context.Context, queueName string, message any) error
}

func (m *MockQueueClient) EnqueueMessage(ctx context.Context, queueName string, message any) error {
	if m.EnqueueMessageFunc != nil {
		return m.EnqueueMessageFunc(ctx, queueName, message)
	}
	return nil
}

// MockEmailClient is a mock implementation of EmailClient
type MockEmailClient struct {
	SendPlanSummaryFunc func(ctx context.Context, recipients []string, filename string, lines []models.PlanLine, rowErrors []string) error
}

func (m *MockEmailClient) SendPlanSummary(ctx context.Context, recipients []string, filename string, lines []models.PlanLine, rowErrors []string) error {
	if m.SendPlanSummaryFunc != nil {
		return m.SendPlanSummaryFunc(ctx, recipients, filename, lines, rowErrors)
	}
	return nil
}
