package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
)

const templatesPartition = "GOAL_TEMPLATES"

// TemplateStore keeps goal templates in Azure Table Storage.
type TemplateStore struct {
	client *aztables.Client
	table  string
}

// NewTemplateStore connects to the table service and makes sure the table exists.
func NewTemplateStore(ctx context.Context, serviceURL, table string) (*TemplateStore, error) {
	var serviceClient *aztables.ServiceClient

	if usesAzurite(serviceURL) {
		slog.Info("using Azurite credentials for template store", "table_url", serviceURL)
		cred, err := aztables.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClientWithSharedKey(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err)
		}
	} else {
		cred, err := newManagedIdentityCredential("tables")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err)
		}
	}

	if _, err := serviceClient.CreateTable(ctx, table, nil); err != nil && !hasErrorCode(err, "TableAlreadyExists") {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	slog.Info("template store initialized", "table_url", serviceURL, "table", table)
	return &TemplateStore{client: serviceClient.NewClient(table), table: table}, nil
}

// ListTemplates returns every stored template ordered by name.
func (s *TemplateStore) ListTemplates(ctx context.Context) ([]models.GoalTemplate, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", templatesPartition)
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	templates := []models.GoalTemplate{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}
		for _, entity := range resp.Entities {
			tmpl, err := templateFromEntity(entity)
			if err != nil {
				slog.Warn("skipping unreadable template entity", "table", s.table, "error", err)
				continue
			}
			templates = append(templates, tmpl)
		}
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

// SaveTemplate inserts or replaces a template.
func (s *TemplateStore) SaveTemplate(ctx context.Context, tmpl models.GoalTemplate) error {
	entity, err := json.Marshal(templateEntity(tmpl))
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", tmpl.ID, err)
	}
	if _, err := s.client.UpsertEntity(ctx, entity, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	}); err != nil {
		return fmt.Errorf("failed to save template %s: %w", tmpl.ID, err)
	}
	return nil
}

// DeleteTemplate removes a template by id.
func (s *TemplateStore) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.client.DeleteEntity(ctx, templatesPartition, id, nil); err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	return nil
}

// templateEntity maps a template onto table columns. The goal is stored as a
// string so cents survive the round trip.
func templateEntity(tmpl models.GoalTemplate) map[string]any {
	return map[string]any{
		"PartitionKey": templatesPartition,
		"RowKey":       tmpl.ID,
		"Name":         tmpl.Name,
		"GoalAmount":   tmpl.GoalAmount.StringFixed(2),
		"YearsToSave":  tmpl.YearsToSave,
	}
}

func templateFromEntity(entity []byte) (models.GoalTemplate, error) {
	var parsed map[string]any
	if err := json.Unmarshal(entity, &parsed); err != nil {
		return models.GoalTemplate{}, err
	}

	tmpl := models.GoalTemplate{GoalAmount: decimal.Zero}
	tmpl.ID, _ = parsed["RowKey"].(string)
	tmpl.Name, _ = parsed["Name"].(string)
	if tmpl.ID == "" {
		return models.GoalTemplate{}, fmt.Errorf("entity has no RowKey")
	}

	switch v := parsed["GoalAmount"].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return models.GoalTemplate{}, fmt.Errorf("invalid GoalAmount %q: %w", v, err)
		}
		tmpl.GoalAmount = d
	case float64:
		tmpl.GoalAmount = decimal.NewFromFloat(v)
	}

	if v, ok := parsed["YearsToSave"].(float64); ok {
		tmpl.YearsToSave = v
	}
	return tmpl, nil
}
