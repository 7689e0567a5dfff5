package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocjay1/savings-goal/internal/calculator"
	"github.com/rocjay1/savings-goal/internal/csvparse"
	"github.com/rocjay1/savings-goal/internal/models"
)

// invokeRequest represents the payload from Azure Functions Custom Handler.
type invokeRequest struct {
	Data     map[string]json.RawMessage `json:"Data"`
	Metadata map[string]any             `json:"Metadata"`
}

// ProcessQueue handles the queue trigger that plans an uploaded CSV. Each row
// is computed and the results are mailed; nothing is stored.
func (d *Dependencies) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read queue request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var invokeReq invokeRequest
	if err := json.Unmarshal(bodyBytes, &invokeReq); err != nil {
		slog.Error("failed to unmarshal queue request", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
		return
	}

	job, err := decodePlanJob(invokeReq.Data)
	if err != nil {
		slog.Warn("invalid plan job", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if d.Blob == nil {
		WriteError(w, http.StatusServiceUnavailable, "Batch planning is not configured")
		return
	}

	ctx := r.Context()
	slog.Info("processing plan job", "blob_name", job.BlobName, "container", d.UploadsContainer)

	csvContent, err := d.Blob.DownloadText(ctx, d.UploadsContainer, job.BlobName)
	if err != nil {
		slog.Error("failed to download plan CSV", "blob_name", job.BlobName, "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to download CSV: %v", err))
		return
	}

	rows, rowErrors := csvparse.ParsePlanCSV(csvContent)
	lines, rejected := planRows(rows)
	rowErrors = append(rowErrors, rejected...)
	slog.Info("planned CSV", "blob_name", job.BlobName, "planned_count", len(lines), "errors_count", len(rowErrors))

	if d.Email != nil && d.NotifyEmail != "" {
		if err := d.Email.SendPlanSummary(ctx, []string{d.NotifyEmail}, job.Filename, lines, rowErrors); err != nil {
			// Fail so the host retries the message.
			slog.Error("failed to send plan summary", "blob_name", job.BlobName, "error", err)
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to send plan summary: %v", err))
			return
		}
	} else {
		slog.Warn("email not configured; plan summary not sent", "blob_name", job.BlobName)
	}

	if err := d.Blob.DeleteBlob(ctx, d.UploadsContainer, job.BlobName); err != nil {
		slog.Warn("failed to delete processed upload", "blob_name", job.BlobName, "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]int{
		"planned":  len(lines),
		"rejected": len(rowErrors),
	})
}

// decodePlanJob extracts the job from the trigger data. The host sends the
// queue item either as a JSON string or as an already decoded object.
func decodePlanJob(data map[string]json.RawMessage) (planJob, error) {
	raw, ok := data["queueItem"]
	if !ok {
		raw, ok = data["queueitem"]
	}
	if !ok {
		return planJob{}, errors.New("missing queueItem in Data")
	}

	var item string
	if err := json.Unmarshal(raw, &item); err == nil {
		raw = json.RawMessage(item)
	}

	var job planJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return planJob{}, fmt.Errorf("invalid queueItem JSON: %w", err)
	}
	if job.BlobName == "" {
		return planJob{}, errors.New("missing blob_name")
	}
	if job.Filename == "" {
		job.Filename = job.BlobName
	}
	return job, nil
}

// planRows computes every parsed row and describes the ones the calculator rejects.
func planRows(rows []models.PlanRow) ([]models.PlanLine, []string) {
	var lines []models.PlanLine
	var rejected []string

	for _, row := range rows {
		result, err := calculator.Compute(row.Request)
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("Row %d (%s): %v", row.Row, row.Name, err))
			continue
		}
		lines = append(lines, models.PlanLine{Name: row.Name, Result: result})
	}
	return lines, rejected
}
