package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

const maxUploadBytes = 10 << 20

// planJob is the queue message that asks the worker to plan an uploaded CSV.
type planJob struct {
	BlobName string `json:"blob_name"`
	Filename string `json:"filename"`
}

// HandleUpload stores a batch plan CSV and queues it for planning.
func (d *Dependencies) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("upload attempt with invalid method", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if d.Blob == nil || d.Queue == nil {
		WriteError(w, http.StatusServiceUnavailable, "Batch planning is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "max_size_mb", maxUploadBytes>>20)
		WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Warn("failed to get file from form", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to get file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	filename := filepath.Base(header.Filename)
	job := planJob{
		BlobName: fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102-150405"), filename),
		Filename: filename,
	}
	slog.Info("received plan upload", "filename", filename, "size_bytes", len(content))

	if err := d.Blob.UploadText(r.Context(), d.UploadsContainer, job.BlobName, string(content)); err != nil {
		slog.Error("failed to upload blob", "blob_name", job.BlobName, "container", d.UploadsContainer, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to upload blob: "+err.Error())
		return
	}

	if err := d.Queue.EnqueueMessage(r.Context(), d.PlanQueue, job); err != nil {
		slog.Error("failed to enqueue plan job", "queue", d.PlanQueue, "blob_name", job.BlobName, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to enqueue message: "+err.Error())
		return
	}
	slog.Info("queued plan job", "queue", d.PlanQueue, "blob_name", job.BlobName)

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"blob_name": job.BlobName,
	})
}
