package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocjay1/savings-goal/internal/calculator"
)

// Dependencies holds the services required by the handlers. Any of them may
// be nil when not configured; only the calculator endpoint works without them.
type Dependencies struct {
	Templates TemplateStore
	Blob      BlobClient
	Queue     QueueClient
	Email     EmailClient

	UploadsContainer string
	PlanQueue        string
	NotifyEmail      string
}

type errorResponse struct {
	Error   string                      `json:"error"`
	Code    calculator.ErrorCode        `json:"code,omitempty"`
	Details calculator.ValidationErrors `json:"details,omitempty"`
}

const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes a single JSON value from a request body of at most
// maxJSONBodyBytes. Anything after the value is an error.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// WriteValidationError writes a 400 naming every rejected field. The top-level
// code is that of the first violation.
func WriteValidationError(w http.ResponseWriter, errs calculator.ValidationErrors) {
	resp := errorResponse{Error: errs.Error(), Details: errs}
	if len(errs) > 0 {
		resp.Code = errs[0].Code
	}
	WriteJSON(w, http.StatusBadRequest, resp)
}
