package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
)

// HTTPTriggerRequest is the envelope the Functions host posts for an HTTP trigger.
type HTTPTriggerRequest struct {
	Data struct {
		Req struct {
			URL             string              `json:"Url"`
			Method          string              `json:"Method"`
			Query           map[string]string   `json:"Query"`
			Headers         map[string][]string `json:"Headers"`
			Params          map[string]string   `json:"Params"`
			Body            string              `json:"Body"`
			IsBase64Encoded bool                `json:"isBase64Encoded"`
		} `json:"req"`
	} `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// HTTPTriggerResponse is the envelope the Functions host expects back.
type HTTPTriggerResponse struct {
	Outputs struct {
		Res struct {
			StatusCode int               `json:"statusCode"`
			Headers    map[string]string `json:"headers"`
			Body       string            `json:"body"`
		} `json:"res"`
	} `json:"Outputs"`
	Logs        []string `json:"Logs,omitempty"`
	ReturnValue any      `json:"ReturnValue,omitempty"`
}

// HandleHttpTrigger unwraps a host envelope, replays the inner request on next
// and wraps the recorded response in the envelope the host expects.
func (d *Dependencies) HandleHttpTrigger(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var envelope HTTPTriggerRequest
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			slog.Error("failed to unmarshal HTTP trigger request", "error", err)
			WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
			return
		}

		inner := envelope.Data.Req
		body := triggerBody(inner.Body, inner.IsBase64Encoded)

		req, err := http.NewRequestWithContext(r.Context(), inner.Method, inner.URL, bytes.NewReader(body))
		if err != nil {
			slog.Error("failed to build inner request", "method", inner.Method, "url", inner.URL, "error", err)
			WriteError(w, http.StatusBadRequest, "Failed to create internal request")
			return
		}
		for k, values := range inner.Headers {
			for _, v := range values {
				req.Header.Add(k, v)
			}
		}

		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, req)

		result := recorder.Result()
		respBody, _ := io.ReadAll(result.Body)
		result.Body.Close()

		var resp HTTPTriggerResponse
		resp.Outputs.Res.StatusCode = result.StatusCode
		resp.Outputs.Res.Headers = make(map[string]string, len(result.Header))
		for k := range result.Header {
			resp.Outputs.Res.Headers[k] = result.Header.Get(k)
		}
		resp.Outputs.Res.Body = string(respBody)

		slog.Info("served HTTP trigger", "method", inner.Method, "path", req.URL.Path, "status", result.StatusCode)
		WriteJSON(w, http.StatusOK, resp)
	}
}

// triggerBody returns the inner request body. Some hosts base64 encode it
// without setting the flag, so bodies that are not JSON are decoded when they
// can be.
func triggerBody(body string, isBase64 bool) []byte {
	if body == "" {
		return nil
	}
	looksJSON := body[0] == '{' || body[0] == '['
	if isBase64 || !looksJSON {
		if decoded, err := base64.StdEncoding.DecodeString(body); err == nil {
			return decoded
		}
	}
	return []byte(body)
}
