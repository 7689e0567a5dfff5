package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rocjay1/savings-goal/internal/config"
	"github.com/rocjay1/savings-goal/internal/handler"
	"github.com/rocjay1/savings-goal/internal/services"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	deps := newDependencies(cfg)

	// Router
	mux := http.NewServeMux()

	// API Routes. The calculator and upload handlers answer 405 themselves.
	mux.HandleFunc("/api/calculate-savings", deps.HandleCalculateSavings)
	mux.HandleFunc("GET /api/health", handler.HandleHealth)

	mux.HandleFunc("GET /api/templates", deps.HandleTemplates)
	mux.HandleFunc("POST /api/templates", deps.HandleTemplates)
	mux.HandleFunc("DELETE /api/templates", deps.HandleTemplates)

	mux.HandleFunc("/api/upload", deps.HandleUpload)

	// Adapter for HTTP Trigger (since enableForwardingHttpRequest is false)
	mux.HandleFunc("/HttpTrigger", deps.HandleHttpTrigger(mux))
	mux.HandleFunc("/ProcessQueue", deps.ProcessQueue)

	// Catch-all handler for unmatched requests to debug what the Host is sending
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string)
		for k, v := range r.Header {
			headers[k] = strings.Join(v, ", ")
		}
		slog.Warn("Unmatched request",
			"method", r.Method,
			"path", r.URL.Path,
			"headers", headers,
			"content_length", r.ContentLength,
		)
		http.NotFound(w, r)
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.LogRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case <-quit:
		slog.Info("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Error during server shutdown", "error", err)
	}
	slog.Info("Server exited")
}

// newDependencies builds the optional Azure services. A service that is not
// configured or fails to start is left nil and its endpoints answer 503.
func newDependencies(cfg *config.Config) *handler.Dependencies {
	deps := &handler.Dependencies{
		UploadsContainer: cfg.UploadsContainer,
		PlanQueue:        cfg.PlanQueue,
		NotifyEmail:      cfg.NotifyEmail,
	}

	if cfg.TemplatesEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		store, err := services.NewTemplateStore(ctx, cfg.TableServiceURL, cfg.TemplatesTable)
		cancel()
		if err != nil {
			slog.Warn("Failed to init TemplateStore (continuing anyway)", "error", err)
		} else {
			deps.Templates = store
		}
	} else {
		slog.Warn("TABLE_SERVICE_URL not set; goal templates disabled")
	}

	if cfg.BatchEnabled() {
		blobService, err := services.NewBlobService(cfg.BlobServiceURL)
		if err != nil {
			slog.Warn("Failed to init BlobService (continuing anyway)", "error", err)
		}
		queueService, qErr := services.NewQueueService(cfg.QueueServiceURL)
		if qErr != nil {
			slog.Warn("Failed to init QueueService (continuing anyway)", "error", qErr)
		}
		if err == nil && qErr == nil {
			deps.Blob = blobService
			deps.Queue = queueService
		}
	} else {
		slog.Warn("BLOB_SERVICE_URL or QUEUE_SERVICE_URL not set; batch planning disabled")
	}

	if cfg.EmailEnabled() {
		emailService, err := services.NewEmailService(cfg.CommunicationEndpoint, cfg.SenderEmail, nil, nil)
		if err != nil {
			slog.Warn("Failed to init EmailService (continuing anyway)", "error", err)
		} else {
			deps.Email = emailService
		}
	} else {
		slog.Warn("Email settings incomplete; plan summaries will not be sent")
	}

	return deps
}
