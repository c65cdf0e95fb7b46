package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newsdigest/internal/analysis"
	"newsdigest/internal/app"
	"newsdigest/internal/assistant"
	"newsdigest/internal/config"
	"newsdigest/internal/httputil"
	"newsdigest/internal/sentiment"
	"newsdigest/internal/source"
)

type analyzeRequest struct {
	Source string `json:"source" validate:"required,oneof=text url news headlines"`
	Method string `json:"method" validate:"required"`
	Text   string `json:"text"`
	URL    string `json:"url" validate:"required_if=Source url,max=2048"`
	Query  string `json:"query" validate:"required_if=Source news,max=200"`
	APIKey string `json:"api_key"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Cache.Close()

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	deps.Log.Info("gateway listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log, requestTimeout(deps.Config))

	r.Post("/api/analyze", analyzeHandler(deps))
	r.Post("/api/analyze/upload", uploadHandler(deps))
	r.Get("/api/news", newsHandler(deps))
	r.Get("/api/headlines", headlinesHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	return r
}

// requestTimeout covers the source fetch, the assistant run and the scorer call.
// An uncapped assistant run (ASSISTANT_RUN_TIMEOUT=0) leaves requests uncapped too,
// bounded only by AssistantMaxPolls and the client disconnecting.
func requestTimeout(cfg config.Config) time.Duration {
	if cfg.AssistantRunTimeout <= 0 {
		return 0
	}
	return cfg.AssistantRunTimeout + 2*cfg.HTTPTimeout
}

func analyzeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		method, err := sentiment.ParseMethod(req.Method)
		if err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		sel := source.Selector{
			Kind:   source.Kind(req.Source),
			Text:   req.Text,
			URL:    req.URL,
			Query:  req.Query,
			APIKey: req.APIKey,
		}
		analyze(deps, w, r, sel, method)
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		// Validate file size before parsing
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		if !allowedUpload(header.Filename, header.Header.Get("Content-Type")) {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		method, err := sentiment.ParseMethod(r.FormValue("method"))
		if err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		sel := source.Selector{Kind: source.KindUpload, Filename: header.Filename, Data: content}
		analyze(deps, w, r, sel, method)
	}
}

// allowedUpload accepts text and PDF files. A missing Content-Type is inferred from the extension.
func allowedUpload(filename, contentType string) bool {
	if contentType == "" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".txt":
			contentType = "text/plain"
		case ".pdf":
			contentType = "application/pdf"
		}
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(mediaType) {
	case "text/plain", "application/pdf":
		return true
	}
	return false
}

func analyze(deps app.Deps, w http.ResponseWriter, r *http.Request, sel source.Selector, method sentiment.Method) {
	ctx := r.Context()
	log := deps.Log.With("source", sel.Kind, "method", method)

	content, err := deps.Sources.Load(ctx, sel)
	if err != nil {
		fail(log, w, "failed to load content", err)
		return
	}
	report, err := deps.Analyzer.Analyze(ctx, analysis.Input{Source: sel.Kind, Content: content, Method: method})
	if err != nil {
		fail(log, w, "analysis failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func newsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			httputil.Fail(deps.Log, w, "q is required", nil, http.StatusBadRequest)
			return
		}
		articles, err := deps.Sources.Search(r.Context(), source.Query{Text: q, APIKey: r.URL.Query().Get("api_key")})
		if err != nil {
			fail(deps.Log, w, "news search failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"query":    q,
			"count":    len(articles),
			"articles": articles,
		})
	}
}

func headlinesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headlines, err := deps.Sources.Headlines(r.Context())
		if err != nil {
			fail(deps.Log, w, "headline scrape failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"count":     len(headlines),
			"headlines": headlines,
		})
	}
}

// fail maps source, sentiment and assistant errors to a response status.
func fail(log *slog.Logger, w http.ResponseWriter, message string, err error) {
	status, detail := classify(err)
	if detail != "" {
		message = message + ": " + detail
	}
	httputil.Fail(log, w, message, err, status)
}

func classify(err error) (int, string) {
	var jobErr *assistant.JobError
	switch {
	case errors.Is(err, source.ErrMissingAPIKey),
		errors.Is(err, source.ErrMissingInput),
		errors.Is(err, source.ErrInvalidURL),
		errors.Is(err, source.ErrInvalidUpload),
		errors.Is(err, source.ErrUnknownKind),
		errors.Is(err, sentiment.ErrUnknownMethod):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, assistant.ErrPollLimit):
		return http.StatusGatewayTimeout, "timed out"
	case errors.As(err, &jobErr):
		return http.StatusBadGateway, fmt.Sprintf("assistant job %s", jobErr.Status)
	case errors.Is(err, source.ErrUpstream),
		errors.Is(err, analysis.ErrAssistant),
		errors.Is(err, analysis.ErrSentiment):
		return http.StatusBadGateway, ""
	}
	return http.StatusInternalServerError, ""
}
