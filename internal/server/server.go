package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/display"
	"github.com/iwvelando/mortgage-calculator/internal/session"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	renderer    *display.Renderer
	formatter   *format.CurrencyFormatter
	store       session.Store
	schedules   *mortgage.ScheduleGenerator
	maxBodySize int64
	cookieName  string
	sessionTTL  time.Duration
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator page and
// the JSON API. A nil store falls back to an in-memory session store.
func NewHandler(logger *zap.Logger, cfg config.Configuration, store session.Store, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	formatter, err := format.NewCurrencyFormatter(cfg.Display.Locale, cfg.Display.CurrencySymbol)
	if err != nil {
		return nil, err
	}
	renderer, err := display.NewRenderer(formatter, trimmedVersion)
	if err != nil {
		return nil, err
	}

	ttl := cfg.Session.TTLDuration()
	if store == nil {
		store = session.NewMemoryStore(ttl)
	}

	cookieName := cfg.Session.CookieName
	if cookieName == "" {
		cookieName = config.Default().Session.CookieName
	}

	h := &handler{
		logger:      logger,
		renderer:    renderer,
		formatter:   formatter,
		store:       store,
		schedules:   mortgage.NewScheduleGenerator(logger),
		maxBodySize: cfg.Server.MaxBodySizeBytes(),
		cookieName:  cookieName,
		sessionTTL:  ttl,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// Calculator page and its form actions
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/calculate", h.handleCalculateForm)
	mux.HandleFunc("/clear", h.handleClear)

	// JSON API
	mux.HandleFunc("/api/calculate", h.handleCalculateAPI)
	mux.HandleFunc("/api/schedule", h.handleScheduleAPI)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)

	// Static assets
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare embedded static files: %w", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	limiter := newRateLimiter(logger, cfg.Server.RateLimit)
	return requestLogger(logger, limiter.middleware(mux)), nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status, so an encoding
// failure becomes a 500 rather than an empty success.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
