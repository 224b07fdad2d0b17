package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/supplysift/supplysift/internal/config"
	"github.com/supplysift/supplysift/internal/storage"
	"github.com/supplysift/supplysift/internal/types"
)

// Extractor is the pipeline surface the API depends on.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (*types.ProductRecord, error)
	ExtractDynamic(ctx context.Context, pageURL string) (*types.ProductRecord, error)
}

// Server exposes the extraction pipeline over HTTP for operator tooling.
type Server struct {
	mux       *http.ServeMux
	http      *http.Server
	extractor Extractor
	store     storage.ProductStore
	logger    *slog.Logger
}

// NewServer wires routes for the given pipeline. store may be nil; the
// confirm endpoint then reports storage as unconfigured.
func NewServer(cfg *config.ServerConfig, extractor Extractor, store storage.ProductStore, logger *slog.Logger) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		extractor: extractor,
		store:     store,
		logger:    logger.With("component", "api_server"),
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.recoverMiddleware(s.mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // dynamic extraction walks every variation
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/extract", s.handleExtract)
	s.mux.HandleFunc("POST /api/extract/dynamic", s.handleExtractDynamic)
	s.mux.HandleFunc("POST /api/products", s.handleConfirm)
}

// extractRequest is the body of both extract endpoints.
type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.success(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	s.runExtract(w, r, s.extractor.Extract)
}

func (s *Server) handleExtractDynamic(w http.ResponseWriter, r *http.Request) {
	s.runExtract(w, r, s.extractor.ExtractDynamic)
}

func (s *Server) runExtract(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*types.ProductRecord, error)) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.failure(w, http.StatusBadRequest, "request body must be JSON with a url field", "")
		return
	}

	record, err := fn(r.Context(), req.URL)
	if err != nil {
		s.logger.Error("extraction failed", "url", req.URL, "error", err)
		s.failure(w, statusFor(err), "extraction failed", err.Error())
		return
	}
	s.success(w, http.StatusOK, record)
}

// handleConfirm persists an operator-reviewed record.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, http.StatusServiceUnavailable, "storage is not configured", "")
		return
	}

	var record types.ProductRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.failure(w, http.StatusBadRequest, "request body must be a product record", err.Error())
		return
	}
	if record.SKU == "" {
		s.failure(w, http.StatusBadRequest, "product record is missing sku", "")
		return
	}

	if err := s.store.Save(r.Context(), &record); err != nil {
		s.logger.Error("save failed", "sku", record.SKU, "error", err)
		s.failure(w, http.StatusInternalServerError, "save failed", err.Error())
		return
	}
	s.success(w, http.StatusOK, map[string]string{"sku": record.SKU})
}

// statusFor maps pipeline errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusUnprocessableEntity
	}
	var fe *types.FetchError
	if errors.As(err, &fe) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) success(w http.ResponseWriter, status int, data any) {
	s.write(w, status, map[string]any{"success": true, "data": data})
}

func (s *Server) failure(w http.ResponseWriter, status int, message, details string) {
	body := map[string]any{"success": false, "error": message}
	if details != "" {
		body["details"] = details
	}
	s.write(w, status, body)
}

func (s *Server) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// recoverMiddleware converts handler panics into failure envelopes so one bad
// page never takes the server down.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				s.failure(w, http.StatusInternalServerError, "internal error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
