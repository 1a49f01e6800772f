// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine
// orchestration, output serialization. Engine errors map to status
// codes here; the engine itself never logs or swallows them.
package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"programme-cost/core/input"
	"programme-cost/core/modules"
	"programme-cost/core/output"
	"programme-cost/core/refdata"
	"programme-cost/internal/config"
	"programme-cost/internal/errors"
	"programme-cost/internal/logging"
)

// maxBodyBytes caps programme definition uploads
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	store   refdata.Store
	cfg     *config.Config
	version string
}

// NewServer creates an API server over a reference snapshot
func NewServer(version string, store refdata.Store, cfg *config.Config) *Server {
	s := &Server{
		handler: NewHandler(store, cfg, version),
		mux:     http.NewServeMux(),
		store:   store,
		cfg:     cfg,
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoint
	s.mux.HandleFunc("POST /cost", s.handleCost)

	// Supporting endpoints
	s.mux.HandleFunc("GET /options", s.handleOptions)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleCost handles POST /cost: a JSON programme definition in, the
// CSV cost ledger out as plain text.
func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	requestID := uuid.NewString()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, requestID, errors.Wrap(errors.TypeConfig, "read request body", err))
		return
	}

	programme, err := input.ParseJSON(body)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	result, err := s.handler.execute(ctx, programme)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	var buf bytes.Buffer
	formatter := &output.CSVFormatter{}
	if err := formatter.Render(&buf, result); err != nil {
		s.writeError(w, requestID, errors.Internal("render ledger", err))
		return
	}

	logging.Info("costing request served",
		zap.String("request_id", requestID),
		zap.String("country", programme.Country),
		zap.Int("rows", len(result.Ledger)),
		zap.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleOptions handles GET /options
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.NewString()

	countries, err := s.store.Countries(ctx)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}
	currencies, err := s.store.Currencies(ctx)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeJSON(w, OptionsResponse{
		Countries:  countries,
		Currencies: currencies,
		Modules:    modules.IDs(),
		Defaults:   s.cfg.Defaults,
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "programme-cost",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	logging.Warn("costing request failed",
		zap.String("request_id", requestID),
		zap.Error(err))

	s.writeJSON(w, ErrorBody{
		Error: ErrorDetail{
			Code:      string(errorCode(err)),
			Message:   err.Error(),
			RequestID: requestID,
		},
	}, statusFor(err))
}

// statusFor maps engine error types to HTTP status codes: bad
// configuration is the caller's fault, reference-data gaps are
// unprocessable, anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.IsType(err, errors.TypeConfig):
		return http.StatusBadRequest
	case errors.IsType(err, errors.TypeDataGap),
		errors.IsType(err, errors.TypeNotFound),
		errors.IsType(err, errors.TypeMissingSeries):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func errorCode(err error) errors.Type {
	for _, t := range []errors.Type{
		errors.TypeConfig,
		errors.TypeDataGap,
		errors.TypeNotFound,
		errors.TypeMissingSeries,
	} {
		if errors.IsType(err, t) {
			return t
		}
	}
	return errors.TypeInternal
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
