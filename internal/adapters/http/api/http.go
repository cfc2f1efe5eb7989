// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/loanscope/internal/adapters/ingest"
	"github.com/okian/loanscope/internal/adapters/repository"
	"github.com/okian/loanscope/internal/domain/features"
	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/internal/domain/request"
	"github.com/okian/loanscope/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingest replaces the loaded dataset with an uploaded CSV.
	Ingest(ctx context.Context, r io.Reader) (types.IngestReport, error)

	// Read operations over the loaded dataset.
	Clients(ctx context.Context) []int64
	Profile(ctx context.Context, id int64) (features.Profile, error)

	// Scoring operations; each performs its own scoring call.
	ScoreClient(ctx context.Context, id int64) (types.Assessment, error)
	ScoreManual(ctx context.Context, entry request.ManualEntry) (types.Assessment, error)
	ExportCSV(ctx context.Context, id int64) (string, error)
	ScoreAll(ctx context.Context) (types.BatchReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	clientsHandler   *ClientsHandler
	scoreHandler     *ScoreHandler
	dashboardHandler *dashboardHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxUploadBytes int64
}

// WithMaxUploadBytes caps POST /clients bodies.
func WithMaxUploadBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxUploadBytes: 32 << 20}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		clientsHandler:   NewClientsHandler(deps, cfg.maxUploadBytes),
		scoreHandler:     NewScoreHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /clients", MetricsMiddleware(s.clientsHandler.HandleUpload, "clients_upload"))
	mux.HandleFunc("GET /clients", MetricsMiddleware(s.clientsHandler.HandleList, "clients_list"))
	mux.HandleFunc("GET /clients/{id}", MetricsMiddleware(s.clientsHandler.HandleProfile, "client_profile"))

	mux.HandleFunc("GET /clients/{id}/score", MetricsMiddleware(s.scoreHandler.HandleScore, "client_score"))
	mux.HandleFunc("GET /clients/{id}/score.csv", MetricsMiddleware(s.scoreHandler.HandleExport, "client_export"))
	mux.HandleFunc("POST /clients/score", MetricsMiddleware(s.scoreHandler.HandleBatch, "clients_batch"))
	mux.HandleFunc("POST /predict", MetricsMiddleware(s.scoreHandler.HandlePredict, "predict"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a domain error onto its HTTP status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

// statusClientClosedRequest is the nginx convention for a caller that went away.
const statusClientClosedRequest = 499

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrMissingField):
		return http.StatusBadRequest, "missing_field"
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, ErrBadID), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ingest.ErrMissingColumn), errors.Is(err, ingest.ErrEmptyDataset),
		errors.Is(err, ingest.ErrMalformedCSV), errors.Is(err, repository.ErrDuplicateID):
		return http.StatusBadRequest, "bad_dataset"
	case errors.Is(err, ErrTooLarge), errors.Is(err, repository.ErrTooManyRecords):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrUpstreamFailure):
		return http.StatusBadGateway, "upstream_failure"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// clientID parses the {id} path value.
func clientID(op string, r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, WrapKind(op, ErrBadID, errors.New(strconv.Quote(raw)))
	}
	return id, nil
}
