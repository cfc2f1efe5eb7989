// Package stub serves a stand-in for the remote scoring service so the
// front end can run without the real model.
package stub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/loanscope/internal/domain/request"
	"github.com/okian/loanscope/internal/domain/scoring"
	"github.com/okian/loanscope/pkg/logger"
)

// PredictPath is the route the scoring client posts to.
const PredictPath = "/predict_proba"

const maxRequestBytes = 16 << 10

// Sentinel kinds for stub errors.
var (
	ErrBadPayload = errors.New("bad scoring payload")
)

// Handler answers scoring requests with an InMemoryScorer (or any Scorer).
type Handler struct {
	scorer scoring.Scorer
	log    logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandler creates a Handler around scorer.
func NewHandler(scorer scoring.Scorer, opts ...Option) *Handler {
	h := &Handler{scorer: scorer}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the stub routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+PredictPath, h.HandlePredict)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandlePredict handles POST /predict_proba.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	req, err := decode(w, r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: "bad_payload", Message: err.Error()})
		return
	}
	p, err := h.scorer.Score(r.Context(), req)
	if err != nil {
		if h.log != nil {
			h.log.Error(r.Context(), "stub scoring failed", logger.Int64("client_id", req.ClientID), logger.Error(err))
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "scoring_failed", Message: err.Error()})
		return
	}
	if h.log != nil {
		h.log.Debug(r.Context(), "stub scored", logger.Int64("client_id", req.ClientID), logger.Float64("prediction", p))
	}
	writeJSON(w, http.StatusOK, predictResponse{Prediction: p})
}

// decode requires every wire field and nothing else.
func decode(w http.ResponseWriter, r *http.Request) (request.ScoringRequest, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxRequestBytes)); err != nil {
		return request.ScoringRequest{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		return request.ScoringRequest{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	for _, name := range request.FieldNames() {
		if _, ok := fields[name]; !ok {
			return request.ScoringRequest{}, fmt.Errorf("%w: missing %s", ErrBadPayload, name)
		}
	}

	dec := json.NewDecoder(&buf)
	dec.DisallowUnknownFields()
	var req request.ScoringRequest
	if err := dec.Decode(&req); err != nil {
		return request.ScoringRequest{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
