package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/internal/domain/request"
)

// ScoreHandler handles every route that triggers a scoring call.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore handles GET /clients/{id}/score.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_client"
	id, err := clientID(op, r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	a, err := h.deps.ScoreClient(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleExport handles GET /clients/{id}/score.csv.
func (h *ScoreHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_score"
	id, err := clientID(op, r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	out, err := h.deps.ExportCSV(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="prediction_`+strconv.FormatInt(id, 10)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// HandleBatch handles POST /clients/score.
func (h *ScoreHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_all"
	report, err := h.deps.ScoreAll(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// predictRequest mirrors the OpenAPI schema for POST /predict.
type predictRequest struct {
	ClientID         int64       `json:"client_id"`
	BirthDate        string      `json:"birth_date"`
	IDPublishDaysAgo int64       `json:"id_publish_days_ago"`
	SameCity         bool        `json:"same_city"`
	OrganizationType string      `json:"organization_type"`
	CreditScores     *[3]float64 `json:"credit_scores"`
	PropertyScores   *[5]float64 `json:"property_scores"`
	Gender           string      `json:"gender"`
	OwnsCar          bool        `json:"owns_car"`
}

// entry converts the wire shape; field rules are enforced by the service.
func (p predictRequest) entry() (request.ManualEntry, error) {
	e := request.ManualEntry{
		ClientID:                     p.ClientID,
		IDPublishDaysAgo:             p.IDPublishDaysAgo,
		SameRegisteredAndContactCity: p.SameCity,
		OrganizationType:             strings.TrimSpace(p.OrganizationType),
		CreditScores:                 p.CreditScores,
		PropertyScores:               p.PropertyScores,
		Gender:                       model.Gender(p.Gender),
		OwnsCar:                      p.OwnsCar,
	}
	if g, ok := model.ParseGender(p.Gender); ok {
		e.Gender = g
	}
	if raw := strings.TrimSpace(p.BirthDate); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return request.ManualEntry{}, model.Invalid("birth_date", "want YYYY-MM-DD, got %q", raw)
		}
		e.BirthDate = d
	}
	return e, nil
}

func parseDate(raw string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// HandlePredict handles POST /predict (manual entry).
func (h *ScoreHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	var req predictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	entry, err := req.entry()
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	a, err := h.deps.ScoreManual(r.Context(), entry)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}
