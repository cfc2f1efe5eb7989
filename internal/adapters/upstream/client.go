// Package upstream is the HTTP client of the remote scoring service.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/loanscope/internal/domain/request"
	"github.com/okian/loanscope/internal/domain/scoring"
	"github.com/okian/loanscope/pkg/metrics"
)

// HeaderRequestID carries a per-call identifier for log correlation.
const HeaderRequestID = "X-Request-ID"

// Response is the scoring service reply body.
type Response struct {
	Prediction *float64 `json:"prediction"`
}

// Client posts ScoringRequests to the scoring service. Each call is sent
// exactly once; retries are left to the caller.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	maxBody int64
}

// New creates a Client for the given endpoint URL.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:     url,
		http:    &http.Client{},
		timeout: 5 * time.Second,
		maxBody: 64 << 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score implements scoring.Scorer.
func (c *Client) Score(ctx context.Context, req request.ScoringRequest) (float64, error) {
	start := time.Now()
	p, err := c.do(ctx, req)
	metrics.RecordUpstreamLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		if cat := CategoryOf(err); cat != "" {
			metrics.RecordUpstreamFailure(string(cat))
		}
		return 0, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, req request.ScoringRequest) (float64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("encode scoring request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, &Error{Category: CategoryTransport, Message: "build request", Underlying: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, &Error{Category: CategoryTransport, Message: "post", Underlying: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return 0, &Error{Category: CategoryTransport, StatusCode: resp.StatusCode, Message: "read body", Underlying: err}
	}
	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Category: CategoryStatus, StatusCode: resp.StatusCode, Message: snippet(raw)}
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, &Error{Category: CategoryBadBody, StatusCode: resp.StatusCode, Message: "decode", Underlying: err}
	}
	if out.Prediction == nil {
		return 0, &Error{Category: CategoryBadBody, StatusCode: resp.StatusCode, Message: "missing prediction"}
	}
	p := *out.Prediction
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, &Error{Category: CategoryBadBody, StatusCode: resp.StatusCode, Message: fmt.Sprintf("prediction %v outside [0,1]", p)}
	}
	return p, nil
}

func snippet(b []byte) string {
	const limit = 200
	b = bytes.TrimSpace(b)
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

var _ scoring.Scorer = (*Client)(nil)
