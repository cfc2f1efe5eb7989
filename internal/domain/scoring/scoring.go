// Package scoring defines the contract of the remote scoring service and an
// in-memory stand-in used by the stub service and tests.
package scoring

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/loanscope/internal/domain/request"
)

// Default simulation constants.
const (
	defaultMinLatency = 80 * time.Millisecond
	defaultMaxLatency = 150 * time.Millisecond
	defaultRandomSeed = 42
	daysPerYear       = 365.0
	maturityYears     = 70.0
)

// Feature weights of the simulated model.
const (
	creditWeight   = 0.6
	propertyWeight = 0.25
	ageWeight      = 0.15
)

// Scorer converts a scoring request into an eligibility probability in [0,1].
type Scorer interface {
	// Score honors ctx for cancellation.
	Score(ctx context.Context, req request.ScoringRequest) (float64, error)
}

// Option applies a configuration option to the InMemoryScorer.
type Option func(*InMemoryScorer)

// WithLatencyRange sets the simulated latency range. A zero range disables the delay.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *InMemoryScorer) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithFixedProbability makes every call return p, which must lie in [0,1].
func WithFixedProbability(p float64) Option {
	return func(s *InMemoryScorer) {
		if p >= 0 && p <= 1 {
			s.fixed = &p
		}
	}
}

// InMemoryScorer implements Scorer with a deterministic linear model.
type InMemoryScorer struct {
	minLatency time.Duration
	maxLatency time.Duration
	fixed      *float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewInMemoryScorer creates a new in-memory scorer with configuration options.
func NewInMemoryScorer(opts ...Option) *InMemoryScorer {
	s := &InMemoryScorer{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic latency jitter
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the probability for req after the simulated latency.
func (s *InMemoryScorer) Score(ctx context.Context, req request.ScoringRequest) (float64, error) {
	if d := s.latency(); d > 0 {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(d):
		}
	}
	if s.fixed != nil {
		return *s.fixed, nil
	}
	return Probability(req), nil
}

func (s *InMemoryScorer) latency() time.Duration {
	span := s.maxLatency - s.minLatency
	if span <= 0 {
		return s.minLatency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minLatency + time.Duration(s.rng.Int63n(int64(span)))
}

// Probability is the simulated model: a weighted blend of the credit sources,
// the property scores and age, clamped to [0,1].
func Probability(req request.ScoringRequest) float64 {
	credit := (req.ExtSource1 + req.ExtSource2 + req.ExtSource3) / 3
	property := (req.YearsBeginExpluatationMode + req.CommonAreaMode + req.FloorsMaxMode +
		req.LivingApartmentsMode + req.YearsBuildMedi) / 5
	age := math.Min(float64(-req.DaysBirth)/daysPerYear/maturityYears, 1)

	p := creditWeight*credit + propertyWeight*property + ageWeight*age
	return math.Max(0, math.Min(1, p))
}
