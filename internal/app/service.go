// Package service provides the application service that implements the
// dependencies required by the HTTP API and the gauge CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/loanscope/internal/adapters/ingest"
	"github.com/okian/loanscope/internal/adapters/repository"
	"github.com/okian/loanscope/internal/domain/features"
	"github.com/okian/loanscope/internal/domain/interpret"
	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/internal/domain/request"
	"github.com/okian/loanscope/internal/domain/scoring"
	"github.com/okian/loanscope/internal/domain/types"
	"github.com/okian/loanscope/pkg/logger"
	"github.com/okian/loanscope/pkg/metrics"
)

// Service scores clients. Every scoring need produces exactly one scorer
// call; results are never cached and failures are never retried.
type Service struct {
	scorer           scoring.Scorer
	store            repository.Store
	logger           logger.Logger
	now              func() time.Time
	batchConcurrency int
	startedAt        time.Time

	// Guards tierCounts; the atomics below are lock-free.
	mu         sync.Mutex
	tierCounts map[interpret.Tier]int64

	uploads        atomic.Int64
	rowsDropped    atomic.Int64
	scored         atomic.Int64
	upstreamErrors atomic.Int64
	rejected       atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer sets the scoring service client.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithStore sets the client record store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithClock sets the source of "today" for manual entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBatchConcurrency bounds in-flight scoring calls in ScoreAll.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// New constructs a Service. Without WithScorer it uses the simulated model.
func New(opts ...Option) *Service {
	s := &Service{
		now:              time.Now,
		batchConcurrency: 8,
		tierCounts:       map[interpret.Tier]int64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.scorer == nil {
		s.scorer = scoring.NewInMemoryScorer()
	}
	s.startedAt = s.now()
	return s
}

// Ingest parses an uploaded dataset and replaces the loaded clients with it.
func (s *Service) Ingest(ctx context.Context, r io.Reader) (types.IngestReport, error) {
	ds, err := ingest.Parse(ctx, r)
	if err != nil {
		return types.IngestReport{}, err
	}
	if err := s.store.Replace(ctx, ds.Records); err != nil {
		return types.IngestReport{}, err
	}
	s.uploads.Add(1)
	s.rowsDropped.Add(int64(ds.Dropped + ds.Duplicates))
	metrics.RecordIngest(len(ds.Records), ds.Dropped+ds.Duplicates)

	report := types.IngestReport{Loaded: len(ds.Records), Dropped: ds.Dropped, Duplicates: ds.Duplicates}
	s.logger.Info(ctx, "dataset loaded",
		logger.Int("loaded", report.Loaded),
		logger.Int("dropped", report.Dropped),
		logger.Int("duplicates", report.Duplicates),
	)
	return report, nil
}

// Clients returns the loaded identifiers in ascending order.
func (s *Service) Clients(ctx context.Context) []int64 {
	return s.store.IDs(ctx)
}

// Profile returns the display card of a loaded client.
func (s *Service) Profile(ctx context.Context, id int64) (features.Profile, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return features.Profile{}, err
	}
	return features.Summarize(rec)
}

// ScoreClient scores a loaded client (record-lookup path).
func (s *Service) ScoreClient(ctx context.Context, id int64) (types.Assessment, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		metrics.RecordScoring(metrics.PathLookup, metrics.OutcomeNotFound)
		return types.Assessment{}, err
	}
	req, err := request.FromRecord(rec)
	if err != nil {
		s.reject(ctx, metrics.PathLookup, id, err)
		return types.Assessment{}, err
	}
	return s.assess(ctx, metrics.PathLookup, rec, req)
}

// ScoreManual scores a profile typed into the custom prediction form.
func (s *Service) ScoreManual(ctx context.Context, entry request.ManualEntry) (types.Assessment, error) {
	rec, err := entry.Record(s.now())
	if err != nil {
		s.reject(ctx, metrics.PathManual, entry.ClientID, err)
		return types.Assessment{}, err
	}
	req, err := request.FromRecord(rec)
	if err != nil {
		s.reject(ctx, metrics.PathManual, entry.ClientID, err)
		return types.Assessment{}, err
	}
	return s.assess(ctx, metrics.PathManual, rec, req)
}

// ExportCSV scores a loaded client and renders the two-column export.
func (s *Service) ExportCSV(ctx context.Context, id int64) (string, error) {
	a, err := s.ScoreClient(ctx, id)
	if err != nil {
		return "", err
	}
	return interpret.ExportCSV(a.ClientID, a.Score), nil
}

// ScoreAll scores every loaded client once, fanning out up to the batch
// concurrency. Per-client failures are reported on their row.
func (s *Service) ScoreAll(ctx context.Context) (types.BatchReport, error) {
	start := time.Now()
	records := s.store.All(ctx)
	report := types.BatchReport{BatchID: uuid.NewString(), Rows: make([]types.BatchRow, len(records))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, rec := range records {
		g.Go(func() error {
			row := types.BatchRow{ClientID: rec.Identifier}
			res, err := s.scoreRecord(gctx, rec)
			if err != nil {
				row.Error = err.Error()
			} else {
				pct := res.ProbabilityPercent
				row.ProbabilityPercent = &pct
				row.Tier = res.Tier
			}
			report.Rows[i] = row
			// Only cancellation of the whole batch stops the run.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return types.BatchReport{}, err
	}

	for _, row := range report.Rows {
		if row.Failed() {
			report.Failed++
		} else {
			report.Scored++
		}
	}
	elapsed := time.Since(start)
	metrics.RecordBatchRun(float64(elapsed.Milliseconds()))
	s.logger.Info(ctx, "batch scored",
		logger.String("batch_id", report.BatchID),
		logger.Int("scored", report.Scored),
		logger.Int("failed", report.Failed),
		logger.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (s *Service) scoreRecord(ctx context.Context, rec model.ClientRecord) (interpret.Result, error) {
	req, err := request.FromRecord(rec)
	if err != nil {
		s.reject(ctx, metrics.PathBatch, rec.Identifier, err)
		return interpret.Result{}, err
	}
	return s.call(ctx, metrics.PathBatch, req)
}

func (s *Service) assess(ctx context.Context, path string, rec model.ClientRecord, req request.ScoringRequest) (types.Assessment, error) {
	res, err := s.call(ctx, path, req)
	if err != nil {
		return types.Assessment{}, err
	}
	profile, err := features.Summarize(rec)
	if err != nil {
		return types.Assessment{}, err
	}
	return types.Assessment{
		ClientID: rec.Identifier,
		Profile:  profile,
		Score:    res,
		Display:  res.Display(),
	}, nil
}

// call performs the single scoring call for req and interprets the answer.
func (s *Service) call(ctx context.Context, path string, req request.ScoringRequest) (interpret.Result, error) {
	p, err := s.scorer.Score(ctx, req)
	if err != nil {
		if !errors.Is(err, model.ErrUpstreamFailure) {
			err = fmt.Errorf("%w: %w", model.ErrUpstreamFailure, err)
		}
		s.upstreamErrors.Add(1)
		metrics.RecordScoring(path, metrics.OutcomeUpstreamFailure)
		s.logger.Warn(ctx, "scoring call failed",
			logger.String("path", path),
			logger.Int64("client_id", req.ClientID),
			logger.Error(err),
		)
		return interpret.Result{}, err
	}
	res, err := interpret.Interpret(p)
	if err != nil {
		// A scorer that answers outside [0,1] is an upstream fault.
		s.upstreamErrors.Add(1)
		metrics.RecordScoring(path, metrics.OutcomeUpstreamFailure)
		return interpret.Result{}, fmt.Errorf("%w: %w", model.ErrUpstreamFailure, err)
	}

	s.scored.Add(1)
	s.mu.Lock()
	s.tierCounts[res.Tier]++
	s.mu.Unlock()
	metrics.RecordScoring(path, metrics.OutcomeSuccess)
	metrics.RecordTier(string(res.Tier))
	s.logger.Debug(ctx, "client scored",
		logger.String("path", path),
		logger.Int64("client_id", req.ClientID),
		logger.Float64("probability_percent", res.ProbabilityPercent),
		logger.String("tier", string(res.Tier)),
	)
	return res, nil
}

func (s *Service) reject(ctx context.Context, path string, id int64, err error) {
	s.rejected.Add(1)
	outcome := metrics.OutcomeInvalidInput
	if errors.Is(err, model.ErrMissingField) {
		outcome = metrics.OutcomeMissingField
	}
	metrics.RecordScoring(path, outcome)
	s.logger.Debug(ctx, "scoring request rejected",
		logger.String("path", path),
		logger.Int64("client_id", id),
		logger.Error(err),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	clients := s.store.Count(ctx)
	metrics.UpdateClientsLoaded(clients)

	s.mu.Lock()
	tiers := make(map[string]int64, len(s.tierCounts))
	for t, n := range s.tierCounts {
		tiers[string(t)] = n
	}
	s.mu.Unlock()

	return map[string]interface{}{
		"clientsLoaded":    clients,
		"uploads":          s.uploads.Load(),
		"rowsDropped":      s.rowsDropped.Load(),
		"scored":           s.scored.Load(),
		"upstreamFailures": s.upstreamErrors.Load(),
		"rejected":         s.rejected.Load(),
		"tiers":            tiers,
		"batchConcurrency": s.batchConcurrency,
		"uptimeSeconds":    int64(s.now().Sub(s.startedAt).Seconds()),
	}
}
