package gaugecli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/loanscope/internal/adapters/upstream"
	service "github.com/okian/loanscope/internal/app"
	"github.com/okian/loanscope/internal/domain/scoring"
	"github.com/okian/loanscope/internal/domain/types"
	"github.com/okian/loanscope/pkg/logger"
)

// Run scores the configured client and writes the result to out.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	log := logger.Named("gauge")
	log.Debug(ctx, "starting gauge",
		logger.String("scoringURL", cfg.ScoringURL),
		logger.Bool("simulate", cfg.Simulate),
		logger.String("data", cfg.DataFile),
		logger.Int64("client", cfg.ClientID),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithScorer(newScorer(cfg)),
	)

	a, err := assess(ctx, svc, cfg)
	if err != nil {
		return err
	}
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	return Render(out, a)
}

func newScorer(cfg *Config) scoring.Scorer {
	if cfg.Simulate {
		return scoring.NewInMemoryScorer(scoring.WithLatencyRange(0, 0))
	}
	return upstream.New(cfg.ScoringURL, upstream.WithTimeout(cfg.Timeout))
}

func assess(ctx context.Context, svc *service.Service, cfg *Config) (types.Assessment, error) {
	if cfg.Manual() {
		return svc.ScoreManual(ctx, cfg.Entry)
	}
	f, err := os.Open(cfg.DataFile)
	if err != nil {
		return types.Assessment{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := svc.Ingest(ctx, f); err != nil {
		return types.Assessment{}, fmt.Errorf("load dataset: %w", err)
	}
	return svc.ScoreClient(ctx, cfg.ClientID)
}
