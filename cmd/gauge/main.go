package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/loanscope/internal/gaugecli"
	"github.com/okian/loanscope/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := gaugecli.Parse(args, stderr)
	if err != nil {
		if gaugecli.IsHelp(err) {
			return 0
		}
		_, _ = io.WriteString(stderr, err.Error()+"\n")
		return 2
	}

	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithOutput(stderr), logger.WithLevel(level)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gaugecli.Run(ctx, cfg, stdout); err != nil {
		_, _ = io.WriteString(stderr, "gauge failed: "+err.Error()+"\n")
		return 1
	}
	return 0
}
