package gaugecli

import "errors"

// Sentinel kinds for command line errors.
var (
	ErrUsage = errors.New("invalid usage")
)
