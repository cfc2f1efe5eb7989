package ingest

import (
	"errors"
)

// Sentinel error kinds for ingestion.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrMalformedCSV  = errors.New("malformed csv")
)
