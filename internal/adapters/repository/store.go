// Package repository holds the client records of the most recent upload.
package repository

import (
	"context"

	"github.com/okian/loanscope/internal/domain/model"
)

// Store provides read/write access to the loaded client records.
type Store interface {
	// Replace swaps the whole dataset; readers see either the old or the new one.
	Replace(ctx context.Context, records []model.ClientRecord) error

	// Get returns the record for id.
	// Returns ErrNotFound if the client is unknown.
	Get(ctx context.Context, id int64) (model.ClientRecord, error)

	// IDs returns the loaded identifiers in ascending order.
	IDs(ctx context.Context) []int64

	// All returns the loaded records in ascending identifier order.
	All(ctx context.Context) []model.ClientRecord

	// Count returns the number of loaded clients.
	Count(ctx context.Context) int
}
