package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxRecords caps the dataset size accepted by Replace.
func WithMaxRecords(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}
