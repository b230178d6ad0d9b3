// Package store persists the entity collections as named buckets of JSON.
// Each repository owns one bucket, loads it at construction, and writes it
// back after every mutation. The core never depends on a concrete medium;
// drivers exist for the local filesystem, Postgres, and memory.
package store

import "context"

// Store is the narrow persistence contract the repositories depend on.
// LoadBucket returns nil data (and no error) for an absent bucket, which
// callers treat as an empty collection.
type Store interface {
	LoadBucket(ctx context.Context, name string) ([]byte, error)
	SaveBucket(ctx context.Context, name string, data []byte) error
}

// Bucket names used across the application.
const (
	BucketPatients = "patients"
	BucketTests    = "tests"
	BucketReports  = "reports"
	BucketInvoices = "invoices"
	BucketHospital = "hospital"
)
