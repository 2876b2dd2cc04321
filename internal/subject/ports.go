package subject

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_lookup_log.go -package=subject

// LookupLog records lookups for auditing. It never stores payloads.
type LookupLog interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
