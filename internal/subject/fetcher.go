package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"booktitles/internal/platform/logger"
	"booktitles/internal/platform/metrics"
)

// Source retrieves the raw payload for a subject. Implemented by
// *openlibrary.Client.
type Source interface {
	GetSubject(ctx context.Context, subject string) (map[string]any, error)
}

// Fetcher wraps a Source with the fail-soft policy: remote failures are
// logged and turned into an empty, degraded response.
type Fetcher struct {
	source Source
	logger logger.Logger
}

func NewFetcher(source Source, l logger.Logger) *Fetcher {
	if l == nil {
		l = &logger.EmptyLogger{}
	}
	return &Fetcher{source: source, logger: l}
}

// FetchSubjectData makes a single request for key. It never returns an error.
func (f *Fetcher) FetchSubjectData(ctx context.Context, key Key) FetchResult {
	start := time.Now()
	raw, err := f.source.GetSubject(ctx, string(key))
	metrics.SubjectFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SubjectFetches.WithLabelValues(metrics.OutcomeDegraded).Inc()
		f.logger.Error("fetch subject failed: subject=%s error=%v trace=%s", key, err, errorTrace(err))
		return FetchResult{Response: Response{}, Degraded: true, Err: err}
	}

	metrics.SubjectFetches.WithLabelValues(metrics.OutcomeOK).Inc()
	if raw == nil {
		raw = map[string]any{}
	}
	return FetchResult{Response: Response(raw)}
}

// GetTitlesBySubject fetches key and extracts its titles. Failures yield an
// empty list.
func (f *Fetcher) GetTitlesBySubject(ctx context.Context, key Key) TitleList {
	return ExtractTitles(f.FetchSubjectData(ctx, key).Response)
}

// errorTrace lists the wrapped error chain, outermost first, with the
// concrete type of each link.
func errorTrace(err error) string {
	var parts []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		parts = append(parts, fmt.Sprintf("%T", e))
	}
	return strings.Join(parts, " <- ")
}
