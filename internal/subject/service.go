package subject

import (
	"context"
	"errors"
	"time"

	"booktitles/internal/platform/logger"
	"booktitles/internal/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrLookupLogDisabled is returned by Recent when no LookupLog is configured.
var ErrLookupLogDisabled = errors.New("lookup log is disabled")

const defaultConcurrency = 4

type Config struct {
	// Concurrency bounds LookupMany. Zero means defaultConcurrency.
	Concurrency int
}

type Service struct {
	fetcher *Fetcher
	log     LookupLog
	logger  logger.Logger
	cfg     Config
	now     func() time.Time
}

// NewService wires a Fetcher with an optional LookupLog (nil disables it).
func NewService(fetcher *Fetcher, log LookupLog, l logger.Logger, cfg Config) *Service {
	if l == nil {
		l = &logger.EmptyLogger{}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Service{
		fetcher: fetcher,
		log:     log,
		logger:  l,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Lookup resolves key to its titles. The only error is ErrEmptySubject;
// remote failures come back as a degraded, empty Lookup.
func (s *Service) Lookup(ctx context.Context, key Key) (Lookup, error) {
	if err := key.Validate(); err != nil {
		return Lookup{}, err
	}

	res := s.fetcher.FetchSubjectData(ctx, key)
	titles := ExtractTitles(res.Response)
	metrics.SubjectTitles.Observe(float64(len(titles)))

	lookup := Lookup{
		Subject:   key,
		Titles:    titles,
		Degraded:  res.Degraded,
		FetchedAt: s.now().UTC(),
	}
	s.record(ctx, lookup, res.Err)
	return lookup, nil
}

// LookupMany runs independent lookups concurrently and returns them in the
// order of keys. Invalid keys produce a degraded, empty Lookup.
func (s *Service) LookupMany(ctx context.Context, keys []Key) []Lookup {
	results := make([]Lookup, len(keys))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, key := range keys {
		g.Go(func() error {
			lookup, err := s.Lookup(ctx, key)
			if err != nil {
				s.logger.Notice("skipping subject %q: %v", key, err)
				lookup = Lookup{Subject: key, Titles: TitleList{}, Degraded: true, FetchedAt: s.now().UTC()}
			}
			results[i] = lookup
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Recent returns the latest lookup log entries.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.log == nil {
		return nil, ErrLookupLogDisabled
	}
	return s.log.Recent(ctx, limit)
}

func (s *Service) record(ctx context.Context, lookup Lookup, cause error) {
	if s.log == nil {
		return
	}
	entry := Entry{
		ID:          uuid.New().String(),
		Subject:     string(lookup.Subject),
		TitleCount:  len(lookup.Titles),
		Degraded:    lookup.Degraded,
		RequestedAt: lookup.FetchedAt,
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := s.log.Record(ctx, entry); err != nil {
		metrics.LookupLogFailures.Inc()
		s.logger.Error("failed to record lookup: subject=%s error=%v", lookup.Subject, err)
	}
}
