package subject

import (
	"errors"
	"time"

	"booktitles/internal/platform/validation"
)

// ErrEmptySubject is returned when a lookup is attempted without a subject key.
var ErrEmptySubject = errors.New("subject must not be empty")

// Key identifies a category in the remote catalog, e.g. "fiction".
type Key string

// Validate reports ErrEmptySubject for empty or whitespace-only keys.
func (k Key) Validate() error {
	if err := validation.Var(string(k), "notblank"); err != nil {
		return ErrEmptySubject
	}
	return nil
}

func (k Key) String() string {
	return string(k)
}

// Response is the raw subject payload. Any field may be absent.
type Response map[string]any

// TitleList holds titles in remote order. Duplicates are kept.
type TitleList []string

// FetchResult is what FetchSubjectData hands back. Exactly one of two paths
// holds: a decoded Response with Degraded false, or an empty Response with
// Degraded true and Err set to the absorbed cause.
type FetchResult struct {
	Response Response
	Degraded bool
	Err      error
}

// Lookup is the outcome of resolving one subject to its titles.
type Lookup struct {
	Subject   Key       `json:"subject"`
	Titles    TitleList `json:"titles"`
	Degraded  bool      `json:"degraded"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Entry is one row of the lookup log.
type Entry struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	TitleCount  int       `json:"title_count"`
	Degraded    bool      `json:"degraded"`
	Error       string    `json:"error,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
