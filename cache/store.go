package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Store.Get when no entry exists for the key.
var ErrNotFound = errors.New("cache: entry not found")

// Entry is one cached cost matrix together with the request it answers.
type Entry struct {
	Locations []string  `json:"locations"`
	Mode      string    `json:"mode"`
	Metric    string    `json:"metric"`
	Costs     [][]int64 `json:"costs"`
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether e was computed for exactly this request.
// Hash collisions and hand-edited files are caught here.
func (e Entry) Matches(locations []string, mode, metric string) bool {
	return e.Mode == mode && e.Metric == metric && slices.Equal(e.Locations, locations)
}

// Matrix converts the stored rows into a matrix.Dense.
func (e Entry) Matrix() (*matrix.Dense, error) {
	m, err := matrix.NewFromRows(e.Costs)
	if err != nil {
		return nil, errors.Wrap(err, "cache: stored matrix")
	}
	if m.Rows() != len(e.Locations) || m.Cols() != len(e.Locations) {
		return nil, errors.Errorf("cache: stored matrix is %d×%d for %d locations", m.Rows(), m.Cols(), len(e.Locations))
	}

	return m, nil
}

// Store is a persisted key → Entry mapping.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the entry for key or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)
	// Put stores e under key, replacing any previous entry.
	Put(ctx context.Context, key string, e Entry) error
	// Close releases the store's resources.
	Close() error
}

// Key derives the cache key of a matrix request: xxhash64 over mode, metric
// and the ordered location identifiers, rendered as 16 hex digits.
func Key(mode, metric string, locations []string) string {
	d := xxhash.New()
	_, _ = d.WriteString(mode)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(metric)
	for _, loc := range locations {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(loc)
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

// cloneEntry deep-copies the slices of e.
func cloneEntry(e Entry) Entry {
	out := e
	out.Locations = slices.Clone(e.Locations)
	if e.Costs != nil {
		out.Costs = make([][]int64, len(e.Costs))
		for i, row := range e.Costs {
			out.Costs[i] = slices.Clone(row)
		}
	}

	return out
}
