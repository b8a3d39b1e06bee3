// Package repository loads point charts and serves them by resort and year.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/pointchart/internal/domain/chart"
)

// ChartRef identifies one stored chart.
type ChartRef struct {
	Resort string `json:"resort"`
	Year   int    `json:"year"`
	Source string `json:"source,omitempty"`
}

// Store provides read access to point charts.
type Store interface {
	// Get returns the chart for resort and year.
	// Returns ErrNotFound if no chart is stored.
	Get(ctx context.Context, resort string, year int) (*chart.PointChart, error)

	// List returns every stored chart ordered by resort then year.
	List(ctx context.Context) ([]ChartRef, error)

	// Count returns the number of stored charts.
	Count(ctx context.Context) int
}

type key struct {
	resort string
	year   int
}

type entry struct {
	ref   ChartRef
	chart *chart.PointChart
}

// index is the shared map behind MemoryStore and FileStore.
type index struct {
	mu      sync.RWMutex
	entries map[key]entry
}

func newIndex() *index { return &index{entries: make(map[key]entry)} }

func (ix *index) get(resort string, year int) (*chart.PointChart, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[key{resort, year}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, resort, year)
	}
	return e.chart, nil
}

func (ix *index) list() []ChartRef {
	ix.mu.RLock()
	refs := make([]ChartRef, 0, len(ix.entries))
	for _, e := range ix.entries {
		refs = append(refs, e.ref)
	}
	ix.mu.RUnlock()
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Resort != refs[j].Resort {
			return refs[i].Resort < refs[j].Resort
		}
		return refs[i].Year < refs[j].Year
	})
	return refs
}

func (ix *index) count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

func (ix *index) replace(entries map[key]entry) {
	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
}

// MemoryStore keeps charts in memory. It is safe for concurrent use.
type MemoryStore struct {
	ix *index
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ix: newIndex()}
}

// Put validates and stores c, replacing any chart for the same resort and year.
func (s *MemoryStore) Put(_ context.Context, c *chart.PointChart) error {
	if c == nil || c.Resort == "" {
		return fmt.Errorf("%w: chart needs a resort", ErrInvalidKey)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.ix.mu.Lock()
	s.ix.entries[key{c.Resort, c.Year}] = entry{ref: ChartRef{Resort: c.Resort, Year: c.Year}, chart: c}
	s.ix.mu.Unlock()
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, resort string, year int) (*chart.PointChart, error) {
	return s.ix.get(resort, year)
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]ChartRef, error) { return s.ix.list(), nil }

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int { return s.ix.count() }
