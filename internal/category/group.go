// Package category maintains the locally-cached lookup tables of
// selectable grouping values (job codes, cost centers, …), populated
// incrementally from the vendor's paginated group endpoint.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

// PageResult is one page of raw group options plus the server-reported
// total item count. The total can move between pages when categories are
// added or closed mid-fetch.
type PageResult struct {
	Items []raw.Record
	Total int
}

// Pager fetches one page of options for a group. Implemented by the
// session client; stubbed in tests.
type Pager interface {
	Page(ctx context.Context, groupNumber, page, perPage int) (*PageResult, error)
}

// Store is the backing cache for a group's options, keyed by the durable
// iGroupValueSeq. The in-memory implementation suffices; a persistent one
// can be swapped in behind the same interface.
type Store interface {
	Get(seq int) (*timesheet.Category, bool)
	// Put stores the category and returns the previous value it replaced,
	// if any.
	Put(c *timesheet.Category) (prev *timesheet.Category, replaced bool)
	Len() int
	Seqs() []int
}

// MemoryStore is the default map-backed Store.
type MemoryStore struct {
	options map[int]*timesheet.Category
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{options: map[int]*timesheet.Category{}}
}

func (s *MemoryStore) Get(seq int) (*timesheet.Category, bool) {
	c, ok := s.options[seq]
	return c, ok
}

func (s *MemoryStore) Put(c *timesheet.Category) (*timesheet.Category, bool) {
	prev, replaced := s.options[c.GroupSeq]
	s.options[c.GroupSeq] = c
	return prev, replaced
}

func (s *MemoryStore) Len() int { return len(s.options) }

func (s *MemoryStore) Seqs() []int {
	seqs := make([]int, 0, len(s.options))
	for seq := range s.options {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)
	return seqs
}

// maxFetchPages bounds the pagination loop. The server-reported total can
// keep moving if the group churns during the fetch; past this many pages
// that is a protocol failure, not something to retry forever.
const maxFetchPages = 50

// PagingError reports a group fetch that never converged on the
// server-reported total.
type PagingError struct {
	Group string
	Pages int
	Have  int
	Total int
}

func (e *PagingError) Error() string {
	return fmt.Sprintf("group %q: fetched %d pages and %d of %d reported options without converging",
		e.Group, e.Pages, e.Have, e.Total)
}

// Group is one grouping dimension and its cached selectable values.
type Group struct {
	Number int
	Name   string

	store Store
	log   *slog.Logger
}

// Option configures a Group.
type Option func(*Group)

// WithStore substitutes the backing cache.
func WithStore(s Store) Option {
	return func(g *Group) { g.store = s }
}

// WithLogger substitutes the diagnostics sink.
func WithLogger(l *slog.Logger) Option {
	return func(g *Group) { g.log = l }
}

// NewGroup creates a group cache for the given vendor group number and
// display caption.
func NewGroup(number int, name string, opts ...Option) *Group {
	g := &Group{
		Number: number,
		Name:   name,
		store:  NewMemoryStore(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch pages through the group's options until the cache holds the
// server-reported total. A repeated iGroupValueSeq overwrites the cached
// value with a warning: the vendor's paging is not stable across
// requests, and display text for pending categories legitimately changes.
// The whole fetch must complete before Lookup/Options are trustworthy.
func (g *Group) Fetch(ctx context.Context, pager Pager, pageSize int) error {
	total := -1
	for page := 1; page <= maxFetchPages; page++ {
		result, err := pager.Page(ctx, g.Number, page, pageSize)
		if err != nil {
			return fmt.Errorf("group %q page %d: %w", g.Name, page, err)
		}
		total = result.Total

		for _, record := range result.Items {
			c, err := timesheet.ParseCategory(record)
			if err != nil {
				return fmt.Errorf("group %q page %d: %w", g.Name, page, err)
			}
			if prev, replaced := g.store.Put(c); replaced {
				g.log.Warn("category overwritten during fetch",
					"group", g.Name,
					"seq", c.GroupSeq,
					"old", prev.String(),
					"new", c.String())
			}
		}

		if g.store.Len() >= total {
			g.log.Debug("group fetch complete",
				"group", g.Name, "options", g.store.Len(), "pages", page)
			return nil
		}
	}
	return &PagingError{Group: g.Name, Pages: maxFetchPages, Have: g.store.Len(), Total: total}
}

// Lookup finds a cached option by its durable sequence key.
func (g *Group) Lookup(seq int) (*timesheet.Category, bool) {
	return g.store.Get(seq)
}

// Len returns the number of cached options.
func (g *Group) Len() int { return g.store.Len() }

// Options returns the cached options ordered by sequence key.
func (g *Group) Options() []*timesheet.Category {
	out := make([]*timesheet.Category, 0, g.store.Len())
	for _, seq := range g.store.Seqs() {
		if c, ok := g.store.Get(seq); ok {
			out = append(out, c)
		}
	}
	return out
}
