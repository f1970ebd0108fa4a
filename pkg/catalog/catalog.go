// Package catalog keeps a snapshot of package names and their published
// versions, loaded from and persisted to a [cache.Cache].
//
// A Catalog is an explicit object owned by its caller. Nothing is loaded
// until [Catalog.Load] is called, and a missing snapshot is an empty
// catalog rather than an error.
//
//	cat := catalog.New(backend, pypi.NewClient(backend, time.Hour), catalog.Options{})
//	if err := cat.Load(ctx); err != nil {
//	    return err
//	}
//	if err := cat.Reload(ctx, "django", "requests"); err != nil {
//	    return err
//	}
//	e, ok := cat.Get("Django")
//
// Versions are normalized with [pep440.Normalize] for display only; the
// catalog never compares versions against requirement constraints.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipreq/pkg/cache"
	"github.com/matzehuels/pipreq/pkg/integrations"
	"github.com/matzehuels/pipreq/pkg/integrations/pypi"
	"github.com/matzehuels/pipreq/pkg/pep440"
)

// ErrUnknownPackage is returned when a name is not in the catalog.
var ErrUnknownPackage = errors.New("package not in catalog")

// Source fetches the release list of one project. *pypi.Client implements it.
type Source interface {
	FetchReleases(ctx context.Context, name string, refresh bool) (*pypi.Releases, error)
}

// Options configures a Catalog.
type Options struct {
	Index       string        // Index URL the snapshot belongs to (default: pypi.DefaultBaseURL)
	TTL         time.Duration // Snapshot lifetime in the cache (0: no expiry)
	Concurrency int           // Parallel fetches during Reload (default: 8)
	Logger      *log.Logger   // Optional; nil discards
}

// Entry is the catalog record of one package.
type Entry struct {
	Name       string                    `json:"name"`
	Latest     string                    `json:"latest,omitempty"`
	Versions   []string                  `json:"versions"`
	Normalized map[string]pep440.Version `json:"normalized,omitempty"`
	FetchedAt  time.Time                 `json:"fetched_at"`
}

// snapshot is the persisted form of a catalog.
type snapshot struct {
	Index     string            `json:"index"`
	UpdatedAt time.Time         `json:"updated_at"`
	Packages  map[string]*Entry `json:"packages"`
}

// Catalog is safe for concurrent use.
type Catalog struct {
	backend cache.Cache
	source  Source
	keyer   cache.Keyer
	opts    Options

	mu        sync.RWMutex
	entries   map[string]*Entry
	updatedAt time.Time
}

// New creates an empty catalog. Call Load to read the persisted snapshot.
func New(backend cache.Cache, source Source, opts Options) *Catalog {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if opts.Index == "" {
		opts.Index = pypi.DefaultBaseURL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Catalog{
		backend: backend,
		source:  source,
		keyer:   cache.NewDefaultKeyer(),
		opts:    opts,
		entries: make(map[string]*Entry),
	}
}

// Load replaces the in-memory catalog with the persisted snapshot. A
// missing or unreadable snapshot leaves the catalog empty.
func (c *Catalog) Load(ctx context.Context) error {
	data, ok, err := c.backend.Get(ctx, c.key())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var snap snapshot
	if ok {
		if err := json.Unmarshal(data, &snap); err != nil {
			c.opts.Logger.Warn("discarding unreadable catalog snapshot", "err", err)
			ok = false
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry, len(snap.Packages))
	c.updatedAt = time.Time{}
	if !ok {
		c.opts.Logger.Debug("no catalog snapshot", "index", c.opts.Index)
		return nil
	}
	for name, e := range snap.Packages {
		if e == nil {
			c.opts.Logger.Warn("skipping empty catalog entry", "package", name)
			continue
		}
		c.entries[integrations.NormalizePkgName(name)] = e
	}
	c.updatedAt = snap.UpdatedAt
	c.opts.Logger.Debug("catalog loaded", "packages", len(c.entries), "updated", snap.UpdatedAt)
	return nil
}

// Reload fetches fresh release lists for names, merges them into the
// catalog and persists the snapshot. With no names, every package already
// in the catalog is refreshed. Packages that fail to fetch keep their old
// entry; their errors are joined into the returned error after the
// successful ones are saved.
func (c *Catalog) Reload(ctx context.Context, names ...string) error {
	if c.source == nil {
		return errors.New("catalog has no source")
	}
	if len(names) == 0 {
		names = c.Names()
	}
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil
	}

	type result struct {
		entry *Entry
		err   error
	}
	results := make([]result, len(names))
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.opts.Concurrency)

	for i, name := range names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rel, err := c.source.FetchReleases(ctx, name, true)
			if err != nil {
				results[idx] = result{err: fmt.Errorf("%s: %w", name, err)}
				return
			}
			results[idx] = result{entry: newEntry(rel, time.Now().UTC())}
		}(i, name)
	}
	wg.Wait()

	var errs []error
	c.mu.Lock()
	for _, r := range results {
		if r.err != nil {
			c.opts.Logger.Warn("catalog fetch failed", "err", r.err)
			errs = append(errs, r.err)
			continue
		}
		c.entries[r.entry.Name] = r.entry
	}
	c.updatedAt = time.Now().UTC()
	c.mu.Unlock()

	if err := c.save(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Get looks a package up by name. The name is normalized first, so
// "Django_Haystack" finds "django-haystack".
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[integrations.NormalizePkgName(name)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Lookup is Get with an error for unknown packages.
func (c *Catalog) Lookup(name string) (Entry, error) {
	e, ok := c.Get(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}
	return e, nil
}

// Names returns the catalogued package names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of catalogued packages.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// UpdatedAt returns when the catalog was last refreshed; zero if never.
func (c *Catalog) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// Index returns the index URL the catalog belongs to.
func (c *Catalog) Index() string { return c.opts.Index }

func (c *Catalog) save(ctx context.Context) error {
	c.mu.RLock()
	snap := snapshot{
		Index:     c.opts.Index,
		UpdatedAt: c.updatedAt,
		Packages:  make(map[string]*Entry, len(c.entries)),
	}
	for name, e := range c.entries {
		snap.Packages[name] = e
	}
	data, err := json.Marshal(snap)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.backend.Set(ctx, c.key(), data, c.opts.TTL); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (c *Catalog) key() string { return c.keyer.CatalogKey(c.opts.Index) }

func newEntry(rel *pypi.Releases, fetched time.Time) *Entry {
	e := &Entry{
		Name:      integrations.NormalizePkgName(rel.Name),
		Latest:    rel.Latest,
		Versions:  append([]string(nil), rel.Versions...),
		FetchedAt: fetched,
	}
	for _, raw := range rel.Versions {
		// A published release is never a wildcard.
		v, ok := pep440.Normalize(raw)
		if !ok || v.IsWildcard() {
			continue
		}
		if e.Normalized == nil {
			e.Normalized = make(map[string]pep440.Version, len(rel.Versions))
		}
		e.Normalized[raw] = v
	}
	return e
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		n = integrations.NormalizePkgName(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
