// Package catalog aggregates the locations orbit can find an IP: already
// installed cache entries ("store"), local in-progress checkouts
// ("development"), and a vendor/registry index ("available"). It is the
// external resolver that turns a root manifest into a fully resolved IP
// graph, given nothing but a root manifest and these known locations.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hdlorbit/orbit/internal/ip"
)

// Source distinguishes where a catalog entry was found.
type Source int

const (
	Store Source = iota
	Development
	Available
)

func (s Source) String() string {
	switch s {
	case Store:
		return "store"
	case Development:
		return "development"
	case Available:
		return "available"
	default:
		return "unknown"
	}
}

// Status is one known location of an IP version.
type Status struct {
	Spec   ip.Spec
	Dir    string // on-disk path; empty for an Available entry not yet fetched
	Source Source
	SourceURL string
}

// MemoryCatalog is a read-mostly, thread-safe aggregate of every known IP
// location, directly adapted from pkg/chain's MemoryRepository: the same
// sync.RWMutex-guarded map-of-slices shape, generalized from BSDL device
// lookups by IDCODE to IP lookups by name. The concurrency guard exists so
// `orbit query`/`orbit probe` can safely inspect a catalog while a future
// incremental `orbit plan` mode populates it (SPEC_FULL.md §5), not because
// today's single-threaded plan pipeline needs it.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[string][]Status // ip name -> every known version/source
}

// New creates an empty catalog.
func New() *MemoryCatalog {
	return &MemoryCatalog{entries: make(map[string][]Status)}
}

func (c *MemoryCatalog) add(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[status.Spec.Name] = append(c.entries[status.Spec.Name], status)
}

// Get returns every known Status for the named IP, across all sources.
func (c *MemoryCatalog) Get(name string) []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Status, len(c.entries[name]))
	copy(out, c.entries[name])
	return out
}

// Names returns every IP name the catalog has at least one entry for.
func (c *MemoryCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names
}

// WithStore scans dir for installed IPs: one subdirectory per
// name/version, each containing an Orbit.toml. Returns c for fluent
// chaining, mirroring the original's `Catalog::new().store(..).development(..)?`
// builder, adapted to Go's explicit-error idiom (each stage returns its own
// error instead of using `?`).
func (c *MemoryCatalog) WithStore(dir string) (*MemoryCatalog, error) {
	return c.scan(dir, Store)
}

// WithDevelopment scans dir for local, in-progress IP checkouts.
func (c *MemoryCatalog) WithDevelopment(dir string) (*MemoryCatalog, error) {
	return c.scan(dir, Development)
}

// WithAvailable scans dir for a vendor/registry index of installable IPs.
func (c *MemoryCatalog) WithAvailable(dir string) (*MemoryCatalog, error) {
	return c.scan(dir, Available)
}

func (c *MemoryCatalog) scan(dir string, source Source) (*MemoryCatalog, error) {
	if dir == "" {
		return c, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ipDir := filepath.Join(dir, e.Name())
		manifestPath := filepath.Join(ipDir, ip.ManifestFileName)
		m, err := ip.LoadManifest(manifestPath)
		if err != nil {
			continue // not an IP directory; skip rather than fail the whole scan
		}
		c.add(Status{Spec: m.Spec(), Dir: ipDir, Source: source})
	}
	return c, nil
}

// Resolve builds the IP dependency graph for root by recursively looking up
// each dependency name in the catalog (development entries take priority
// over store entries, since a developer actively editing a dependency wants
// their local copy used) and reading its own manifest for transitive
// dependencies. A dependency with no local entry is an error instructing
// the caller to run `orbit get` first — fetching is the job of `orbit get`
// and of ReconcileFromLock (for entries a lock file names), not of Resolve.
func (c *MemoryCatalog) Resolve(root ip.Manifest, rootDir string) (*ip.Graph, error) {
	g := ip.NewGraph()
	rootSpec := root.Spec()
	g.AddNode(rootSpec, &ip.Node{Manifest: root, Dir: rootDir})

	visited := map[ip.Spec]bool{rootSpec: true}
	queue := []struct {
		spec ip.Spec
		dir  string
		deps map[string]string
	}{{rootSpec, rootDir, root.Dependencies}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for name := range cur.deps {
			status, ok := c.resolveLocal(name)
			if !ok {
				return nil, fmt.Errorf("catalog: dependency %q is not installed; run `orbit get %s` first", name, name)
			}
			if visited[status.Spec] {
				g.AddEdgeByKey(status.Spec, cur.spec)
				continue
			}
			visited[status.Spec] = true
			m, err := ip.LoadManifest(filepath.Join(status.Dir, ip.ManifestFileName))
			if err != nil {
				return nil, err
			}
			g.AddNode(status.Spec, &ip.Node{Manifest: *m, Dir: status.Dir, Source: status.SourceURL})
			g.AddEdgeByKey(status.Spec, cur.spec)
			queue = append(queue, struct {
				spec ip.Spec
				dir  string
				deps map[string]string
			}{status.Spec, status.Dir, m.Dependencies})
		}
	}
	return g, nil
}

// resolveLocal picks the best local Status for name: development over
// store, first match within a tier.
func (c *MemoryCatalog) resolveLocal(name string) (Status, bool) {
	statuses := c.Get(name)
	var best *Status
	for i := range statuses {
		s := statuses[i]
		if s.Dir == "" {
			continue
		}
		if best == nil || (s.Source == Development && best.Source != Development) {
			best = &statuses[i]
		}
	}
	if best == nil {
		return Status{}, false
	}
	return *best, true
}
