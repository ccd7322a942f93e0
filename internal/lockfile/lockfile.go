// Package lockfile reads and writes the lock file: the flat, topologically
// irrelevant record of every IP in a resolved dependency closure. The
// planning core treats it as opaque state to compare and rewrite, never to
// interpret.
package lockfile

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hdlorbit/orbit/internal/ip"
)

// FileName is the lock file's fixed name, written alongside the manifest.
const FileName = "Orbit.lock"

// Entry records one resolved IP: its identity, where it came from, and the
// checksum recorded at install time.
type Entry struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source,omitempty"`
	Sum     string `toml:"sum,omitempty"`
}

// LockFile is the full set of entries, serialized as a TOML array of tables.
type LockFile struct {
	Entries []Entry `toml:"ip"`
}

// FromGraph flattens a resolved IP graph into a LockFile. Order follows the
// graph's own node insertion order; a lock file has no ordering invariant
// of its own.
func FromGraph(g *ip.Graph) LockFile {
	var lock LockFile
	for _, key := range g.Keys() {
		node, _ := g.NodeByKey(key)
		lock.Entries = append(lock.Entries, Entry{
			Name:    key.Name,
			Version: key.Version,
			Source:  node.Source,
			Sum:     node.Checksum,
		})
	}
	return lock
}

// Stale reports whether lock no longer matches the resolved graph: any
// entry missing, any checksum mismatched, or any graph node absent from the
// lock. A plan with a stale lock must rewrite it; one that matches may skip
// the write unless --force is given.
func Stale(lock LockFile, g *ip.Graph) bool {
	byName := make(map[string]Entry, len(lock.Entries))
	for _, e := range lock.Entries {
		byName[e.Name+":"+e.Version] = e
	}
	if len(byName) != g.Len() {
		return true
	}
	for _, key := range g.Keys() {
		node, _ := g.NodeByKey(key)
		e, ok := byName[key.Name+":"+key.Version]
		if !ok {
			return true
		}
		if e.Sum != node.Checksum {
			return true
		}
	}
	return false
}

// Read parses a lock file from path. A missing file yields an empty
// LockFile rather than an error, so a first-time plan reads the lock as
// stale and writes a fresh one instead of failing.
func Read(path string) (LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LockFile{}, nil
		}
		return LockFile{}, fmt.Errorf("lockfile: read %s: %w", path, err)
	}
	var lock LockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return LockFile{}, fmt.Errorf("lockfile: parse %s: %w", path, err)
	}
	return lock, nil
}

// Write serializes lock as TOML to path.
func Write(path string, lock LockFile) error {
	data, err := toml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("lockfile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	return nil
}
