package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/hdlorbit/orbit/internal/ip"
)

func buildGraph(t *testing.T) *ip.Graph {
	t.Helper()
	g := ip.NewGraph()
	g.AddNode(ip.Spec{Name: "proj", Version: "1.0.0"}, &ip.Node{Checksum: "aaa"})
	g.AddNode(ip.Spec{Name: "common", Version: "2.0.0"}, &ip.Node{Checksum: "bbb", Source: "https://example.com/common.git"})
	return g
}

func TestFromGraphFlattensEveryNode(t *testing.T) {
	lock := FromGraph(buildGraph(t))
	if len(lock.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lock.Entries))
	}
}

func TestStaleDetectsMissingAndMismatchedEntries(t *testing.T) {
	g := buildGraph(t)
	lock := FromGraph(g)
	if Stale(lock, g) {
		t.Fatal("expected a freshly derived lock to not be stale")
	}

	mutated := lock
	mutated.Entries = append([]Entry{}, lock.Entries...)
	mutated.Entries[0].Sum = "changed"
	if !Stale(mutated, g) {
		t.Fatal("expected a checksum mismatch to be reported stale")
	}

	truncated := LockFile{Entries: lock.Entries[:1]}
	if !Stale(truncated, g) {
		t.Fatal("expected a missing entry to be reported stale")
	}
}

func TestReadMissingFileIsEmptyNotError(t *testing.T) {
	lock, err := Read(filepath.Join(t.TempDir(), "Orbit.lock"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lock.Entries) != 0 {
		t.Fatalf("expected an empty lock file, got %+v", lock)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Orbit.lock")
	lock := FromGraph(buildGraph(t))
	if err := Write(path, lock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Entries) != len(lock.Entries) {
		t.Fatalf("expected %d entries, got %d", len(lock.Entries), len(got.Entries))
	}
}
