package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hdlorbit/orbit/internal/ip"
)

func writeManifest(t *testing.T, dir, name, version string, deps map[string]string) {
	t.Helper()
	m := &ip.Manifest{Dependencies: deps}
	m.Ip.Name = name
	m.Ip.Version = version
	require.NoError(t, ip.WriteManifest(filepath.Join(dir, ip.ManifestFileName), m))
}

func TestWithStoreScansInstalledIPs(t *testing.T) {
	store := t.TempDir()
	ipDir := filepath.Join(store, "common-1.0.0")
	require.NoError(t, os.MkdirAll(ipDir, 0o755))
	writeManifest(t, ipDir, "common", "1.0.0", nil)

	c, err := New().WithStore(store)
	require.NoError(t, err)

	statuses := c.Get("common")
	require.Len(t, statuses, 1)
	require.Equal(t, Store, statuses[0].Source)
}

func TestResolveBuildsTransitiveGraph(t *testing.T) {
	store := t.TempDir()
	commonDir := filepath.Join(store, "common-1.0.0")
	require.NoError(t, os.MkdirAll(commonDir, 0o755))
	writeManifest(t, commonDir, "common", "1.0.0", map[string]string{"base": "1.0.0"})
	baseDir := filepath.Join(store, "base-1.0.0")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))
	writeManifest(t, baseDir, "base", "1.0.0", nil)

	c, err := New().WithStore(store)
	require.NoError(t, err)

	root := ip.Manifest{Dependencies: map[string]string{"common": "1.0.0"}}
	root.Ip.Name = "proj"
	root.Ip.Version = "0.1.0"

	g, err := c.Resolve(root, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())
}

func TestResolveMissingDependencyIsAnError(t *testing.T) {
	c := New()
	root := ip.Manifest{Dependencies: map[string]string{"missing": "1.0.0"}}
	root.Ip.Name = "proj"
	root.Ip.Version = "0.1.0"

	_, err := c.Resolve(root, t.TempDir())
	require.Error(t, err)
}
