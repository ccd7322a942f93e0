package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hdlorbit/orbit/internal/checksum"
	"github.com/hdlorbit/orbit/internal/ip"
	"github.com/hdlorbit/orbit/internal/lockfile"
	"github.com/hdlorbit/orbit/internal/vcs"
)

// ReconcileFromLock installs every lock entry missing from the catalog's
// store into cacheDir, verifying each install's checksum against the lock's
// recorded sum. A plan run whose lock file already names a dependency the
// local store does not yet have re-fetches it before resolution continues.
func (c *MemoryCatalog) ReconcileFromLock(lock lockfile.LockFile, fetcher vcs.Fetcher, cacheDir string, disableSSH bool) error {
	for _, entry := range lock.Entries {
		if entry.Source == "" {
			continue // the root IP's own entry has no remote source
		}
		if _, ok := c.resolveLocal(entry.Name); ok {
			continue // already installed
		}

		url := entry.Source
		if disableSSH {
			url = vcs.RewriteToHTTPS(url)
		}

		dir := filepath.Join(cacheDir, fmt.Sprintf("%s-%s", entry.Name, entry.Version))
		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return fmt.Errorf("catalog: prepare cache dir: %w", err)
		}
		if err := fetcher.Clone(url, entry.Version, dir); err != nil {
			return fmt.Errorf("catalog: install %s from lock: %w", entry.Name, err)
		}

		if entry.Sum != "" {
			sum, err := checksum.SumTree(dir)
			if err != nil {
				return err
			}
			if sum != entry.Sum {
				os.RemoveAll(dir)
				return fmt.Errorf("catalog: failed to install %q from lock due to differing checksums: computed %s, expected %s", entry.Name, sum, entry.Sum)
			}
		}

		c.add(Status{
			Spec:      ip.Spec{Name: entry.Name, Version: entry.Version},
			Dir:       dir,
			Source:    Store,
			SourceURL: entry.Source,
		})
	}
	return nil
}
