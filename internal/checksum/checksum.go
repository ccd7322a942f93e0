// Package checksum computes and verifies content hashes used to validate
// installed IP against a lock file entry.
package checksum

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Sum hashes a single byte slice and returns it as a fixed-width hex string.
func Sum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// SumReader hashes the full contents of r.
func SumReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("checksum: read: %w", err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// SumTree walks root and combines every regular file's path and contents
// into a single order-independent checksum, used to fingerprint an
// installed IP's source tree against the value recorded at install time.
func SumTree(root string) (string, error) {
	var paths []string
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			paths = append(paths, rel)
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("checksum: walk %s: %w", root, err)
	}
	sort.Strings(paths)

	h := xxhash.New()
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", fmt.Errorf("checksum: read %s: %w", rel, err)
		}
		io.WriteString(h, rel)
		h.Write(data)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Verify reports whether data's checksum matches want.
func Verify(data []byte, want string) bool {
	return Sum(data) == want
}
