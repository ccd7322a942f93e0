// Package fileset matches glob patterns against a directory listing and
// classifies VHDL source files as synthesizable (RTL) or simulation-only,
// the external collaborator the blueprint emitter delegates both concerns
// to.
package fileset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Fileset is a named glob pattern, collected either from the command line
// (--fileset key=glob) or from a plugin's definition.
type Fileset struct {
	Name    string
	Pattern string
}

// Variables carries the template values a fileset pattern may reference
// before matching: the chosen top and testbench names, substituted in for
// "{{orbit.top}}"/"{{orbit.bench}}" placeholders before the pattern is
// matched against the directory listing.
type Variables struct {
	Top   string
	Bench string
}

// Substitute replaces "{{orbit.top}}" and "{{orbit.bench}}" placeholders in
// pattern with the resolved unit names.
func Substitute(pattern string, vars Variables) string {
	r := strings.NewReplacer(
		"{{orbit.top}}", vars.Top,
		"{{orbit.bench}}", vars.Bench,
	)
	return r.Replace(pattern)
}

// GatherFiles lists every regular file under root, relative to root, for
// fileset matching against the current directory's contents.
func GatherFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fileset: gather %s: %w", root, err)
	}
	return files, nil
}

// Collect returns every entry in files matching fs's pattern, in the order
// they appear in files (the insertion order GatherFiles produced).
func (f Fileset) Collect(files []string) []string {
	var matches []string
	for _, file := range files {
		ok, err := doublestar.Match(f.Pattern, file)
		if err != nil || !ok {
			continue
		}
		matches = append(matches, file)
	}
	return matches
}

// BlueprintLine formats one matched file as a blueprint overlay line:
// NAME\tname\tpath. path is expected to already be absolute (the caller
// joins a GatherFiles/Collect match back onto the scanned root), matching
// the absolute paths the VHDL-RTL/VHDL-SIM lines carry elsewhere in the
// same blueprint.
func (f Fileset) BlueprintLine(path string) string {
	return fmt.Sprintf("%s\t%s\t%s\n", strings.ToUpper(f.Name), f.Name, path)
}

// IsVHDLSource reports whether path has a recognized VHDL file extension.
func IsVHDLSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vhd", ".vhdl":
		return true
	default:
		return false
	}
}

// IsSim classifies a VHDL source as simulation-only by filename pattern:
// *_tb.* and *.tb.* are testbench/simulation sources. Everything else
// synthesizable is RTL.
func IsSim(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, "_tb") || strings.HasSuffix(stem, ".tb")
}

// IsRTL is the complement of IsSim for VHDL sources.
func IsRTL(path string) bool {
	return !IsSim(path)
}
