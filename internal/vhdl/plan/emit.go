package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hdlorbit/orbit/internal/environment"
	"github.com/hdlorbit/orbit/internal/fileset"
	"github.com/hdlorbit/orbit/internal/ip"
	"github.com/hdlorbit/orbit/internal/lockfile"
	"github.com/hdlorbit/orbit/internal/vhdl/graph"
)

// BlueprintFileName is the blueprint's fixed name inside the build
// directory.
const BlueprintFileName = "blueprint.tsv"

// EmitOptions bundles everything §4.5's blueprint emitter needs beyond the
// already-computed Selection: the HDL graph to order and gather files from,
// the resolved IP graph to lock, the overlays to apply, and the handful of
// command flags that change the emitter's behavior (--all, --clean,
// --force, --lock-only).
type EmitOptions struct {
	Graph      *graph.HDLGraph
	Selection  Selection
	All        bool
	Clean      bool
	Force      bool
	LockOnly   bool
	BuildDir   string
	CurrentDir string // scanned for fileset overlay matches

	IPGraph  *ip.Graph
	LockPath string

	Filesets []fileset.Fileset // ad-hoc (--fileset) plus plugin filesets, already merged
	Plugin   string            // alias, for ORBIT_PLUGIN; empty if none
}

// Emit implements §4.5: compute the file order, classify and write the
// blueprint, conditionally rewrite the lock file, and write the .env. A
// --lock-only run stops after the lock file and never touches the
// blueprint or environment file, matching the original's early return from
// `run()` when `only_lock` is set.
func Emit(opts EmitOptions) error {
	if opts.Clean {
		if err := os.RemoveAll(opts.BuildDir); err != nil {
			return fmt.Errorf("plan: clean %s: %w", opts.BuildDir, err)
		}
	}
	if err := os.MkdirAll(opts.BuildDir, 0o755); err != nil {
		return fmt.Errorf("plan: create build directory %s: %w", opts.BuildDir, err)
	}

	if opts.IPGraph != nil {
		lock := lockfile.FromGraph(opts.IPGraph)
		existing, err := lockfile.Read(opts.LockPath)
		if err != nil {
			return err
		}
		if opts.Force || lockfile.Stale(existing, opts.IPGraph) {
			if err := lockfile.Write(opts.LockPath, lock); err != nil {
				return err
			}
		}
	}
	if opts.LockOnly {
		return nil
	}

	order := topologicalOrder(opts)

	var lines []string
	if opts.CurrentDir != "" && len(opts.Filesets) > 0 {
		allFiles, err := fileset.GatherFiles(opts.CurrentDir)
		if err != nil {
			return err
		}
		vars := fileset.Variables{Top: nameOf(opts.Graph, opts.Selection.Top), Bench: nameOf(opts.Graph, opts.Selection.Bench)}
		for _, fs := range opts.Filesets {
			substituted := fileset.Fileset{Name: fs.Name, Pattern: fileset.Substitute(fs.Pattern, vars)}
			for _, match := range substituted.Collect(allFiles) {
				abs := filepath.Join(opts.CurrentDir, filepath.FromSlash(match))
				lines = append(lines, substituted.BlueprintLine(abs))
			}
		}
	}

	for _, idx := range order {
		node := opts.Graph.NodeByIndex(idx)
		for _, f := range node.Files {
			tag := "VHDL-RTL"
			if fileset.IsSim(f.Path()) {
				tag = "VHDL-SIM"
			}
			lines = append(lines, fmt.Sprintf("%s\t%s\t%s\n", tag, f.Library().Text, f.Path()))
		}
	}

	blueprintPath := filepath.Join(opts.BuildDir, BlueprintFileName)
	if err := os.WriteFile(blueprintPath, []byte(strings.Join(lines, "")), 0o644); err != nil {
		return fmt.Errorf("plan: write %s: %w", blueprintPath, err)
	}

	env := environment.New()
	env.Set(environment.Top, nameOf(opts.Graph, opts.Selection.Top))
	env.Set(environment.Bench, nameOf(opts.Graph, opts.Selection.Bench))
	if opts.Plugin != "" {
		env.Set(environment.Plugin, opts.Plugin)
	}
	env.Set(environment.Blueprint, BlueprintFileName)
	if err := env.Save(opts.BuildDir); err != nil {
		return err
	}

	return nil
}

// topologicalOrder implements §4.5's ordering rule: every node if --all,
// otherwise the minimal set needed to build the highest chosen node (bench
// if set, else top).
func topologicalOrder(opts EmitOptions) []int {
	if opts.All {
		order, err := opts.Graph.TopologicalSort()
		if err != nil {
			return order // best-effort order; a cycle elsewhere doesn't block emission
		}
		return order
	}
	seed := opts.Selection.Bench
	if seed == unset {
		seed = opts.Selection.Top
	}
	if seed == unset {
		return nil
	}
	return opts.Graph.MinimalTopologicalSort(seed)
}
