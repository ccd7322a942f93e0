package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
	"github.com/hdlorbit/orbit/internal/config"
	"github.com/hdlorbit/orbit/internal/fileset"
	"github.com/hdlorbit/orbit/internal/ip"
	"github.com/hdlorbit/orbit/internal/lockfile"
	"github.com/hdlorbit/orbit/internal/plugin"
	"github.com/hdlorbit/orbit/internal/vcs"
	"github.com/hdlorbit/orbit/internal/vhdl/graph"
	"github.com/hdlorbit/orbit/internal/vhdl/plan"
)

var (
	planTop        string
	planBench      string
	planPluginName string
	planBuildDir   string
	planFilesets   []string
	planClean      bool
	planList       bool
	planAll        bool
	planDisableSSH bool
	planLockOnly   bool
	planForce      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "resolve dependencies, select a top/testbench, and emit a build blueprint",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planTop, "top", "", "override auto-detected top entity")
	planCmd.Flags().StringVar(&planBench, "bench", "", "override auto-detected testbench")
	planCmd.Flags().StringVar(&planPluginName, "plugin", "", "use plugin's filesets during emission")
	planCmd.Flags().StringVar(&planBuildDir, "build-dir", "", "override configured build directory")
	planCmd.Flags().StringArrayVar(&planFilesets, "fileset", nil, "add ad-hoc fileset (key=glob)")
	planCmd.Flags().BoolVar(&planClean, "clean", false, "wipe build directory first")
	planCmd.Flags().BoolVar(&planList, "list", false, "print plugin list and exit")
	planCmd.Flags().BoolVar(&planAll, "all", false, "include every HDL file; tolerate ambiguity")
	planCmd.Flags().BoolVar(&planDisableSSH, "disable-ssh", false, "rewrite ssh URLs to https during install")
	planCmd.Flags().BoolVar(&planLockOnly, "lock-only", false, "write lock file and exit")
	planCmd.Flags().BoolVar(&planForce, "force", false, "ignore existing lock")
}

func runPlan(cmd *cobra.Command, args []string) error {
	root, rootDir, err := currentManifest()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	buildDir := resolveBuildDir(planBuildDir, cfg)
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(rootDir, buildDir)
	}

	reg, err := loadPluginRegistry(rootDir)
	if err != nil {
		return err
	}
	if planList {
		for _, p := range reg.List() {
			fmt.Printf("%s\t%s\n", p.Alias, p.Description)
		}
		return nil
	}

	cat, err := catalog.New().WithStore(resolveStoreDir(cfg))
	if err != nil {
		return err
	}
	cat, err = cat.WithDevelopment(cfg.Env.PathDevelopment)
	if err != nil {
		return err
	}

	lockPath := filepath.Join(rootDir, lockfile.FileName)
	existingLock, err := lockfile.Read(lockPath)
	if err != nil {
		return err
	}
	log.WithField("ip", root.Spec().Name).Debug("reinstalling lock entries missing from the store")
	if err := cat.ReconcileFromLock(existingLock, vcs.GitFetcher{}, resolveStoreDir(cfg), planDisableSSH); err != nil {
		return err
	}

	ipGraph, err := cat.Resolve(*root, rootDir)
	if err != nil {
		return err
	}

	files, err := ip.BuildFileList(ipGraph, root.Spec())
	if err != nil {
		return err
	}
	hdlGraph, err := graph.BuildGraph(files)
	if err != nil {
		return err
	}

	sel, err := plan.Select(hdlGraph, plan.Options{Top: planTop, Bench: planBench, All: planAll})
	if err != nil {
		return err
	}
	selected := logrus.Fields{"top": "", "bench": ""}
	if sel.Top >= 0 {
		selected["top"] = hdlGraph.NodeByIndex(sel.Top).Name.Text
	}
	if sel.Bench >= 0 {
		selected["bench"] = hdlGraph.NodeByIndex(sel.Bench).Name.Text
	}
	log.WithFields(selected).Info("selected top/testbench")

	filesets, err := collectFilesets(reg, planPluginName)
	if err != nil {
		return err
	}

	err = plan.Emit(plan.EmitOptions{
		Graph:      hdlGraph,
		Selection:  sel,
		All:        planAll,
		Clean:      planClean,
		Force:      planForce,
		LockOnly:   planLockOnly,
		BuildDir:   buildDir,
		CurrentDir: rootDir,
		IPGraph:    ipGraph,
		LockPath:   lockPath,
		Filesets:   filesets,
		Plugin:     planPluginName,
	})
	if err != nil {
		return err
	}
	log.WithField("build-dir", buildDir).Info("plan complete")
	return nil
}

// resolveStoreDir is the installed-IP cache directory, always
// ~/.orbit/store: config.Env.Vendors names the available-packages index
// (internal/catalog's Available tier), a separate concern from where
// already-installed IPs live.
func resolveStoreDir(cfg config.Config) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".orbit", "store")
}

func loadPluginRegistry(rootDir string) (*plugin.Registry, error) {
	path := filepath.Join(rootDir, "plugins.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return plugin.Load(nil)
		}
		return nil, fmt.Errorf("orbit: read %s: %w", path, err)
	}
	return plugin.Load(data)
}

func collectFilesets(reg *plugin.Registry, alias string) ([]fileset.Fileset, error) {
	var out []fileset.Fileset
	if alias != "" {
		p, ok := reg.Get(alias)
		if !ok {
			return nil, fmt.Errorf("orbit: no plugin named %q", alias)
		}
		out = append(out, p.Filesets()...)
	}
	for _, raw := range planFilesets {
		name, pattern, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("orbit: --fileset expects key=glob, got %q", raw)
		}
		out = append(out, fileset.Fileset{Name: name, Pattern: pattern})
	}
	return out, nil
}
