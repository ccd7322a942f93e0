package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
	"github.com/hdlorbit/orbit/internal/checksum"
	"github.com/hdlorbit/orbit/internal/ip"
)

var probeCmd = &cobra.Command{
	Use:   "probe <ip>",
	Short: "inspect a catalog entry: versions available, direct dependencies, checksum",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	_, rootDir, err := currentManifest()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	cat, err := catalog.New().WithStore(resolveStoreDir(cfg))
	if err != nil {
		return err
	}
	cat, err = cat.WithDevelopment(cfg.Env.PathDevelopment)
	if err != nil {
		return err
	}

	statuses := cat.Get(args[0])
	if len(statuses) == 0 {
		return fmt.Errorf("orbit: no catalog entry named %q", args[0])
	}

	for _, s := range statuses {
		fmt.Printf("%s\t%s\t%s\n", s.Spec.Version, s.Source, s.Dir)
		if s.Dir == "" {
			continue
		}
		m, err := ip.LoadManifest(filepath.Join(s.Dir, ip.ManifestFileName))
		if err != nil {
			continue
		}
		for name, ver := range m.Dependencies {
			fmt.Printf("  depends on %s %s\n", name, ver)
		}
		sum, err := checksum.SumTree(s.Dir)
		if err == nil {
			fmt.Printf("  checksum %s\n", sum)
		}
	}
	return nil
}
