package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
	"github.com/hdlorbit/orbit/internal/ip"
)

var viewCmd = &cobra.Command{
	Use:   "view <ip>",
	Short: "print the manifest of an installed, available, or development IP",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
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
	cat, err = cat.WithAvailable(cfg.Env.Vendors)
	if err != nil {
		return err
	}

	statuses := cat.Get(args[0])
	if len(statuses) == 0 {
		return fmt.Errorf("orbit: no catalog entry named %q", args[0])
	}
	status := statuses[0]
	if status.Dir == "" {
		fmt.Printf("%s (available, not yet fetched)\n", status.Spec)
		return nil
	}
	m, err := ip.LoadManifest(filepath.Join(status.Dir, ip.ManifestFileName))
	if err != nil {
		return err
	}
	fmt.Printf("[ip]\nname = %q\nversion = %q\nsummary = %q\n", m.Ip.Name, m.Ip.Version, m.Ip.Summary)
	for name, ver := range m.Dependencies {
		fmt.Printf("%s = %q\n", name, ver)
	}
	return nil
}
