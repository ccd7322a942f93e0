package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
	"github.com/hdlorbit/orbit/internal/ip"
)

var (
	queryVersion bool
	querySummary bool
	queryPath    bool
)

var queryCmd = &cobra.Command{
	Use:   "query <ip>",
	Short: "print fields from an installed IP's manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryVersion, "version", false, "print the resolved version")
	queryCmd.Flags().BoolVar(&querySummary, "summary", false, "print the manifest summary")
	queryCmd.Flags().BoolVar(&queryPath, "path", false, "print the installed directory")
}

func runQuery(cmd *cobra.Command, args []string) error {
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
	status := statuses[0]
	m, err := ip.LoadManifest(filepath.Join(status.Dir, ip.ManifestFileName))
	if err != nil {
		return err
	}

	switch {
	case queryVersion:
		fmt.Println(m.Ip.Version)
	case querySummary:
		fmt.Println(m.Ip.Summary)
	case queryPath:
		fmt.Println(status.Dir)
	default:
		fmt.Printf("%s %s\n%s\n", m.Ip.Name, m.Ip.Version, m.Ip.Summary)
	}
	return nil
}
