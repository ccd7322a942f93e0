package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/ip"
)

var (
	initName    string
	initVersion string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "scaffold a new IP directory with Orbit.toml",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initName, "name", "", "IP name (defaults to the current directory's name)")
	initCmd.Flags().StringVar(&initVersion, "version", "0.1.0", "initial version")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("orbit: %w", err)
	}
	name := initName
	if name == "" {
		name = filepath.Base(dir)
	}

	m := &ip.Manifest{}
	m.Ip.Name = name
	m.Ip.Version = initVersion
	m.Ip.Summary = ""

	path := filepath.Join(dir, ip.ManifestFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("orbit: %s already exists", path)
	}
	if err := ip.WriteManifest(path, m); err != nil {
		return err
	}
	log.WithField("ip", name).Info("initialized")
	return nil
}
