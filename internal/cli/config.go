package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <key> [value]",
	Short: "get or set a global configuration key",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	globalDir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	path := filepath.Join(globalDir, config.FileName)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	key := args[0]
	if len(args) == 1 {
		fmt.Println(getConfigKey(cfg, key))
		return nil
	}

	if err := setConfigKey(&cfg, key, args[1]); err != nil {
		return err
	}
	return config.Write(path, cfg)
}

func getConfigKey(cfg config.Config, key string) string {
	switch key {
	case "core.build-dir":
		return cfg.Core.BuildDir
	case "core.editor":
		return cfg.Core.Editor
	case "env.vendors":
		return cfg.Env.Vendors
	case "env.path-development":
		return cfg.Env.PathDevelopment
	default:
		return ""
	}
}

func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "core.build-dir":
		cfg.Core.BuildDir = value
	case "core.editor":
		cfg.Core.Editor = value
	case "env.vendors":
		cfg.Env.Vendors = value
	case "env.path-development":
		cfg.Env.PathDevelopment = value
	default:
		return fmt.Errorf("orbit: unknown config key %q", key)
	}
	return nil
}
