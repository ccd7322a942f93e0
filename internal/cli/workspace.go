package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hdlorbit/orbit/internal/config"
	"github.com/hdlorbit/orbit/internal/ip"
)

// currentManifest loads Orbit.toml from the current directory.
func currentManifest() (*ip.Manifest, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("orbit: %w", err)
	}
	m, err := ip.LoadManifest(filepath.Join(dir, ip.ManifestFileName))
	if err != nil {
		return nil, "", err
	}
	return m, dir, nil
}

// loadConfig reads the global config, merging a per-IP override if one
// exists alongside the current Orbit.toml.
func loadConfig(ipDir string) (config.Config, error) {
	globalDir, err := config.GlobalDir()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(filepath.Join(globalDir, config.FileName))
	if err != nil {
		return config.Config{}, err
	}
	if ipDir != "" {
		localCfg, err := config.Load(filepath.Join(ipDir, config.FileName))
		if err != nil {
			return config.Config{}, err
		}
		if localCfg.Core.BuildDir != "" {
			cfg.Core.BuildDir = localCfg.Core.BuildDir
		}
		if localCfg.Core.Editor != "" {
			cfg.Core.Editor = localCfg.Core.Editor
		}
		if localCfg.Env.Vendors != "" {
			cfg.Env.Vendors = localCfg.Env.Vendors
		}
		if localCfg.Env.PathDevelopment != "" {
			cfg.Env.PathDevelopment = localCfg.Env.PathDevelopment
		}
	}
	return cfg, nil
}

// resolveBuildDir applies the --build-dir override over config, defaulting
// to "build" when neither is set.
func resolveBuildDir(override string, cfg config.Config) string {
	if override != "" {
		return override
	}
	if cfg.Core.BuildDir != "" {
		return cfg.Core.BuildDir
	}
	return "build"
}
