// Package config loads orbit's global and per-IP TOML settings, following
// the same single-struct load/save pattern internal/ui/newui/config.go
// uses for JSON app settings, adapted here to TOML build-tool settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file's fixed name, both at the global level
// (~/.orbit/config.toml) and per-IP (Orbit.toml's sibling, if present).
const FileName = "config.toml"

// Core holds build-tool-wide settings.
type Core struct {
	BuildDir string `toml:"build-dir"`
	Editor   string `toml:"editor"`
}

// Env names the paths orbit's catalog scans to resolve dependencies.
type Env struct {
	Vendors         string `toml:"vendors"`
	PathDevelopment string `toml:"path-development"`
}

// Config is the parsed form of config.toml. Include names additional
// config files to merge in, last-wins, so a per-IP config can layer
// local overrides on top of the global one.
type Config struct {
	Core    Core     `toml:"core"`
	Env     Env      `toml:"env"`
	Include []string `toml:"include"`
}

// GlobalDir returns ~/.orbit, creating it if absent.
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".orbit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", dir, err)
	}
	return dir, nil
}

// Load reads path and merges in every file named by Include, last-wins. A
// missing path yields a zero Config rather than an error, matching a
// first-run orbit with no config file written yet.
func Load(path string) (Config, error) {
	var cfg Config
	if err := mergeFrom(path, &cfg, map[string]bool{}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFrom(path string, cfg *Config, seen map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if seen[abs] {
		return nil // already merged; avoid an include cycle
	}
	seen[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var layer Config
	if err := toml.Unmarshal(data, &layer); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	merge(cfg, layer)

	dir := filepath.Dir(path)
	for _, inc := range layer.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		if err := mergeFrom(incPath, cfg, seen); err != nil {
			return err
		}
	}
	return nil
}

// merge overlays non-empty fields of layer onto cfg; a later layer's
// non-empty field wins, matching the "last-wins" include semantics.
func merge(cfg *Config, layer Config) {
	if layer.Core.BuildDir != "" {
		cfg.Core.BuildDir = layer.Core.BuildDir
	}
	if layer.Core.Editor != "" {
		cfg.Core.Editor = layer.Core.Editor
	}
	if layer.Env.Vendors != "" {
		cfg.Env.Vendors = layer.Env.Vendors
	}
	if layer.Env.PathDevelopment != "" {
		cfg.Env.PathDevelopment = layer.Env.PathDevelopment
	}
}

// Write serializes cfg as TOML to path.
func Write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
