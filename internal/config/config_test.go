package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmptyNotError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	require.Empty(t, cfg.Core.BuildDir)
}

func TestLoadMergesIncludesLastWins(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "config.toml")
	overridePath := filepath.Join(dir, "override.toml")

	require.NoError(t, os.WriteFile(basePath, []byte("include = [\"override.toml\"]\n\n[core]\nbuild-dir = \"build\"\neditor = \"vim\"\n"), 0o644))
	require.NoError(t, os.WriteFile(overridePath, []byte("[core]\nbuild-dir = \"out\"\n"), 0o644))

	cfg, err := Load(basePath)
	require.NoError(t, err)
	require.Equal(t, "out", cfg.Core.BuildDir, "the included file's build-dir should win")
	require.Equal(t, "vim", cfg.Core.Editor, "the base file's editor should survive")
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Config{Core: Core{BuildDir: "build", Editor: "vim"}}
	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "build", got.Core.BuildDir)
	require.Equal(t, "vim", got.Core.Editor)
}
