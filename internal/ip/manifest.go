// Package ip models one IP (a VHDL project or dependency): its manifest,
// the design-unit graph's external file-node input, and the dependency
// graph that internal/catalog resolves a root manifest into. It supplies
// §4.3's "external collaborator" IpFileNode and the first stage of the data
// flow in SPEC_FULL.md §2 (catalog.Resolve -> ip.Graph -> HDL graph).
package ip

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is the parsed form of an IP's Orbit.toml, per SPEC_FULL.md §3.1.
type Manifest struct {
	Ip struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Summary string `toml:"summary"`
	} `toml:"ip"`
	Dependencies map[string]string `toml:"dependencies"`
}

// ManifestFileName is the manifest's fixed name inside an IP's root
// directory.
const ManifestFileName = "Orbit.toml"

// Spec identifies one IP by name and resolved version; it is the IP graph's
// node key (comparable directly — unlike symbol.CompoundIdentifier, neither
// field is a pointer, so Go's built-in equality already matches the
// equality this graph needs).
type Spec struct {
	Name    string
	Version string
}

func (s Spec) String() string {
	if s.Version == "" {
		return s.Name
	}
	return fmt.Sprintf("%s:%s", s.Name, s.Version)
}

// Spec returns the manifest's own identity in the dependency graph.
func (m Manifest) Spec() Spec {
	return Spec{Name: m.Ip.Name, Version: m.Ip.Version}
}

// LoadManifest reads and parses path as an Orbit.toml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ip: read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ip: parse manifest %s: %w", path, err)
	}
	if m.Ip.Name == "" {
		return nil, fmt.Errorf("ip: manifest %s is missing ip.name", path)
	}
	return &m, nil
}

// WriteManifest serializes m as TOML to path, used by `orbit init` when
// scaffolding a fresh IP.
func WriteManifest(path string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("ip: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ip: write manifest %s: %w", path, err)
	}
	return nil
}
