// Package plugin is the alias -> command + filesets registry `orbit plan
// --plugin` and `orbit plan --list` consult, so a downstream build driver
// can be invoked by a short name instead of a full command line.
package plugin

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/hdlorbit/orbit/internal/fileset"
)

// Plugin is one entry in the registry: a downstream build-driver command
// plus the filesets it expects the blueprint to carry.
type Plugin struct {
	Alias       string            `toml:"alias"`
	Command     string            `toml:"command"`
	Args        []string          `toml:"args"`
	Description string            `toml:"description"`
	Filesets    map[string]string `toml:"filesets"` // name -> glob pattern
}

// Registry holds every configured plugin, looked up by alias.
type Registry struct {
	plugins map[string]Plugin
}

// document is the parsed form of a plugins config file: a TOML array of
// [[plugin]] tables.
type document struct {
	Plugin []Plugin `toml:"plugin"`
}

// Load parses a plugins.toml-style file into a Registry.
func Load(data []byte) (*Registry, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("plugin: parse: %w", err)
	}
	reg := &Registry{plugins: make(map[string]Plugin, len(doc.Plugin))}
	for _, p := range doc.Plugin {
		reg.plugins[p.Alias] = p
	}
	return reg, nil
}

// Get looks up a plugin by alias.
func (r *Registry) Get(alias string) (Plugin, bool) {
	p, ok := r.plugins[alias]
	return p, ok
}

// List returns every registered plugin, sorted by alias, for `orbit plan
// --list`.
func (r *Registry) List() []Plugin {
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}

// Filesets converts a plugin's glob map into the ordered fileset.Fileset
// list the blueprint emitter iterates, sorted by name for deterministic
// output order.
func (p Plugin) Filesets() []fileset.Fileset {
	out := make([]fileset.Fileset, 0, len(p.Filesets))
	for name, pattern := range p.Filesets {
		out = append(out, fileset.Fileset{Name: name, Pattern: pattern})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
