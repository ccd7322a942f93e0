package graph

import (
	"github.com/hdlorbit/orbit/internal/vhdl/symbol"
	"github.com/hdlorbit/orbit/internal/vhdl/token"
)

// FileNode is the external collaborator's view of one source file: its path
// and the logical VHDL library its units are declared under. internal/ip
// supplies the concrete implementation; this package only needs the two
// accessors.
type FileNode interface {
	Path() string
	Library() token.Identifier
}

// SourceFile pairs a file node with its already-read contents. Reading is
// the caller's responsibility (internal/ip's file-list builder): BuildGraph
// itself performs no I/O, matching the "Selector as pure function" design
// note applied here to the graph builder as well.
type SourceFile struct {
	Node     FileNode
	Contents string
}

// HDLNode is one primary design unit (entity, package, or context) plus
// every file that contributes to it: its own defining file, and — for
// entities — every architecture/configuration file attached in pass 3.
type HDLNode struct {
	Kind        symbol.Kind
	Name        token.Identifier
	Library     token.Identifier
	IsTestbench bool
	Refs        []symbol.CompoundIdentifier
	Files       []FileNode
}

func (n *HDLNode) addFile(f FileNode) {
	for _, existing := range n.Files {
		if existing.Path() == f.Path() {
			return
		}
	}
	n.Files = append(n.Files, f)
}

// HDLGraph is the directed graph of design units: keys are compound
// identifiers (library, unit name), edges carry no payload, and the node
// payload is an HDLNode.
type HDLGraph = DirectedGraph[string, *HDLNode]

// HDLKey builds the canonical node key for a (library, unit name) pair, the
// same format used internally by BuildGraph's four passes; exported so
// internal/vhdl/plan can resolve a user-supplied --top/--bench name without
// duplicating the key format.
func HDLKey(lib, name token.Identifier) string { return lib.Key() + "|" + name.Key() }

type subNodeEntry struct {
	lib   token.Identifier
	file  FileNode
	unit  symbol.SubUnit
}

type bodyEntry struct {
	lib  token.Identifier
	unit symbol.Unit // Kind == KindPackageBody
}

// BuildGraph runs the tokenizer and symbol extractor over every file and
// assembles the HDL graph via the four-pass algorithm: primary units first
// (recording a component_map from bare entity name to library for resolving
// unqualified instantiations), then package bodies merge into their owning
// package, then architecture/configuration sub-nodes attach to their owning
// entity and contribute edges, then every node's remaining reference list
// becomes reference edges. Every step not explicitly listed in §4.3 as
// fatal (a missing owner, a missing edge target) is dropped silently rather
// than erroring; only a tokenizer error aborts the build.
func BuildGraph(files []SourceFile) (*HDLGraph, error) {
	g := New[string, *HDLNode]()

	var subNodes []subNodeEntry
	var bodies []bodyEntry
	componentMap := make(map[string]token.Identifier) // entity name key -> library

	for _, sf := range files {
		toks, err := token.TokenizeFile(sf.Node.Path(), sf.Contents)
		if err != nil {
			return nil, err
		}
		lib := sf.Node.Library()
		extracted := symbol.Extract(toks)

		for _, u := range extracted.Units {
			if u.Kind == symbol.KindEntity {
				componentMap[u.Name.Key()] = lib
			}
			key := HDLKey(lib, u.Name)
			idx := g.AddNode(key, &HDLNode{
				Kind:        u.Kind,
				Name:        u.Name,
				Library:     lib,
				IsTestbench: u.IsTestbench,
				Refs:        append([]symbol.CompoundIdentifier{}, u.Refs...),
			})
			g.NodeByIndex(idx).addFile(sf.Node)
		}
		for _, sub := range extracted.SubUnits {
			subNodes = append(subNodes, subNodeEntry{lib: lib, file: sf.Node, unit: sub})
		}
		for _, pb := range extracted.PackageBody {
			bodies = append(bodies, bodyEntry{lib: lib, unit: pb})
		}
	}

	// Pass 2: package bodies merge their refs into the owning package.
	for _, b := range bodies {
		ownerKey := HDLKey(b.lib, b.unit.Owner)
		node, ok := g.NodeByKey(ownerKey)
		if !ok {
			continue
		}
		node.Refs = append(node.Refs, b.unit.Refs...)
	}

	// Pass 3: sub-nodes attach to their owner entity and contribute edges.
	for _, s := range subNodes {
		ownerKey := HDLKey(s.lib, s.unit.Owner)
		idx, ok := g.IndexOf(ownerKey)
		if !ok {
			continue
		}
		g.NodeByIndex(idx).addFile(s.file)

		for _, dep := range s.unit.Refs {
			if depKey, ok := resolveRef(dep, componentMap); ok {
				g.AddEdgeByKey(depKey, ownerKey)
			}
		}
	}

	// Pass 4: every node's own reference list becomes reference edges.
	for _, key := range g.Keys() {
		node, _ := g.NodeByKey(key)
		for _, dep := range node.Refs {
			if depKey, ok := resolveRef(dep, componentMap); ok {
				g.AddEdgeByKey(depKey, key)
			}
		}
	}

	return g, nil
}

// resolveRef turns a reference's compound identifier into a graph key: a
// qualified reference (has a prefix) resolves directly, an unqualified one
// resolves through componentMap (the bare-entity-name -> library map built
// in pass 1), dropped if neither applies.
func resolveRef(dep symbol.CompoundIdentifier, componentMap map[string]token.Identifier) (string, bool) {
	if dep.Prefix != nil {
		return HDLKey(*dep.Prefix, dep.Suffix), true
	}
	lib, ok := componentMap[dep.Suffix.Key()]
	if !ok {
		return "", false
	}
	return HDLKey(lib, dep.Suffix), true
}
