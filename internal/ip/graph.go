package ip

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hdlorbit/orbit/internal/fileset"
	"github.com/hdlorbit/orbit/internal/vhdl/graph"
	"github.com/hdlorbit/orbit/internal/vhdl/token"
)

// WorkingLibrary names the root IP's own library, matching
// internal/vhdl/plan.WorkingLibrary.
const WorkingLibrary = "work"

// FileNode satisfies internal/vhdl/graph.FileNode: one VHDL source file
// belonging to an installed IP, tagged with the logical library its design
// units are declared under (the root IP's files are "work"; a dependency's
// files are declared under its own IP name, mirroring how a real VHDL
// toolchain maps one compiled library per dependency).
type FileNode struct {
	path    string
	library token.Identifier
}

func (f FileNode) Path() string              { return f.path }
func (f FileNode) Library() token.Identifier { return f.library }

// Node is one resolved IP in the dependency graph: its manifest, the
// on-disk directory its sources were installed/checked out to, and a
// checksum recorded for lock-file comparison.
type Node struct {
	Manifest Manifest
	Dir      string
	Checksum string
	Source   string // vcs fetch URL, empty for the root IP
}

// Graph is the IP dependency graph: nodes keyed by Spec, edges pointing
// dependency -> dependent (the same convention internal/vhdl/graph's HDL
// graph uses), built once per plan invocation by internal/catalog.Resolve.
type Graph = graph.DirectedGraph[Spec, *Node]

// NewGraph creates an empty IP graph.
func NewGraph() *Graph { return graph.New[Spec, *Node]() }

// BuildFileList walks every node in g (insertion order) and collects its
// VHDL source files into IpFileNodes, the external-collaborator input
// internal/vhdl/graph.BuildGraph consumes. The root IP (identified by
// rootSpec) is tagged under the literal working library; every other node
// is tagged under its own IP name, used as-is (it is not rewritten into a
// valid VHDL basic identifier).
func BuildFileList(g *Graph, rootSpec Spec) ([]graph.SourceFile, error) {
	var files []graph.SourceFile
	for _, key := range g.Keys() {
		node, _ := g.NodeByKey(key)
		lib := token.Identifier{Text: libraryNameFor(key, rootSpec), Kind: token.Basic}

		var paths []string
		err := filepath.Walk(node.Dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !fileset.IsVHDLSource(path) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("ip: walk %s: %w", node.Dir, err)
		}

		for _, path := range paths {
			contents, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("ip: read %s: %w", path, err)
			}
			files = append(files, graph.SourceFile{
				Node:     FileNode{path: path, library: lib},
				Contents: string(contents),
			})
		}
	}
	return files, nil
}

func libraryNameFor(spec, root Spec) string {
	if spec == root {
		return WorkingLibrary
	}
	return spec.Name
}
