package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
	"github.com/hdlorbit/orbit/internal/ip"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "print the resolved IP dependency tree",
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	root, rootDir, err := currentManifest()
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

	g, err := cat.Resolve(*root, rootDir)
	if err != nil {
		return err
	}
	rootSpec := root.Spec()
	printTreeNode(g, rootSpec, 0, map[ip.Spec]bool{})
	return nil
}

func printTreeNode(g *ip.Graph, spec ip.Spec, depth int, visited map[ip.Spec]bool) {
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	fmt.Println(spec.String())
	if visited[spec] {
		return
	}
	visited[spec] = true

	idx, ok := g.IndexOf(spec)
	if !ok {
		return
	}
	// Edges run dependency -> dependent (see internal/ip.Graph's doc
	// comment), so a node's own dependencies are its predecessors.
	for _, p := range g.Predecessors(idx) {
		printTreeNode(g, g.KeyByIndex(p), depth+1, visited)
	}
}
