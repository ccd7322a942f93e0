// Package graph implements a small generic directed graph with insertion-
// ordered nodes and deterministic topological sorting, parameterized once
// for the IP dependency graph and once for the HDL design-unit graph (see
// internal/vhdl/graph's HDLGraph and internal/ip's Graph).
package graph

import "fmt"

// ErrCycle is returned by TopologicalSort when the graph contains a cycle
// and therefore has no valid ordering. MinimalTopologicalSort returns no
// error.
type ErrCycle struct {
	Remaining int // number of nodes that could not be ordered
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("graph contains a cycle: %d node(s) could not be ordered", e.Remaining)
}

// DirectedGraph is an adjacency-list directed graph keyed by K, carrying a
// payload N per node. Nodes and edges are insertion-ordered: iteration and
// topological sort both break ties by the order nodes were first added,
// matching the "deterministic tie-break on insertion order" recommendation
// for the topological sort.
type DirectedGraph[K comparable, N any] struct {
	index map[K]int
	keys  []K
	nodes []N
	succ  []map[int]struct{} // adjacency sets, for O(1) dedup
	pred  []map[int]struct{}
	succOrder [][]int // successor indices in edge-insertion order
	predOrder [][]int
}

// New creates an empty graph.
func New[K comparable, N any]() *DirectedGraph[K, N] {
	return &DirectedGraph[K, N]{index: make(map[K]int)}
}

// Len reports the number of nodes in the graph.
func (g *DirectedGraph[K, N]) Len() int { return len(g.nodes) }

// AddNode inserts a node under key if absent, returning its index. Calling
// AddNode again with the same key is idempotent: the existing node's
// payload is left untouched and its index is returned unchanged.
func (g *DirectedGraph[K, N]) AddNode(key K, node N) int {
	if i, ok := g.index[key]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[key] = i
	g.keys = append(g.keys, key)
	g.nodes = append(g.nodes, node)
	g.succ = append(g.succ, make(map[int]struct{}))
	g.pred = append(g.pred, make(map[int]struct{}))
	g.succOrder = append(g.succOrder, nil)
	g.predOrder = append(g.predOrder, nil)
	return i
}

// IndexOf returns the index of the node stored under key.
func (g *DirectedGraph[K, N]) IndexOf(key K) (int, bool) {
	i, ok := g.index[key]
	return i, ok
}

// NodeByKey returns the node stored under key.
func (g *DirectedGraph[K, N]) NodeByKey(key K) (N, bool) {
	i, ok := g.index[key]
	if !ok {
		var zero N
		return zero, false
	}
	return g.nodes[i], true
}

// NodeByIndex returns the node at index i.
func (g *DirectedGraph[K, N]) NodeByIndex(i int) N { return g.nodes[i] }

// SetNodeByIndex replaces the node payload at index i, used when a node's
// payload is mutated in place (e.g. appending an associated file).
func (g *DirectedGraph[K, N]) SetNodeByIndex(i int, node N) { g.nodes[i] = node }

// KeyByIndex returns the key of the node at index i.
func (g *DirectedGraph[K, N]) KeyByIndex(i int) K { return g.keys[i] }

// Keys returns every node key in insertion order.
func (g *DirectedGraph[K, N]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// AddEdgeByKey adds an edge from -> to. It is a silent no-op (returns false)
// if either endpoint is absent, matching the "dependencies whose target
// cannot be resolved are dropped, not errored" invariant. Re-adding the same
// edge is idempotent.
func (g *DirectedGraph[K, N]) AddEdgeByKey(from, to K) bool {
	fi, ok := g.index[from]
	if !ok {
		return false
	}
	ti, ok := g.index[to]
	if !ok {
		return false
	}
	g.AddEdgeByIndex(fi, ti)
	return true
}

// AddEdgeByIndex adds an edge between two known node indices. Idempotent.
func (g *DirectedGraph[K, N]) AddEdgeByIndex(from, to int) {
	if _, ok := g.succ[from][to]; ok {
		return
	}
	g.succ[from][to] = struct{}{}
	g.pred[to][from] = struct{}{}
	g.succOrder[from] = append(g.succOrder[from], to)
	g.predOrder[to] = append(g.predOrder[to], from)
}

// Successors returns the indices of nodes this node has an edge to, in
// edge-insertion order.
func (g *DirectedGraph[K, N]) Successors(i int) []int {
	out := make([]int, len(g.succOrder[i]))
	copy(out, g.succOrder[i])
	return out
}

// Predecessors returns the indices of nodes that have an edge to this node,
// in edge-insertion order.
func (g *DirectedGraph[K, N]) Predecessors(i int) []int {
	out := make([]int, len(g.predOrder[i]))
	copy(out, g.predOrder[i])
	return out
}

// TopologicalSort orders every node via Kahn's algorithm, breaking ties by
// insertion order: at each step the lowest-index node with zero remaining
// in-degree is emitted next.
func (g *DirectedGraph[K, N]) TopologicalSort() ([]int, error) {
	return g.topologicalSort(nil)
}

// MinimalTopologicalSort orders only root and its transitive ancestors (the
// nodes root transitively depends on, found by walking predecessor edges),
// which is the minimal file set needed to build root.
func (g *DirectedGraph[K, N]) MinimalTopologicalSort(root int) []int {
	include := g.ancestorsInclusive(root)
	order, err := g.topologicalSort(include)
	if err != nil {
		// A cycle within the minimal subset yields the nodes ordered before
		// the cycle was reached, rather than failing the whole plan; the
		// nodes on or behind the cycle are left out.
		return order
	}
	return order
}

// ancestorsInclusive returns the set of node indices reachable by walking
// predecessor edges backward from root, including root itself.
func (g *DirectedGraph[K, N]) ancestorsInclusive(root int) map[int]struct{} {
	seen := map[int]struct{}{root: {}}
	queue := []int{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, p := range g.predOrder[n] {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				queue = append(queue, p)
			}
		}
	}
	return seen
}

// topologicalSort performs Kahn's algorithm. If include is non-nil, only
// nodes present in include (and edges between them) participate.
func (g *DirectedGraph[K, N]) topologicalSort(include map[int]struct{}) ([]int, error) {
	n := len(g.nodes)
	indegree := make([]int, n)
	active := make([]bool, n)
	total := 0
	for i := 0; i < n; i++ {
		if include != nil {
			if _, ok := include[i]; !ok {
				continue
			}
		}
		active[i] = true
		total++
	}
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		for _, p := range g.predOrder[i] {
			if active[p] {
				indegree[i]++
			}
		}
	}

	var order []int
	done := make([]bool, n)
	for len(order) < total {
		picked := -1
		for i := 0; i < n; i++ {
			if active[i] && !done[i] && indegree[i] == 0 {
				picked = i
				break
			}
		}
		if picked == -1 {
			return order, &ErrCycle{Remaining: total - len(order)}
		}
		done[picked] = true
		order = append(order, picked)
		for _, s := range g.succOrder[picked] {
			if active[s] && !done[s] {
				indegree[s]--
			}
		}
	}
	return order, nil
}

// Roots returns the indices of every node with zero out-degree, restricted
// to nodes for which keep returns true. Edges run dependency -> dependent
// (see HDLGraph's pass 4: "add an edge ref -> node_key"), so a node nothing
// else depends on — the top of the usage tree — has no outgoing edges. This
// is what finds the working-library subgraph's natural top/testbench root.
func (g *DirectedGraph[K, N]) Roots(keep func(i int) bool) []int {
	var roots []int
	for i := range g.nodes {
		if keep != nil && !keep(i) {
			continue
		}
		outdeg := 0
		for _, s := range g.succOrder[i] {
			if keep == nil || keep(s) {
				outdeg++
			}
		}
		if outdeg == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}
