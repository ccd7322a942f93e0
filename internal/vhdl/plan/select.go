// Package plan implements top/testbench selection and blueprint emission
// over an already-built HDL graph.
package plan

import (
	"fmt"

	"github.com/hdlorbit/orbit/internal/vhdl/graph"
	"github.com/hdlorbit/orbit/internal/vhdl/symbol"
	"github.com/hdlorbit/orbit/internal/vhdl/token"
)

// WorkingLibrary is the literal library identifier under which the
// project's own sources are declared.
const WorkingLibrary = "work"

// ErrorKind enumerates the selector's typed error conditions.
type ErrorKind int

const (
	ErrUnknownEntity ErrorKind = iota
	ErrBadEntity
	ErrBadTop
	ErrBadTestbench
	ErrTestbenchNoTest
	ErrAmbiguous
	ErrTopNotInBench
)

// Error is the selector's error type; Name/Candidates are populated
// according to Kind.
type Error struct {
	Kind       ErrorKind
	Name       string
	What       string   // ErrAmbiguous: "roots", "testbenches", or "entities instantiated in the testbench"; ErrTopNotInBench: the bench name
	Candidates []string // set for ErrAmbiguous
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownEntity:
		return fmt.Sprintf("no entity named '%s' in the current ip", e.Name)
	case ErrBadEntity:
		return fmt.Sprintf("primary design unit '%s' is not an entity", e.Name)
	case ErrBadTop:
		return fmt.Sprintf("entity '%s' is a testbench and cannot be top; use --bench", e.Name)
	case ErrBadTestbench:
		return fmt.Sprintf("entity '%s' is not a testbench and cannot be bench; use --top", e.Name)
	case ErrTestbenchNoTest:
		return fmt.Sprintf("no entities are tested in testbench %s", e.Name)
	case ErrAmbiguous:
		return fmt.Sprintf("multiple %s were found: %v", e.What, e.Candidates)
	case ErrTopNotInBench:
		return fmt.Sprintf("top unit '%s' is not tested in testbench '%s'\n\nIf you wish to continue, add the --all flag", e.Name, e.What)
	}
	return "unknown selection error"
}

// Options configures a Select call: the user's explicit --top/--bench
// choices (empty string for unset), and whether --all was passed.
type Options struct {
	Top   string
	Bench string
	All   bool
}

// Selection is the result of a successful (or --all-tolerated) Select call.
// Top/Bench are -1 when unset.
type Selection struct {
	Top   int
	Bench int
}

const unset = -1

// Select implements §4.4's Step A (detect bench) and Step B (detect top)
// exactly, plus the --all ambiguity override and the top-in-bench
// cross-check. It is a pure function: no I/O, only graph traversal.
func Select(g *graph.HDLGraph, opts Options) (Selection, error) {
	top, bench, err := detectBench(g, opts)
	if err != nil {
		var selErr *Error
		if opts.All && errorsAsAmbiguous(err, &selErr) {
			top, bench = unset, unset
		} else {
			return Selection{}, err
		}
	}

	top, bench, err = detectTop(g, opts, top, bench)
	if err != nil {
		var selErr *Error
		if opts.All && errorsAsAmbiguous(err, &selErr) {
			// top/bench retain whatever detectTop had resolved before the
			// ambiguity; detectTop returns the partial result alongside
			// the error so nothing is lost here.
		} else {
			return Selection{}, err
		}
	}

	if !opts.All && top != unset && bench != unset {
		if !isSuccessorOf(g, top, bench) {
			return Selection{}, &Error{
				Kind: ErrTopNotInBench,
				Name: nameOf(g, top),
				What: nameOf(g, bench),
			}
		}
	}

	return Selection{Top: top, Bench: bench}, nil
}

func errorsAsAmbiguous(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrAmbiguous {
		return false
	}
	*target = e
	return true
}

func nameOf(g *graph.HDLGraph, idx int) string {
	if idx == unset {
		return ""
	}
	return nameIdentOf(g, idx).Text
}

func nameIdentOf(g *graph.HDLGraph, idx int) token.Identifier {
	return g.NodeByIndex(idx).Name
}

func isSuccessorOf(g *graph.HDLGraph, top, bench int) bool {
	for _, s := range g.Successors(top) {
		if s == bench {
			return true
		}
	}
	return false
}

func isEntity(n *graph.HDLNode) bool { return n.Kind == symbol.KindEntity }

// detectBench implements Step A.
func detectBench(g *graph.HDLGraph, opts Options) (top, bench int, err error) {
	top, bench = unset, unset

	if opts.Bench != "" {
		idx, ok := resolveWorkingEntity(g, opts.Bench)
		if !ok {
			return unset, unset, &Error{Kind: ErrUnknownEntity, Name: opts.Bench}
		}
		node := g.NodeByIndex(idx)
		if !isEntity(node) {
			return unset, unset, &Error{Kind: ErrBadEntity, Name: opts.Bench}
		}
		if !node.IsTestbench {
			return unset, unset, &Error{Kind: ErrBadTestbench, Name: opts.Bench}
		}
		return unset, idx, nil
	}

	if opts.Top != "" {
		// Still could possibly be found via top-level detection in Step B.
		return unset, unset, nil
	}

	roots := g.Roots(func(i int) bool { return isInWorkingLibrary(g, i) })
	switch len(roots) {
	case 0:
		return unset, unset, nil
	case 1:
		n := g.NodeByIndex(roots[0])
		if !isEntity(n) {
			return unset, unset, nil
		}
		if n.IsTestbench {
			return unset, roots[0], nil
		}
		return roots[0], unset, nil
	default:
		names := make([]string, len(roots))
		for i, r := range roots {
			names[i] = nameOf(g, r)
		}
		return unset, unset, &Error{Kind: ErrAmbiguous, What: "roots", Candidates: names}
	}
}

// detectTop implements Step B. naturalTop/bench are the results threaded
// from detectBench (after any --all override already applied by Select).
func detectTop(g *graph.HDLGraph, opts Options, naturalTop, bench int) (top, benchOut int, err error) {
	if opts.Top != "" {
		idx, ok := resolveWorkingEntity(g, opts.Top)
		if !ok {
			return unset, bench, &Error{Kind: ErrUnknownEntity, Name: opts.Top}
		}
		node := g.NodeByIndex(idx)
		if !isEntity(node) {
			return unset, bench, &Error{Kind: ErrBadEntity, Name: opts.Top}
		}
		if node.IsTestbench {
			return unset, bench, &Error{Kind: ErrBadTop, Name: opts.Top}
		}
		top = idx

		if bench == unset {
			var benches []int
			for _, s := range g.Successors(idx) {
				if n := g.NodeByIndex(s); isEntity(n) && n.IsTestbench {
					benches = append(benches, s)
				}
			}
			switch len(benches) {
			case 0:
				bench = unset
			case 1:
				bench = benches[0]
			default:
				names := make([]string, len(benches))
				for i, b := range benches {
					names[i] = nameOf(g, b)
				}
				return top, bench, &Error{Kind: ErrAmbiguous, What: "testbenches", Candidates: names}
			}
		}
		return top, bench, nil
	}

	if naturalTop != unset {
		return naturalTop, bench, nil
	}

	if bench == unset {
		return unset, unset, nil
	}

	var entities []int
	for _, p := range g.Predecessors(bench) {
		if isEntity(g.NodeByIndex(p)) {
			entities = append(entities, p)
		}
	}
	switch len(entities) {
	case 0:
		return unset, bench, &Error{Kind: ErrTestbenchNoTest, Name: nameOf(g, bench)}
	case 1:
		return entities[0], bench, nil
	default:
		names := make([]string, len(entities))
		for i, e := range entities {
			names[i] = nameOf(g, e)
		}
		return unset, bench, &Error{Kind: ErrAmbiguous, What: "entities instantiated in the testbench", Candidates: names}
	}
}

func resolveWorkingEntity(g *graph.HDLGraph, name string) (int, bool) {
	lib := token.Identifier{Text: WorkingLibrary, Kind: token.Basic}
	unit := token.Identifier{Text: name, Kind: token.Basic}
	return g.IndexOf(graph.HDLKey(lib, unit))
}

func isInWorkingLibrary(g *graph.HDLGraph, idx int) bool {
	return g.NodeByIndex(idx).Library.Equal(token.Identifier{Text: WorkingLibrary, Kind: token.Basic})
}
