package plan

import (
	"sort"
	"testing"

	"github.com/hdlorbit/orbit/internal/vhdl/graph"
	"github.com/hdlorbit/orbit/internal/vhdl/token"
)

type planFile struct{ path string }

func (f planFile) Path() string              { return f.path }
func (f planFile) Library() token.Identifier { return token.Identifier{Text: WorkingLibrary, Kind: token.Basic} }

// buildGraph tokenizes each source under the working library, in
// filename-sorted order so the resulting node/edge insertion order (and
// hence any reported ambiguous-candidate order) is deterministic across runs.
func buildGraph(t *testing.T, sources map[string]string) *graph.HDLGraph {
	t.Helper()
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make([]graph.SourceFile, 0, len(sources))
	for _, path := range paths {
		files = append(files, graph.SourceFile{Node: planFile{path: path}, Contents: sources[path]})
	}
	g, err := graph.BuildGraph(files)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return g
}

func TestSelectNaturalTopIsNonTestbenchUniqueRoot(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"nor_gate.vhd": `
entity nor_gate is
	port ( a, b : in bit; y : out bit );
end entity nor_gate;
architecture rtl of nor_gate is
begin
	y <= a nor b;
end architecture rtl;
`,
	})
	sel, err := Select(g, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Bench != unset {
		t.Fatalf("expected no bench, got index %d", sel.Bench)
	}
	if sel.Top == unset {
		t.Fatal("expected a natural top to be selected")
	}
}

func TestSelectUnitAndTestbench(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"dut.vhd": `
entity fa is
	port ( a, b, cin : in bit; s, cout : out bit );
end entity fa;
`,
		"fa_tb.vhd": `
entity fa_tb is
end entity fa_tb;
architecture sim of fa_tb is
begin
	dut: entity work.fa port map ( a => '0', b => '0', cin => '0', s => open, cout => open );
end architecture sim;
`,
	})
	sel, err := Select(g, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Top == unset || sel.Bench == unset {
		t.Fatalf("expected both top and bench resolved, got %+v", sel)
	}
	if nameOf(g, sel.Top) != "fa" || nameOf(g, sel.Bench) != "fa_tb" {
		t.Fatalf("expected top=fa bench=fa_tb, got top=%s bench=%s", nameOf(g, sel.Top), nameOf(g, sel.Bench))
	}
}

func TestSelectAmbiguousRootsWithoutAll(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"a.vhd": `
entity a is
	port ( x : in bit );
end entity a;
`,
		"b.vhd": `
entity b is
	port ( x : in bit );
end entity b;
`,
	})
	_, err := Select(g, Options{})
	if err == nil {
		t.Fatal("expected an ambiguous-roots error")
	}
	selErr, ok := err.(*Error)
	if !ok || selErr.Kind != ErrAmbiguous || selErr.What != "roots" {
		t.Fatalf("expected ErrAmbiguous(roots), got %v", err)
	}
}

func TestSelectAmbiguousRootsWithAllSwallowsError(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"a.vhd": `
entity a is
	port ( x : in bit );
end entity a;
`,
		"b.vhd": `
entity b is
	port ( x : in bit );
end entity b;
`,
	})
	sel, err := Select(g, Options{All: true})
	if err != nil {
		t.Fatalf("expected --all to swallow ambiguity, got %v", err)
	}
	if sel.Top != unset || sel.Bench != unset {
		t.Fatalf("expected both top and bench left unset, got %+v", sel)
	}
}

func TestSelectUnknownBenchIsAnError(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"a.vhd": `
entity a is
end entity a;
`,
	})
	_, err := Select(g, Options{Bench: "does_not_exist"})
	selErr, ok := err.(*Error)
	if !ok || selErr.Kind != ErrUnknownEntity {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestSelectBadTestbenchWhenUserNamesNonTestbenchAsBench(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"a.vhd": `
entity a is
	port ( x : in bit );
end entity a;
`,
	})
	_, err := Select(g, Options{Bench: "a"})
	selErr, ok := err.(*Error)
	if !ok || selErr.Kind != ErrBadTestbench {
		t.Fatalf("expected ErrBadTestbench, got %v", err)
	}
}

func TestSelectBadTopWhenUserNamesTestbenchAsTop(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"a.vhd": `
entity a is
end entity a;
`,
	})
	_, err := Select(g, Options{Top: "a"})
	selErr, ok := err.(*Error)
	if !ok || selErr.Kind != ErrBadTop {
		t.Fatalf("expected ErrBadTop, got %v", err)
	}
}

func TestSelectCrossCheckTopMustBePredecessorOfBench(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"unrelated.vhd": `
entity unrelated is
	port ( x : in bit );
end entity unrelated;
`,
		"tb.vhd": `
entity tb is
end entity tb;
`,
	})
	_, err := Select(g, Options{Top: "unrelated", Bench: "tb"})
	selErr, ok := err.(*Error)
	if !ok || selErr.Kind != ErrTopNotInBench {
		t.Fatalf("expected ErrTopNotInBench, got %v", err)
	}
}

// Law 8: valid non-testbench top with --all=false and a bench found implies
// bench is a successor of top.
func TestSelectLawTopPrecedesBench(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"dut.vhd": `
entity fa is
	port ( a : in bit );
end entity fa;
`,
		"fa_tb.vhd": `
entity fa_tb is
end entity fa_tb;
architecture sim of fa_tb is
begin
	dut: entity work.fa port map ( a => '0' );
end architecture sim;
`,
	})
	sel, err := Select(g, Options{Top: "fa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isSuccessorOf(g, sel.Top, sel.Bench) {
		t.Fatal("expected bench to be a successor of top")
	}
}
