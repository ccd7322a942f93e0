// Package symbol turns a token stream for one VHDL source file into primary
// design-unit records (entities, architectures, packages, package bodies,
// configurations, contexts) plus each unit's reference list. It is a
// scannerless recursive matcher, not a full parser: it recognizes exactly
// the clauses that bear on dependency extraction and skips everything else
// by scanning forward to the next design-unit boundary.
package symbol

import (
	"github.com/hdlorbit/orbit/internal/vhdl/token"
)

// CompoundIdentifier names a design unit or reference as an optional
// library/package prefix plus a unit suffix, e.g. "work.nor_gate" or a bare
// "nor_gate". Equality follows basic-identifier case rules (see
// token.Identifier.Equal); Prefix is nil for an unqualified reference.
type CompoundIdentifier struct {
	Prefix *token.Identifier
	Suffix token.Identifier
}

// Equal compares two compound identifiers using basic-identifier case
// folding on both halves.
func (c CompoundIdentifier) Equal(o CompoundIdentifier) bool {
	if (c.Prefix == nil) != (o.Prefix == nil) {
		return false
	}
	if c.Prefix != nil && !c.Prefix.Equal(*o.Prefix) {
		return false
	}
	return c.Suffix.Equal(o.Suffix)
}

// Key returns a canonical string usable as a map/graph-node key that agrees
// with Equal.
func (c CompoundIdentifier) Key() string {
	if c.Prefix == nil {
		return "." + c.Suffix.Key()
	}
	return c.Prefix.Key() + "." + c.Suffix.Key()
}

func (c CompoundIdentifier) String() string {
	if c.Prefix == nil {
		return c.Suffix.Text
	}
	return c.Prefix.Text + "." + c.Suffix.Text
}

// Kind distinguishes the six design-unit forms: four held as Units and the
// two sub-unit forms (architecture, configuration) held aside for later
// attachment.
type Kind int

const (
	KindEntity Kind = iota
	KindArchitecture
	KindPackage
	KindPackageBody
	KindConfiguration
	KindContext
)

// Unit is a primary design unit extracted from one file.
type Unit struct {
	Kind         Kind
	Name         token.Identifier
	Owner        token.Identifier // PackageBody only (architectures and configurations are SubUnits)
	IsTestbench  bool             // Entity only: true iff its port list is empty
	TargetEntity token.Identifier // not set by the extractor; a configuration's target is its SubUnit's Owner
	Refs         []CompoundIdentifier
}

// SubUnit is an architecture or configuration, held aside by the extractor
// for the HDL graph builder to attach to its owner entity.
type SubUnit struct {
	Kind  Kind // KindArchitecture or KindConfiguration
	Name  token.Identifier
	Owner token.Identifier
	Refs  []CompoundIdentifier
}

// File is the result of extracting one source file: its primary units
// (entities, packages, contexts — anything not held aside), its sub-units
// (architectures/configurations), and its package bodies.
type File struct {
	Units       []Unit
	SubUnits    []SubUnit
	PackageBody []Unit // Kind == KindPackageBody
}
