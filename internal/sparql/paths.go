package sparql

import (
	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Interner assigns object ids to terms; the rewriter is parameterized
// over it (backed by store.Dictionary.Intern in the Store façade) so
// this package never depends on internal/store.
type Interner func(term.Term) uint32

// toLogicalPath converts the algebra-layer PathAlgebra into
// logical.PathExpr, interning every predicate IRI along the way.
func toLogicalPath(p PathAlgebra, intern Interner) logical.PathExpr {
	switch pe := p.(type) {
	case PathLink:
		return logical.PathIRI{ID: intern(pe.Predicate)}
	case PathInv:
		return logical.PathInverse{Path: toLogicalPath(pe.Path, intern)}
	case PathSeq:
		return logical.PathSeq{Left: toLogicalPath(pe.Left, intern), Right: toLogicalPath(pe.Right, intern)}
	case PathAlt:
		return logical.PathAlt{Left: toLogicalPath(pe.Left, intern), Right: toLogicalPath(pe.Right, intern)}
	case PathOpt:
		return logical.PathZeroOrOne{Path: toLogicalPath(pe.Path, intern)}
	case PathStar:
		return logical.PathZeroOrMore{Path: toLogicalPath(pe.Path, intern)}
	case PathPlus:
		return logical.PathOneOrMore{Path: toLogicalPath(pe.Path, intern)}
	case PathNPS:
		forward := make([]uint32, len(pe.Forward))
		for i, t := range pe.Forward {
			forward[i] = intern(t)
		}
		inverse := make([]uint32, len(pe.Inverse))
		for i, t := range pe.Inverse {
			inverse[i] = intern(t)
		}
		return logical.PathNegatedPropertySet{Forward: forward, Inverse: inverse}
	default:
		panic("sparql: unhandled PathAlgebra variant")
	}
}

// toPositionBinding converts a TermOrVar to a logical.PositionBinding,
// interning a fixed term.
func toPositionBinding(tv TermOrVar, intern Interner) logical.PositionBinding {
	if tv.IsVariable() {
		return logical.BindVar(tv.Var)
	}
	return logical.BindConst(intern(tv.Term))
}
