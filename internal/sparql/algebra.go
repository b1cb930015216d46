// Package sparql rewrites SPARQL 1.1 algebra into the logical plan of
// internal/engine/logical (spec §4.6). The algebra types in this file
// are the input contract an external SPARQL parser produces; this
// package never parses SPARQL text itself (spec §6: "parsed by an
// external collaborator").
package sparql

import "github.com/graphfusion/graphfusion-go/internal/term"

// TriplePattern is one BGP triple, each position either a fixed RDF
// term or a variable name.
type TriplePattern struct {
	Subject, Predicate, Object TermOrVar
}

// TermOrVar is a triple/path-pattern position: exactly one of Var or
// Term is set.
type TermOrVar struct {
	Var  string
	Term term.Term
	IsTerm bool
}

func V(name string) TermOrVar         { return TermOrVar{Var: name} }
func T(t term.Term) TermOrVar         { return TermOrVar{Term: t, IsTerm: true} }
func (tv TermOrVar) IsVariable() bool { return !tv.IsTerm }

// Algebra is one node of the input SPARQL algebra tree (spec §4.6's
// input list: BGP, Project, Filter, Extend, Values, Join, LeftJoin,
// Slice, Distinct, OrderBy, Union, Graph, Path, Minus, Group).
type Algebra interface{ isAlgebra() }

type BGP struct{ Patterns []TriplePattern }

type PathTriple struct {
	Subject, Object TermOrVar
	Path            PathAlgebra
}

type Project struct {
	Child     Algebra
	Variables []string
}

type AlgFilter struct {
	Child Algebra
	Expr  AlgExpr
}

type AlgExtend struct {
	Child Algebra
	As    string
	Expr  AlgExpr
}

type Values struct {
	Columns []string
	Rows    [][]*term.Term // nil entry means unbound
}

type AlgJoin struct{ Left, Right Algebra }

type LeftJoin struct {
	Left, Right Algebra
	Expr        AlgExpr // may be nil
}

type AlgUnion struct{ Left, Right Algebra }

type AlgMinus struct{ Left, Right Algebra }

type Slice struct {
	Child         Algebra
	Offset, Limit int64 // Limit < 0 means unbounded
}

type Distinct struct {
	Child Algebra
	On    []AlgExpr // nil for plain DISTINCT
}

type OrderKey struct {
	Expr       AlgExpr
	Descending bool
}

type OrderBy struct {
	Child Algebra
	Keys  []OrderKey
}

// GraphOp is one of: default graph (Variable == "" && IRI == nil),
// GRAPH <iri> { ... }, or GRAPH ?var { ... }.
type GraphOp struct {
	Child    Algebra
	Variable string
	IRI      *term.Term
	// InScope is false once ?var has left SPARQL projection scope
	// (spec §4.6 "Active graph"); the rewriter's caller determines this
	// from the outer query's projected variable list.
	InScope bool
}

type AggregateCall struct {
	As           string
	Func         string
	Arg          AlgExpr // nil for COUNT(*)
	Distinct     bool
	Separator    string
	HasSeparator bool
}

type Group struct {
	Child      Algebra
	Keys       []AlgExpr
	Aggregates []AggregateCall
}

func (BGP) isAlgebra()           {}
func (PathTriple) isAlgebra()    {}
func (Project) isAlgebra()       {}
func (AlgFilter) isAlgebra()     {}
func (AlgExtend) isAlgebra()     {}
func (Values) isAlgebra()        {}
func (AlgJoin) isAlgebra()       {}
func (LeftJoin) isAlgebra()      {}
func (AlgUnion) isAlgebra()      {}
func (AlgMinus) isAlgebra()      {}
func (Slice) isAlgebra()         {}
func (Distinct) isAlgebra()      {}
func (OrderBy) isAlgebra()       {}
func (GraphOp) isAlgebra()       {}
func (Group) isAlgebra()         {}

// PathAlgebra mirrors logical.PathExpr at the algebra layer so callers
// building a query don't need to import internal/engine/logical
// directly; the rewriter converts one to the other 1:1.
type PathAlgebra interface{ isPathAlgebra() }

type PathLink struct{ Predicate term.Term }
type PathInv struct{ Path PathAlgebra }
type PathSeq struct{ Left, Right PathAlgebra }
type PathAlt struct{ Left, Right PathAlgebra }
type PathOpt struct{ Path PathAlgebra }
type PathStar struct{ Path PathAlgebra }
type PathPlus struct{ Path PathAlgebra }
type PathNPS struct{ Forward, Inverse []term.Term }

func (PathLink) isPathAlgebra() {}
func (PathInv) isPathAlgebra()  {}
func (PathSeq) isPathAlgebra()  {}
func (PathAlt) isPathAlgebra()  {}
func (PathOpt) isPathAlgebra()  {}
func (PathStar) isPathAlgebra() {}
func (PathPlus) isPathAlgebra() {}
func (PathNPS) isPathAlgebra()  {}

// AlgExpr is a scalar SPARQL expression at the algebra layer (spec
// §4.3's function families plus variable/literal references).
type AlgExpr interface{ isAlgExpr() }

type ExprVar struct{ Name string }
type ExprConst struct{ Term term.Term }
type ExprCall struct {
	Func string
	Args []AlgExpr
}
type ExprAnd struct{ Left, Right AlgExpr }
type ExprOr struct{ Left, Right AlgExpr }
type ExprNot struct{ Arg AlgExpr }
type ExprBound struct{ Var string }
type ExprCoalesce struct{ Args []AlgExpr }

func (ExprVar) isAlgExpr()      {}
func (ExprConst) isAlgExpr()    {}
func (ExprCall) isAlgExpr()     {}
func (ExprAnd) isAlgExpr()      {}
func (ExprOr) isAlgExpr()       {}
func (ExprNot) isAlgExpr()      {}
func (ExprBound) isAlgExpr()    {}
func (ExprCoalesce) isAlgExpr() {}

// ReferencedVariables walks an AlgExpr collecting every variable name it
// reads, used by the rewriter to compile logical.Expr.ReferencedVariables.
func ReferencedVariables(e AlgExpr) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(AlgExpr)
	walk = func(e AlgExpr) {
		switch ex := e.(type) {
		case ExprVar:
			if !seen[ex.Name] {
				seen[ex.Name] = true
				out = append(out, ex.Name)
			}
		case ExprBound:
			if !seen[ex.Var] {
				seen[ex.Var] = true
				out = append(out, ex.Var)
			}
		case ExprCall:
			for _, a := range ex.Args {
				walk(a)
			}
		case ExprAnd:
			walk(ex.Left)
			walk(ex.Right)
		case ExprOr:
			walk(ex.Left)
			walk(ex.Right)
		case ExprNot:
			walk(ex.Arg)
		case ExprCoalesce:
			for _, a := range ex.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}

// IsVolatile reports whether e calls a non-deterministic function
// (RAND, UUID, STRUUID, NOW via BNODE's per-call identity) that must
// never be pushed across a join or duplicated by an optimizer rewrite
// (spec §4.5.3).
func IsVolatile(e AlgExpr) bool {
	switch ex := e.(type) {
	case ExprCall:
		switch ex.Func {
		case "RAND", "UUID", "STRUUID", "BNODE", "NOW":
			return true
		}
		for _, a := range ex.Args {
			if IsVolatile(a) {
				return true
			}
		}
		return false
	case ExprAnd:
		return IsVolatile(ex.Left) || IsVolatile(ex.Right)
	case ExprOr:
		return IsVolatile(ex.Left) || IsVolatile(ex.Right)
	case ExprNot:
		return IsVolatile(ex.Arg)
	case ExprCoalesce:
		for _, a := range ex.Args {
			if IsVolatile(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
