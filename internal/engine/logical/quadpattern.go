// Package logical defines the logical query plan produced by rewriting
// SPARQL algebra (internal/sparql) and consumed by the optimizer
// (internal/engine/optimize) before execution against internal/store.
package logical

import "github.com/graphfusion/graphfusion-go/internal/store"

// GraphRestriction narrows a variable or unbound graph position to a
// dataset's declared named-graph id set (spec §4.6.1 "GRAPH ?g" dataset
// scoping): a FROM NAMED list that doesn't cover every graph the store
// holds. A pointer keeps PositionBinding comparable with == (used by
// internal/engine/optimize's pattern collapsing) while still letting the
// ids be shared across every scan rewritten under the same active-graph
// frame.
type GraphRestriction struct {
	IDs []uint32
}

// PositionBinding is what one of a pattern's four positions is bound to:
// either a fixed object id (a constant term already interned in the
// dictionary) or a variable name that the scan should bind. Restrict, when
// set, additionally narrows a non-const position to one of its ids.
type PositionBinding struct {
	Variable string // "" if Const is set
	Const    *uint32
	Restrict *GraphRestriction
}

func BindVar(name string) PositionBinding { return PositionBinding{Variable: name} }
func BindConst(id uint32) PositionBinding { return PositionBinding{Const: &id} }

// BindVarRestricted binds name, additionally narrowing matches to ids.
func BindVarRestricted(name string, ids []uint32) PositionBinding {
	return PositionBinding{Variable: name, Restrict: &GraphRestriction{IDs: ids}}
}

// BindUnboundRestricted leaves the position unbound (no output variable)
// but still narrows matches to ids, for a graph variable that has fallen
// out of scope yet must still respect the dataset's named-graph set.
func BindUnboundRestricted(ids []uint32) PositionBinding {
	return PositionBinding{Restrict: &GraphRestriction{IDs: ids}}
}

func (b PositionBinding) IsConst() bool    { return b.Const != nil }
func (b PositionBinding) IsVariable() bool { return b.Const == nil && b.Variable != "" }

// QuadPattern wraps the quads relation, binding each of its four
// positions to a constant or a variable; a variable repeated across
// positions imposes an equality constraint between them (spec §4.5.1).
type QuadPattern struct {
	Subject, Predicate, Object, Graph PositionBinding
}

// Variables returns the distinct variable names this pattern binds, in
// position order (subject, predicate, object, graph), first occurrence
// only.
func (p QuadPattern) Variables() []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range []PositionBinding{p.Subject, p.Predicate, p.Object, p.Graph} {
		if b.IsVariable() && !seen[b.Variable] {
			seen[b.Variable] = true
			out = append(out, b.Variable)
		}
	}
	return out
}

// repeatedVariableEquality finds pairs of positions bound to the same
// variable name, returned as store position indices (0=S,1=P,2=O,3=G),
// used to compile EqualTo scan instructions for a self-joining pattern.
func (p QuadPattern) repeatedVariableEquality() [][2]int {
	bindings := [4]PositionBinding{p.Subject, p.Predicate, p.Object, p.Graph}
	firstSeen := map[string]int{}
	var pairs [][2]int
	for i, b := range bindings {
		if !b.IsVariable() {
			continue
		}
		if j, ok := firstSeen[b.Variable]; ok {
			pairs = append(pairs, [2]int{j, i})
		} else {
			firstSeen[b.Variable] = i
		}
	}
	return pairs
}

// PlannedPatternScan is a QuadPattern lowered to a concrete store.Pattern
// plus any self-join equalities the store's four-slot Pattern cannot
// express directly (repeated variables): the scan operator applies those
// as an extra row filter after the index scan.
type PlannedPatternScan struct {
	Pattern  store.Pattern
	Bindings QuadPattern
	SelfJoin [][2]int // position pairs (store order: S,P,O,G) that must be equal
}

// Plan lowers this pattern into a PlannedPatternScan. Positions bound to
// a variable are left unbound in the store.Pattern (they are what the
// scan binds); positions bound to a constant are fixed.
func (p QuadPattern) Plan() PlannedPatternScan {
	var sp store.Pattern
	if p.Subject.IsConst() {
		sp.Subject = p.Subject.Const
	}
	if p.Predicate.IsConst() {
		sp.Predicate = p.Predicate.Const
	}
	if p.Object.IsConst() {
		sp.Object = p.Object.Const
	}
	if p.Graph.IsConst() {
		sp.Graph = p.Graph.Const
	} else if p.Graph.Restrict != nil {
		sp.GraphIn = p.Graph.Restrict.IDs
	}
	return PlannedPatternScan{Pattern: sp, Bindings: p, SelfJoin: p.repeatedVariableEquality()}
}
