package sparql

import "github.com/graphfusion/graphfusion-go/internal/engine/logical"

// compileJoin implements spec §4.6.2's compatibility-join algorithm.
// leftVars/rightVars are each child's output variable set (already
// rewritten); optExpr is the OPTIONAL clause's own filter (nil for a
// plain Join/Minus).
//
//  1. Alias children as lhs/rhs (no physical renaming needed here: the
//     executor resolves a shared variable by name against both sides).
//  2. Disjoint schemas, no filter -> cross join (no compatibility
//     filter needed; every pair of rows is compatible vacuously).
//  3. Otherwise, AND together one IS_COMPATIBLE(lhs.v, rhs.v) clause per
//     shared variable.
//  4. For OPTIONAL, AND in EBV(optExpr) as well.
//  5. kind selects Join / LeftJoin / Minus.
//  6. The caller still owes a projection step coalescing shared
//     variables -- compileJoin returns the raw join node plus the
//     variable set the caller should wrap in COALESCE (spec §4.6.2 step
//     6); see coalesceSharedVariables.
type joinKind int

const (
	joinInner joinKind = iota
	joinLeft
	joinMinus
)

func compileJoin(kind joinKind, left, right logical.Node, leftVars, rightVars []string, optExpr AlgExpr) (logical.Node, []string) {
	shared := sharedVariables(leftVars, rightVars)

	var filter AlgExpr
	if len(shared) > 0 || optExpr != nil {
		filter = compatibilityFilter(shared, optExpr)
	}

	var node logical.Node
	switch kind {
	case joinInner:
		if filter == nil {
			node = &logical.Join{Left: left, Right: right}
		} else {
			node = &logical.Filter{Child: &logical.Join{Left: left, Right: right}, Expr: exprBridge{filter}}
		}
	case joinLeft:
		var expr logical.Expr
		if filter != nil {
			expr = exprBridge{filter}
		}
		node = &logical.LeftJoin{Left: left, Right: right, Expr: expr}
	case joinMinus:
		// MINUS is a no-op when the two sides share no variable (spec
		// §4.6 "Minus": "disjoint domains is a no-op"); modeled by a
		// Minus node whose compatibility filter additionally requires at
		// least one shared variable bound on both sides, which the
		// Minus operator's executor enforces directly rather than via a
		// wrapping Filter (a pure anti-join has no output schema to
		// filter on beyond lhs's own).
		node = &logical.Minus{Left: left, Right: right}
		if len(shared) == 0 {
			node = left // disjoint-domain MINUS is a no-op
		}
	}
	return node, coalesceSharedVariables(leftVars, rightVars)
}

func sharedVariables(a, b []string) []string {
	bset := map[string]bool{}
	for _, v := range b {
		bset[v] = true
	}
	var out []string
	for _, v := range a {
		if bset[v] {
			out = append(out, v)
		}
	}
	return out
}

// coalesceSharedVariables returns the result schema's variable set: the
// union of both sides (spec §4.6.2 "the result schema's columns are the
// set-union of children's variable columns").
func coalesceSharedVariables(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range append(append([]string{}, a...), b...) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// compatibilityFilter builds IS_COMPATIBLE(lhs.v, rhs.v) AND ... AND
// EBV(optExpr), one clause per shared variable (spec §4.6.2 steps 3-4).
// IS_COMPATIBLE is a pseudo-function the executor resolves specially
// (it needs both sides' raw bindings, not just two term values) rather
// than one internal/functions can express as a plain per-row kernel.
func compatibilityFilter(shared []string, optExpr AlgExpr) AlgExpr {
	var clauses []AlgExpr
	for _, v := range shared {
		clauses = append(clauses, ExprCall{Func: "IS_COMPATIBLE", Args: []AlgExpr{ExprVar{Name: v}}})
	}
	if optExpr != nil {
		clauses = append(clauses, optExpr)
	}
	if len(clauses) == 0 {
		return nil
	}
	out := clauses[0]
	for _, c := range clauses[1:] {
		out = ExprAnd{Left: out, Right: c}
	}
	return out
}

// exprBridge adapts an AlgExpr to logical.Expr for embedding in a
// logical plan node.
type exprBridge struct{ Expr AlgExpr }

func (b exprBridge) ReferencedVariables() []string { return ReferencedVariables(b.Expr) }
func (b exprBridge) IsVolatile() bool              { return IsVolatile(b.Expr) }
