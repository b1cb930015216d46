package optimize

import "github.com/graphfusion/graphfusion-go/internal/engine/logical"

// PushDownJoinFilters implements spec §4.5.3: for a Filter sitting over
// a Join whose expression references variables from only one side, move
// the filter below the join onto that side, so the other side never
// materializes rows that will be discarded. Mark joins (LeftJoin,
// Minus) are left untouched, as is any filter referencing a volatile
// expression (RAND, NOW) -- pushing those would change how many times
// they evaluate.
func PushDownJoinFilters(n logical.Node) logical.Node {
	switch node := n.(type) {
	case *logical.Filter:
		child := PushDownJoinFilters(node.Child)
		if join, ok := child.(*logical.Join); ok && !node.Expr.IsVolatile() {
			if pushed, ok := pushIntoJoin(join, node.Expr); ok {
				return pushed
			}
		}
		return &logical.Filter{Child: child, Expr: node.Expr}
	case *logical.Join:
		return &logical.Join{Left: PushDownJoinFilters(node.Left), Right: PushDownJoinFilters(node.Right)}
	case *logical.LeftJoin:
		return &logical.LeftJoin{Left: PushDownJoinFilters(node.Left), Right: PushDownJoinFilters(node.Right), Expr: node.Expr}
	case *logical.Union:
		return &logical.Union{Left: PushDownJoinFilters(node.Left), Right: PushDownJoinFilters(node.Right)}
	case *logical.Minus:
		return &logical.Minus{Left: PushDownJoinFilters(node.Left), Right: PushDownJoinFilters(node.Right)}
	case *logical.Extend:
		return &logical.Extend{Child: PushDownJoinFilters(node.Child), As: node.As, Expr: node.Expr}
	case *logical.Project:
		return &logical.Project{Child: PushDownJoinFilters(node.Child), Variables: node.Variables}
	case *logical.Distinct:
		return &logical.Distinct{Child: PushDownJoinFilters(node.Child), On: node.On}
	case *logical.OrderBy:
		return &logical.OrderBy{Child: PushDownJoinFilters(node.Child), Keys: node.Keys}
	case *logical.Slice:
		return &logical.Slice{Child: PushDownJoinFilters(node.Child), Offset: node.Offset, Limit: node.Limit}
	case *logical.Group:
		return &logical.Group{Child: PushDownJoinFilters(node.Child), Keys: node.Keys, Aggregates: node.Aggregates}
	case *logical.Graph:
		return &logical.Graph{Child: PushDownJoinFilters(node.Child), Mode: node.Mode, Variable: node.Variable, IRI: node.IRI}
	default:
		return n
	}
}

// pushIntoJoin rewrites join so expr is applied directly beneath the
// single side it references, returning the rewritten Join and true; it
// returns false if expr references variables from both sides (the
// filter must stay above the join).
func pushIntoJoin(join *logical.Join, expr logical.Expr) (logical.Node, bool) {
	leftVars := outputVariables(join.Left)
	rightVars := outputVariables(join.Right)

	referencesLeft, referencesRight := false, false
	for _, v := range expr.ReferencedVariables() {
		if leftVars[v] {
			referencesLeft = true
		}
		if rightVars[v] {
			referencesRight = true
		}
	}
	switch {
	case referencesLeft && !referencesRight:
		return &logical.Join{Left: &logical.Filter{Child: join.Left, Expr: expr}, Right: join.Right}, true
	case referencesRight && !referencesLeft:
		return &logical.Join{Left: join.Left, Right: &logical.Filter{Child: join.Right, Expr: expr}}, true
	default:
		return nil, false
	}
}

// outputVariables collects the set of variable names a subtree can bind,
// conservatively: every Scan's bound variables, propagated up through
// joins and unions. It does not need to be exact for Extend/Project
// since those are resolved before this rewrite runs on the scan-level
// tree produced by internal/sparql.
func outputVariables(n logical.Node) map[string]bool {
	out := map[string]bool{}
	collectVariables(n, out)
	return out
}

func collectVariables(n logical.Node, out map[string]bool) {
	switch node := n.(type) {
	case *logical.Scan:
		for _, v := range node.Pattern.Variables() {
			out[v] = true
		}
	case *logical.ExtendEquals:
		if node.Subject.IsVariable() {
			out[node.Subject.Variable] = true
		}
		if node.Object.IsVariable() {
			out[node.Object.Variable] = true
		}
	case *logical.FixedPointClosure:
		if node.Subject.IsVariable() {
			out[node.Subject.Variable] = true
		}
		if node.Object.IsVariable() {
			out[node.Object.Variable] = true
		}
	case *logical.Extend:
		collectVariables(node.Child, out)
		out[node.As] = true
	case *logical.Values:
		for _, c := range node.Columns {
			out[c] = true
		}
	default:
		for _, c := range n.Children() {
			collectVariables(c, out)
		}
	}
}
