// Package optimize rewrites a logical.Node tree into an equivalent,
// cheaper-to-execute tree (spec §4.5.3 and the collapse rule of §4.5.1).
package optimize

import "github.com/graphfusion/graphfusion-go/internal/engine/logical"

// CollapsePatterns walks the tree bottom-up and, wherever a Join's two
// children are both Scan nodes that tryMergeScans accepts, replaces the
// Join with the single merged Scan (spec §4.5.1); every other node is
// rebuilt around its collapsed children.
func CollapsePatterns(n logical.Node) logical.Node {
	switch node := n.(type) {
	case *logical.Join:
		left := CollapsePatterns(node.Left)
		right := CollapsePatterns(node.Right)
		if merged, ok := tryMergeScans(left, right); ok {
			return merged
		}
		return &logical.Join{Left: left, Right: right}
	case *logical.LeftJoin:
		return &logical.LeftJoin{Left: CollapsePatterns(node.Left), Right: CollapsePatterns(node.Right), Expr: node.Expr}
	case *logical.Union:
		return &logical.Union{Left: CollapsePatterns(node.Left), Right: CollapsePatterns(node.Right)}
	case *logical.Minus:
		return &logical.Minus{Left: CollapsePatterns(node.Left), Right: CollapsePatterns(node.Right)}
	case *logical.Filter:
		return &logical.Filter{Child: CollapsePatterns(node.Child), Expr: node.Expr}
	case *logical.Extend:
		return &logical.Extend{Child: CollapsePatterns(node.Child), As: node.As, Expr: node.Expr}
	case *logical.Project:
		return &logical.Project{Child: CollapsePatterns(node.Child), Variables: node.Variables}
	case *logical.Distinct:
		return &logical.Distinct{Child: CollapsePatterns(node.Child), On: node.On}
	case *logical.OrderBy:
		return &logical.OrderBy{Child: CollapsePatterns(node.Child), Keys: node.Keys}
	case *logical.Slice:
		return &logical.Slice{Child: CollapsePatterns(node.Child), Offset: node.Offset, Limit: node.Limit}
	case *logical.Group:
		return &logical.Group{Child: CollapsePatterns(node.Child), Keys: node.Keys, Aggregates: node.Aggregates}
	case *logical.Graph:
		return &logical.Graph{Child: CollapsePatterns(node.Child), Mode: node.Mode, Variable: node.Variable, IRI: node.IRI}
	default:
		return n // Scan, Values, ExtendEquals, FixedPointClosure are leaves
	}
}

// tryMergeScans folds two Scan leaves that only differ in which
// positions are constant-bound vs. variable-bound into a single Scan
// whose pattern carries every constant from both sides and the union of
// their variable bindings, when doing so does not lose information: a
// position bound to different constants on each side cannot be merged
// (the join is a genuine equi-join on that position, left as a Join).
func tryMergeScans(left, right logical.Node) (logical.Node, bool) {
	ls, ok := left.(*logical.Scan)
	if !ok {
		return nil, false
	}
	rs, ok := right.(*logical.Scan)
	if !ok {
		return nil, false
	}
	if len(ls.Except) > 0 || len(rs.Except) > 0 {
		return nil, false
	}
	merged, ok := mergeBinding(ls.Pattern.Subject, rs.Pattern.Subject)
	if !ok {
		return nil, false
	}
	mp, ok := mergeBinding(ls.Pattern.Predicate, rs.Pattern.Predicate)
	if !ok {
		return nil, false
	}
	mo, ok := mergeBinding(ls.Pattern.Object, rs.Pattern.Object)
	if !ok {
		return nil, false
	}
	mg, ok := mergeBinding(ls.Pattern.Graph, rs.Pattern.Graph)
	if !ok {
		return nil, false
	}
	return &logical.Scan{Pattern: logical.QuadPattern{Subject: merged, Predicate: mp, Object: mo, Graph: mg}}, true
}

func mergeBinding(a, b logical.PositionBinding) (logical.PositionBinding, bool) {
	switch {
	case a == (logical.PositionBinding{}) && b == (logical.PositionBinding{}):
		return a, true
	case a.IsConst() && b.IsConst():
		if *a.Const != *b.Const {
			return logical.PositionBinding{}, false
		}
		return a, true
	case a.IsConst():
		return a, true
	case b.IsConst():
		return b, true
	case a.IsVariable():
		return a, true
	default:
		return b, true
	}
}
