package sparql

import "github.com/graphfusion/graphfusion-go/internal/engine/logical"

// Rewriter lowers SPARQL algebra into a logical.Node plan (spec §4.6).
// It is parameterized over the store it will eventually run against
// only through Interner, so this package has no dependency on
// internal/store.
type Rewriter struct {
	Dataset Dataset
	Intern  Interner
	paths   *logical.VarGen
}

// NewRewriter returns a Rewriter for one query, resolving fixed terms
// via intern.
func NewRewriter(ds Dataset, intern Interner) *Rewriter {
	return &Rewriter{Dataset: ds, Intern: intern, paths: logical.NewVarGen()}
}

// Rewrite lowers the top-level algebra node under the default graph
// frame.
func (r *Rewriter) Rewrite(alg Algebra) logical.Node {
	node, _ := r.rewrite(alg, defaultFrame())
	return node
}

// rewrite lowers alg under frame, returning the node plus its output
// variable set (used by joins to compute shared variables without a
// separate schema-inference pass).
func (r *Rewriter) rewrite(alg Algebra, frame activeGraphFrame) (logical.Node, []string) {
	switch a := alg.(type) {
	case BGP:
		return r.rewriteBGP(a, frame)

	case PathTriple:
		pn := logical.PathNode{
			Subject: toPositionBinding(a.Subject, r.Intern),
			Object:  toPositionBinding(a.Object, r.Intern),
			Graph:   r.Dataset.graphBinding(frame),
			Path:    toLogicalPath(a.Path, r.Intern),
		}
		node := pn.Expand(r.paths)
		return wrapGraph(node, frame), pathNodeVariables(a)

	case Project:
		child, _ := r.rewrite(a.Child, frame)
		return &logical.Project{Child: child, Variables: a.Variables}, a.Variables

	case AlgFilter:
		child, vars := r.rewrite(a.Child, frame)
		return &logical.Filter{Child: child, Expr: exprBridge{a.Expr}}, vars

	case AlgExtend:
		child, vars := r.rewrite(a.Child, frame)
		return &logical.Extend{Child: child, As: a.As, Expr: exprBridge{a.Expr}}, append(append([]string{}, vars...), a.As)

	case Values:
		rows := make([][]logical.ValueCell, len(a.Rows))
		for i, row := range a.Rows {
			cells := make([]logical.ValueCell, len(row))
			for j, t := range row {
				if t == nil {
					continue
				}
				cells[j] = logical.ValueCell{Bound: true, ID: r.Intern(*t)}
			}
			rows[i] = cells
		}
		return &logical.Values{Columns: a.Columns, Rows: rows}, a.Columns

	case AlgJoin:
		left, lv := r.rewrite(a.Left, frame)
		right, rv := r.rewrite(a.Right, frame)
		node, vars := compileJoin(joinInner, left, right, lv, rv, nil)
		return node, vars

	case LeftJoin:
		left, lv := r.rewrite(a.Left, frame)
		right, rv := r.rewrite(a.Right, frame)
		node, vars := compileJoin(joinLeft, left, right, lv, rv, a.Expr)
		return node, vars

	case AlgUnion:
		left, lv := r.rewrite(a.Left, frame)
		right, rv := r.rewrite(a.Right, frame)
		return &logical.Union{Left: left, Right: right}, coalesceSharedVariables(lv, rv)

	case AlgMinus:
		left, lv := r.rewrite(a.Left, frame)
		right, rv := r.rewrite(a.Right, frame)
		node, _ := compileJoin(joinMinus, left, right, lv, rv, nil)
		return node, lv

	case Slice:
		child, vars := r.rewrite(a.Child, frame)
		return &logical.Slice{Child: child, Offset: a.Offset, Limit: a.Limit}, vars

	case Distinct:
		child, vars := r.rewrite(a.Child, frame)
		var on []logical.Expr
		for _, e := range a.On {
			on = append(on, exprBridge{e})
		}
		return &logical.Distinct{Child: child, On: on}, vars

	case OrderBy:
		child, vars := r.rewrite(a.Child, frame)
		keys := make([]logical.SortKey, len(a.Keys))
		for i, k := range a.Keys {
			keys[i] = logical.SortKey{Expr: exprBridge{k.Expr}, Descending: k.Descending}
		}
		return &logical.OrderBy{Child: child, Keys: keys}, vars

	case GraphOp:
		return r.rewriteGraph(a, frame)

	case Group:
		child, vars := r.rewrite(a.Child, frame)
		keys := make([]logical.Expr, len(a.Keys))
		for i, k := range a.Keys {
			keys[i] = exprBridge{k}
		}
		aggs := make([]logical.AggregateExpr, len(a.Aggregates))
		outVars := append([]string{}, vars...)
		for i, agg := range a.Aggregates {
			aggs[i] = compileAggregate(agg)
			outVars = append(outVars, agg.As)
		}
		return &logical.Group{Child: child, Keys: keys, Aggregates: aggs}, outVars

	default:
		panic("sparql: unhandled Algebra variant")
	}
}

func (r *Rewriter) rewriteBGP(a BGP, frame activeGraphFrame) (logical.Node, []string) {
	if len(a.Patterns) == 0 {
		// The empty BGP matches the single empty solution (SPARQL's
		// "group graph pattern with no triples"); model it as a
		// single-row Values with no columns.
		return &logical.Values{Rows: [][]logical.ValueCell{{}}}, nil
	}
	graphBinding := r.Dataset.graphBinding(frame)
	var node logical.Node
	var vars []string
	seen := map[string]bool{}
	for i, tp := range a.Patterns {
		qp := logical.QuadPattern{
			Subject:   toPositionBinding(tp.Subject, r.Intern),
			Predicate: toPositionBinding(tp.Predicate, r.Intern),
			Object:    toPositionBinding(tp.Object, r.Intern),
			Graph:     graphBinding,
		}
		scan := &logical.Scan{Pattern: qp}
		leftVars := append([]string(nil), vars...)
		for _, v := range qp.Variables() {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
		if i == 0 {
			node = wrapGraph(scan, frame)
			continue
		}
		node, _ = compileJoin(joinInner, node, wrapGraph(scan, frame), leftVars, qp.Variables(), nil)
	}
	return node, vars
}

func (r *Rewriter) rewriteGraph(a GraphOp, outerFrame activeGraphFrame) (logical.Node, []string) {
	var frame activeGraphFrame
	switch {
	case a.IRI != nil:
		id := r.Intern(*a.IRI)
		frame = activeGraphFrame{mode: logical.GraphFixedIRI, iri: &id}
	case a.Variable != "" && a.InScope:
		frame = activeGraphFrame{mode: logical.GraphVariableInScope, variable: a.Variable}
	case a.Variable != "":
		frame = activeGraphFrame{mode: logical.GraphVariableOutOfScope, variable: a.Variable}
	default:
		frame = defaultFrame()
	}
	child, vars := r.rewrite(a.Child, frame)
	if a.Variable != "" {
		found := false
		for _, v := range vars {
			if v == a.Variable {
				found = true
				break
			}
		}
		if !found {
			vars = append(vars, a.Variable)
		}
	}
	return child, vars
}

func pathNodeVariables(a PathTriple) []string {
	var out []string
	if a.Subject.IsVariable() {
		out = append(out, a.Subject.Var)
	}
	if a.Object.IsVariable() {
		out = append(out, a.Object.Var)
	}
	return out
}
