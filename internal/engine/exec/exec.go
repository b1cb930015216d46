// Package exec walks a logical.Node plan (internal/engine/logical, built
// by internal/sparql's rewriter and internal/engine/optimize's rules)
// against one snapshot of an internal/store.QuadStore, producing the
// functions.Solution rows spec §4.6 defines as a query's result.
//
// This is a row-at-a-time tree-walking evaluator, not the Arrow
// RecordReader batch pipeline SPEC_FULL.md's DOMAIN STACK section
// anticipates for a production engine: building a vectorized executor on
// top of the same logical.Node tree is future work, noted in DESIGN.md as
// a deliberate simplification given the scope of everything else this
// package already wires together.
package exec

import (
	"context"
	"fmt"
	"sort"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/graphfusion/graphfusion-go/internal/engine/schedule"
	"github.com/graphfusion/graphfusion-go/internal/functions"
	"github.com/graphfusion/graphfusion-go/internal/sparql"
	"github.com/graphfusion/graphfusion-go/internal/store"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Expr is the capability internal/sparql's exprBridge actually
// implements beyond logical.Expr's opaque ReferencedVariables/IsVolatile
// pair; the executor type-asserts to it rather than widening
// logical.Expr itself, which would force internal/engine/logical to
// depend on internal/functions for a method only the executor calls.
type Expr interface {
	Eval(sol functions.Solution, ctx *functions.Context) (term.Term, bool)
}

// Executor evaluates one logical.Node tree against a fixed snapshot.
type Executor struct {
	Store   *store.QuadStore
	Version store.Version
	Ctx     *functions.Context
}

// New returns an Executor bound to one MVCC snapshot.
func New(s *store.QuadStore, v store.Version, ctx *functions.Context) *Executor {
	if ctx == nil {
		ctx = functions.NewContext(nil, 1, 1)
	}
	return &Executor{Store: s, Version: v, Ctx: ctx}
}

// Eval dispatches on n's concrete type and returns its solution sequence.
func (e *Executor) Eval(n logical.Node) ([]functions.Solution, error) {
	switch node := n.(type) {
	case *logical.Scan:
		return e.evalScan(node)
	case *logical.Join:
		return e.evalJoin(node)
	case *logical.LeftJoin:
		return e.evalLeftJoin(node)
	case *logical.Union:
		return e.evalUnion(node)
	case *logical.Minus:
		return e.evalMinus(node)
	case *logical.Filter:
		return e.evalFilter(node)
	case *logical.Extend:
		return e.evalExtend(node)
	case *logical.ExtendEquals:
		return e.evalExtendEquals(node)
	case *logical.FixedPointClosure:
		return e.evalFixedPointClosure(node)
	case *logical.Project:
		return e.evalProject(node)
	case *logical.Distinct:
		return e.evalDistinct(node)
	case *logical.OrderBy:
		return e.evalOrderBy(node)
	case *logical.Slice:
		return e.evalSlice(node)
	case *logical.Group:
		return e.evalGroup(node)
	case *logical.Values:
		return e.evalValues(node)
	case *logical.Graph:
		// Active-graph scoping, including a FROM NAMED dataset
		// restriction, is baked into the child scan's graph PositionBinding
		// by internal/sparql's Dataset.graphBinding (spec §4.6.1:
		// PositionBinding.Restrict threads the allowed graph id set down to
		// store.Pattern.GraphIn); Graph itself carries no further row-level
		// work.
		return e.Eval(node.Child)
	default:
		return nil, fmt.Errorf("exec: unhandled node type %T", n)
	}
}

func (e *Executor) evalScan(n *logical.Scan) ([]functions.Solution, error) {
	plan := n.Pattern.Plan()
	quads := e.Store.QuadsForPattern(e.Version, plan.Pattern)
	dict := e.Store.Dictionary()
	bindings := [4]logical.PositionBinding{plan.Bindings.Subject, plan.Bindings.Predicate, plan.Bindings.Object, plan.Bindings.Graph}

	var out []functions.Solution
rowLoop:
	for _, q := range quads {
		cols := [4]columnar.ObjectID{q.Subject, q.Predicate, q.Object, q.Graph}
		for _, pair := range plan.SelfJoin {
			if cols[pair[0]] != cols[pair[1]] {
				continue rowLoop
			}
		}
		if len(n.Except) > 0 {
			for _, id := range n.Except {
				if uint32(q.Predicate) == id {
					continue rowLoop
				}
			}
		}
		sol := functions.Solution{}
		for i, b := range bindings {
			if !b.IsVariable() {
				continue
			}
			t, ok := dict.Lookup(cols[i])
			if !ok {
				continue rowLoop
			}
			sol[b.Variable] = t
		}
		out = append(out, sol)
	}
	return out, nil
}

func (e *Executor) evalJoin(n *logical.Join) ([]functions.Solution, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	var out []functions.Solution
	for _, l := range left {
		for _, r := range right {
			if functions.IsCompatible(l, r) {
				out = append(out, functions.Merge(l, r))
			}
		}
	}
	return out, nil
}

func (e *Executor) evalLeftJoin(n *logical.LeftJoin) ([]functions.Solution, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	expr, _ := n.Expr.(Expr)

	var out []functions.Solution
	for _, l := range left {
		matched := false
		for _, r := range right {
			if !functions.IsCompatible(l, r) {
				continue
			}
			merged := functions.Merge(l, r)
			if expr != nil {
				v, ok := expr.Eval(merged, e.Ctx)
				if !ok {
					continue
				}
				ebv, ok := functions.EBV(v)
				if !ok || !ebv {
					continue
				}
			}
			out = append(out, merged)
			matched = true
		}
		if !matched {
			out = append(out, l)
		}
	}
	return out, nil
}

// evalUnion runs both branches as independent cooperative scans under one
// shared cancellation scope (spec §5 "fan out independent scan/operator
// goroutines with shared cancellation"): a failure on either branch
// cancels the other rather than waiting for it to finish uselessly.
func (e *Executor) evalUnion(n *logical.Union) ([]functions.Solution, error) {
	children := [2]logical.Node{n.Left, n.Right}
	results := make([][]functions.Solution, 2)
	scans := make([]*schedule.CooperativeScan, 2)
	for i := range children {
		i := i
		yielded := false
		scans[i] = schedule.NewCooperativeScan(func(ctx context.Context) (schedule.Batch, bool, error) {
			if yielded {
				return schedule.Batch{}, false, nil
			}
			yielded = true
			rows, err := e.Eval(children[i])
			if err != nil {
				return schedule.Batch{}, false, err
			}
			results[i] = rows
			return schedule.Batch{Columns: len(rows)}, true, nil
		})
	}
	if err := schedule.FanOut(context.Background(), scans, func(int, schedule.Batch) error { return nil }); err != nil {
		return nil, err
	}
	return append(results[0], results[1]...), nil
}

func (e *Executor) evalMinus(n *logical.Minus) ([]functions.Solution, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	var out []functions.Solution
	for _, l := range left {
		excluded := false
		for _, r := range right {
			if functions.SharesBoundVariable(l, r) && functions.IsCompatible(l, r) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, l)
		}
	}
	return out, nil
}

func (e *Executor) evalFilter(n *logical.Filter) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	expr, ok := n.Expr.(Expr)
	if !ok {
		return nil, fmt.Errorf("exec: Filter.Expr does not implement exec.Expr")
	}
	var out []functions.Solution
	for _, sol := range rows {
		v, ok := expr.Eval(sol, e.Ctx)
		if !ok {
			continue
		}
		ebv, ok := functions.EBV(v)
		if ok && ebv {
			out = append(out, sol)
		}
	}
	return out, nil
}

func (e *Executor) evalExtend(n *logical.Extend) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	expr, ok := n.Expr.(Expr)
	if !ok {
		return nil, fmt.Errorf("exec: Extend.Expr does not implement exec.Expr")
	}
	out := make([]functions.Solution, 0, len(rows))
	for _, sol := range rows {
		v, ok := expr.Eval(sol, e.Ctx)
		if !ok {
			out = append(out, sol)
			continue
		}
		next := functions.Merge(sol, functions.Solution{n.As: v})
		out = append(out, next)
	}
	return out, nil
}

func (e *Executor) evalExtendEquals(n *logical.ExtendEquals) ([]functions.Solution, error) {
	sol := functions.Solution{}
	switch {
	case n.Subject.IsVariable() && n.Object.IsConst():
		t, ok := e.Store.Dictionary().Lookup(columnar.ObjectID(*n.Object.Const))
		if !ok {
			return nil, nil
		}
		sol[n.Subject.Variable] = t
	case n.Object.IsVariable() && n.Subject.IsConst():
		t, ok := e.Store.Dictionary().Lookup(columnar.ObjectID(*n.Subject.Const))
		if !ok {
			return nil, nil
		}
		sol[n.Object.Variable] = t
	}
	return []functions.Solution{sol}, nil
}

// evalFixedPointClosure materializes the path's one-step relation, then
// computes its reflexive-transitive or transitive closure by repeated
// composition until no new pair appears (spec §4.5.2; always terminates
// because the object id space is finite).
func (e *Executor) evalFixedPointClosure(n *logical.FixedPointClosure) ([]functions.Solution, error) {
	fromVar, toVar := n.Gen.Fresh(), n.Gen.Fresh()
	step := logical.PathNode{Subject: logical.BindVar(fromVar), Object: logical.BindVar(toVar), Graph: n.Graph, Path: n.Step}.Expand(n.Gen)
	stepRows, err := e.Eval(step)
	if err != nil {
		return nil, err
	}

	type pair struct{ from, to term.Term }
	var edges []pair
	nodes := map[string]term.Term{}
	for _, sol := range stepRows {
		from, okF := sol[fromVar]
		to, okT := sol[toVar]
		if !okF || !okT {
			continue
		}
		edges = append(edges, pair{from, to})
		nodes[from.String()] = from
		nodes[to.String()] = to
	}

	adj := map[string][]term.Term{}
	for _, ed := range edges {
		adj[ed.from.String()] = append(adj[ed.from.String()], ed.to)
	}

	reachable := func(start term.Term) map[string]term.Term {
		seen := map[string]term.Term{}
		queue := []term.Term{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur.String()] {
				if _, ok := seen[next.String()]; ok {
					continue
				}
				seen[next.String()] = next
				queue = append(queue, next)
			}
		}
		return seen
	}

	var startNodes []term.Term
	if n.Subject.IsConst() {
		t, ok := e.Store.Dictionary().Lookup(columnar.ObjectID(*n.Subject.Const))
		if !ok {
			return nil, nil
		}
		startNodes = []term.Term{t}
	} else {
		for _, t := range nodes {
			startNodes = append(startNodes, t)
		}
	}

	var out []functions.Solution
	for _, start := range startNodes {
		closure := reachable(start)
		if n.IncludeEmpty {
			closure[start.String()] = start
		}
		for _, to := range closure {
			sol := functions.Solution{}
			if n.Subject.IsVariable() {
				sol[n.Subject.Variable] = start
			}
			if n.Object.IsVariable() {
				sol[n.Object.Variable] = to
			} else if n.Object.IsConst() {
				wantID := *n.Object.Const
				t, ok := e.Store.Dictionary().Lookup(columnar.ObjectID(wantID))
				if !ok || !t.Eq(to) {
					continue
				}
			}
			out = append(out, sol)
		}
	}
	return out, nil
}

func (e *Executor) evalProject(n *logical.Project) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	out := make([]functions.Solution, len(rows))
	for i, sol := range rows {
		projected := functions.Solution{}
		for _, v := range n.Variables {
			if t, ok := sol[v]; ok {
				projected[v] = t
			}
		}
		out[i] = projected
	}
	return out, nil
}

func (e *Executor) evalDistinct(n *logical.Distinct) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	exprs, _ := exprList(n.On)
	seen := map[string]bool{}
	var out []functions.Solution
	for _, sol := range rows {
		key := distinctKey(sol, exprs, e.Ctx)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sol)
	}
	return out, nil
}

func exprList(exprs []logical.Expr) ([]Expr, bool) {
	out := make([]Expr, 0, len(exprs))
	for _, le := range exprs {
		if ex, ok := le.(Expr); ok {
			out = append(out, ex)
		}
	}
	return out, len(out) == len(exprs)
}

// distinctKey builds a row's dedup key from the columnar sortable encoding
// (spec §4.6 "Distinct / Distinct-on") rather than each term's display
// string, so literals that print identically but differ by datatype (e.g.
// "1"^^xsd:integer vs "1.0"^^xsd:decimal) are not incorrectly merged.
func distinctKey(sol functions.Solution, on []Expr, ctx *functions.Context) string {
	if len(on) == 0 {
		vars := make([]string, 0, len(sol))
		for v := range sol {
			vars = append(vars, v)
		}
		sort.Strings(vars)
		key := ""
		for _, v := range vars {
			key += v + "=" + string(columnar.SortKey(sol[v])) + "\x00" + sol[v].String() + "\x1f"
		}
		return key
	}
	key := ""
	for _, ex := range on {
		v, ok := ex.Eval(sol, ctx)
		if ok {
			key += string(columnar.SortKey(v)) + "\x00" + v.String()
		}
		key += "\x1f"
	}
	return key
}

func (e *Executor) evalOrderBy(n *logical.OrderBy) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range n.Keys {
			expr, ok := key.Expr.(Expr)
			if !ok {
				continue
			}
			vi, oki := expr.Eval(rows[i], e.Ctx)
			vj, okj := expr.Eval(rows[j], e.Ctx)
			c := compareOrderValues(vi, oki, vj, okj)
			if c == 0 {
				continue
			}
			if key.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return rows, nil
}

// compareOrderValues implements SPARQL ORDER BY's total order (spec §4.6
// "OrderBy") via the columnar sortable encoding (spec §3.2.4): unbound
// sorts first, then the encoding's own tiering of blank node < IRI <
// literal, with numeric and date/time literals compared by value within
// the literal tier.
func compareOrderValues(a term.Term, aok bool, b term.Term, bok bool) int {
	if !aok && !bok {
		return 0
	}
	if !aok {
		return -1
	}
	if !bok {
		return 1
	}
	return functions.CompareSortKeys(a, b)
}

func (e *Executor) evalSlice(n *logical.Slice) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	start := int(n.Offset)
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		return nil, nil
	}
	rows = rows[start:]
	if n.Limit >= 0 && int(n.Limit) < len(rows) {
		rows = rows[:n.Limit]
	}
	return rows, nil
}

func (e *Executor) evalValues(n *logical.Values) ([]functions.Solution, error) {
	dict := e.Store.Dictionary()
	out := make([]functions.Solution, 0, len(n.Rows))
rowLoop:
	for _, row := range n.Rows {
		sol := functions.Solution{}
		for i, cell := range row {
			if !cell.Bound {
				continue
			}
			t, ok := dict.Lookup(columnar.ObjectID(cell.ID))
			if !ok {
				continue rowLoop
			}
			if i < len(n.Columns) {
				sol[n.Columns[i]] = t
			}
		}
		out = append(out, sol)
	}
	return out, nil
}

func (e *Executor) evalGroup(n *logical.Group) ([]functions.Solution, error) {
	rows, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	keys := make([]Expr, 0, len(n.Keys))
	for _, k := range n.Keys {
		if ex, ok := k.(Expr); ok {
			keys = append(keys, ex)
		}
	}

	type group struct {
		key   functions.Solution
		accs  []functions.Accumulator
		order int
	}
	index := map[string]*group{}
	var order []*group

	newAccs := func() []functions.Accumulator {
		accs := make([]functions.Accumulator, len(n.Aggregates))
		for i := range n.Aggregates {
			accs[i] = sparql.NewAccumulator(n.Aggregates[i])
		}
		return accs
	}

	for _, sol := range rows {
		keyVals := functions.Solution{}
		var keyStr string
		for i, ex := range keys {
			v, ok := ex.Eval(sol, e.Ctx)
			if ok {
				// Binding the group key to an output variable only makes
				// sense when the key expression is a bare variable
				// reference (the common "GROUP BY ?x" case); a computed
				// key expression groups rows without itself naming an
				// output column, matching SPARQL's GROUP BY semantics
				// where only an explicit "(expr AS ?v)" would bind one.
				if vars := n.Keys[i].ReferencedVariables(); len(vars) == 1 {
					keyVals[vars[0]] = v
				}
				keyStr += v.String()
			}
			keyStr += "\x1f"
		}
		g, ok := index[keyStr]
		if !ok {
			g = &group{key: keyVals, accs: newAccs(), order: len(order)}
			index[keyStr] = g
			order = append(order, g)
		}
		for i, agg := range n.Aggregates {
			var v term.Term
			bound := false
			if agg.Arg != nil {
				if ex, ok := agg.Arg.(Expr); ok {
					v, bound = ex.Eval(sol, e.Ctx)
				}
			}
			g.accs[i].Add(v, bound)
		}
	}

	// An aggregate with no GROUP BY key always produces exactly one group,
	// even over zero input rows (spec §4.6 "Group / Aggregate": "implicit
	// single-group aggregate").
	if len(order) == 0 && len(n.Keys) == 0 {
		order = append(order, &group{accs: newAccs()})
	}

	out := make([]functions.Solution, len(order))
	for i, g := range order {
		sol := functions.Solution{}
		for v, t := range g.key {
			sol[v] = t
		}
		for i, agg := range n.Aggregates {
			sol[agg.As] = g.accs[i].Result()
		}
		out[i] = sol
	}
	return out, nil
}
