package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

func namedNode(t *testing.T, iri string) term.Term {
	t.Helper()
	nn, err := term.NewNamedNode(iri)
	require.NoError(t, err)
	return nn
}

func newInternTable(t *testing.T) (Interner, map[string]uint32) {
	t.Helper()
	ids := map[string]uint32{}
	var next uint32 = 1
	intern := func(term term.Term) uint32 {
		key := term.Named.IRI
		if id, ok := ids[key]; ok {
			return id
		}
		ids[key] = next
		next++
		return ids[key]
	}
	return intern, ids
}

func TestRewriteSingleTriplePatternBGP(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := BGP{Patterns: []TriplePattern{
		{Subject: V("s"), Predicate: T(namedNode(t, "http://example.org/knows")), Object: V("o")},
	}}
	node := r.Rewrite(alg)
	scan, ok := node.(*logical.Scan)
	require.True(t, ok)
	assert.True(t, scan.Pattern.Subject.IsVariable())
	assert.True(t, scan.Pattern.Predicate.IsConst())
	assert.True(t, scan.Pattern.Object.IsVariable())
}

func TestRewriteMultiTriplePatternBGPJoinsOnSharedVariable(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := BGP{Patterns: []TriplePattern{
		{Subject: V("s"), Predicate: T(namedNode(t, "http://example.org/knows")), Object: V("mid")},
		{Subject: V("mid"), Predicate: T(namedNode(t, "http://example.org/name")), Object: V("name")},
	}}
	node := r.Rewrite(alg)
	filter, ok := node.(*logical.Filter)
	require.True(t, ok, "expected compatibility filter over shared variable mid")
	_, ok = filter.Child.(*logical.Join)
	assert.True(t, ok)
}

func TestRewriteEmptyBGPIsSingleEmptyRowValues(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	node := r.Rewrite(BGP{})
	v, ok := node.(*logical.Values)
	require.True(t, ok)
	require.Len(t, v.Rows, 1)
	assert.Empty(t, v.Rows[0])
}

func TestRewriteProjectPassesThroughVariables(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := Project{
		Child:     BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
		Variables: []string{"s"},
	}
	node := r.Rewrite(alg)
	p, ok := node.(*logical.Project)
	require.True(t, ok)
	assert.Equal(t, []string{"s"}, p.Variables)
}

func TestRewriteFilterWrapsChild(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := AlgFilter{
		Child: BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
		Expr:  ExprBound{Var: "s"},
	}
	node := r.Rewrite(alg)
	f, ok := node.(*logical.Filter)
	require.True(t, ok)
	assert.Contains(t, f.Expr.ReferencedVariables(), "s")
}

func TestRewriteValuesInternsBoundCells(t *testing.T) {
	intern, ids := newInternTable(t)
	p := namedNode(t, "http://example.org/p")
	r := NewRewriter(Dataset{}, intern)
	alg := Values{Columns: []string{"x"}, Rows: [][]*term.Term{{&p}, {nil}}}
	node := r.Rewrite(alg)
	v, ok := node.(*logical.Values)
	require.True(t, ok)
	require.Len(t, v.Rows, 2)
	assert.True(t, v.Rows[0][0].Bound)
	assert.Equal(t, ids["http://example.org/p"], v.Rows[0][0].ID)
	assert.False(t, v.Rows[1][0].Bound)
}

func TestRewriteUnionCoalescesVariables(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := AlgUnion{
		Left:  BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
		Right: BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p2"), Object: V("o")}}},
	}
	node := r.Rewrite(alg)
	_, ok := node.(*logical.Union)
	assert.True(t, ok)
}

func TestRewriteMinusDisjointVariablesIsNoOp(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	left := BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}}
	right := BGP{Patterns: []TriplePattern{{Subject: V("a"), Predicate: V("b"), Object: V("c")}}}
	node := r.Rewrite(AlgMinus{Left: left, Right: right})
	_, isMinus := node.(*logical.Minus)
	assert.False(t, isMinus)
}

func TestRewritePathTripleExpandsViaSharedVarGen(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	p := namedNode(t, "http://example.org/p")
	q := namedNode(t, "http://example.org/q")
	alg := PathTriple{
		Subject: V("s"),
		Object:  V("o"),
		Path:    PathSeq{Left: PathLink{Predicate: p}, Right: PathLink{Predicate: q}},
	}
	node := r.Rewrite(alg)
	join, ok := node.(*logical.Join)
	require.True(t, ok)
	left := join.Left.(*logical.Scan)
	right := join.Right.(*logical.Scan)
	assert.Equal(t, left.Pattern.Object.Variable, right.Pattern.Subject.Variable)
	assert.NotEmpty(t, left.Pattern.Object.Variable)
}

func TestRewriteGraphOpFixedIRIBindsGraphConst(t *testing.T) {
	intern, ids := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	g := namedNode(t, "http://example.org/g")
	alg := GraphOp{
		Child: BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
		IRI:   &g,
	}
	node := r.Rewrite(alg)
	graph, ok := node.(*logical.Graph)
	require.True(t, ok)
	assert.Equal(t, ids["http://example.org/g"], *graph.IRI)
}

func TestRewriteGroupCompilesAggregatesAndExtendsVariables(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := Group{
		Child:      BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
		Keys:       []AlgExpr{ExprVar{Name: "s"}},
		Aggregates: []AggregateCall{{As: "n", Func: "COUNT"}},
	}
	node := r.Rewrite(alg)
	group, ok := node.(*logical.Group)
	require.True(t, ok)
	require.Len(t, group.Aggregates, 1)
	assert.Equal(t, "n", group.Aggregates[0].As)
}

func TestRewriteOrderByAndSlice(t *testing.T) {
	intern, _ := newInternTable(t)
	r := NewRewriter(Dataset{}, intern)
	alg := Slice{
		Child: OrderBy{
			Child: BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: V("p"), Object: V("o")}}},
			Keys:  []OrderKey{{Expr: ExprVar{Name: "s"}, Descending: true}},
		},
		Offset: 0,
		Limit:  3,
	}
	node := r.Rewrite(alg)
	slice, ok := node.(*logical.Slice)
	require.True(t, ok)
	assert.Equal(t, int64(3), slice.Limit)
	order, ok := slice.Child.(*logical.OrderBy)
	require.True(t, ok)
	require.Len(t, order.Keys, 1)
	assert.True(t, order.Keys[0].Descending)
}
