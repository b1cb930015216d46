package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfusion/graphfusion-go/internal/functions"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

func intLit(s string) term.Term { return term.NewTypedLiteral(s, "http://www.w3.org/2001/XMLSchema#integer") }

func TestEvalCallEqualityAndArithmetic(t *testing.T) {
	expr := ExprCall{
		Func: "=",
		Args: []AlgExpr{
			ExprCall{Func: "+", Args: []AlgExpr{ExprVar{Name: "x"}, ExprConst{Term: intLit("1")}}},
			ExprConst{Term: intLit("2")},
		},
	}
	sol := functions.Solution{"x": intLit("1")}
	v, ok := evalAlgExpr(expr, sol, functions.NewContext(nil, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "true", v.Literal.Lexical)
}

func TestEvalCallOrderingOperators(t *testing.T) {
	sol := functions.Solution{}
	ctx := functions.NewContext(nil, 1, 1)

	lt := ExprCall{Func: "<", Args: []AlgExpr{ExprConst{Term: intLit("1")}, ExprConst{Term: intLit("2")}}}
	v, ok := evalAlgExpr(lt, sol, ctx)
	require.True(t, ok)
	assert.Equal(t, "true", v.Literal.Lexical)

	gte := ExprCall{Func: ">=", Args: []AlgExpr{ExprConst{Term: intLit("2")}, ExprConst{Term: intLit("2")}}}
	v, ok = evalAlgExpr(gte, sol, ctx)
	require.True(t, ok)
	assert.Equal(t, "true", v.Literal.Lexical)

	gt := ExprCall{Func: ">", Args: []AlgExpr{ExprConst{Term: intLit("1")}, ExprConst{Term: intLit("2")}}}
	v, ok = evalAlgExpr(gt, sol, ctx)
	require.True(t, ok)
	assert.Equal(t, "false", v.Literal.Lexical)
}

func TestEvalCallInequalityIsTypeErrorForIncompatibleLiterals(t *testing.T) {
	sol := functions.Solution{}
	ctx := functions.NewContext(nil, 1, 1)
	expr := ExprCall{Func: "!=", Args: []AlgExpr{
		ExprConst{Term: intLit("1")},
		ExprConst{Term: term.NewSimpleLiteral("1")},
	}}
	_, ok := evalAlgExpr(expr, sol, ctx)
	assert.False(t, ok)
}
