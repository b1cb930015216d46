package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphfusion/graphfusion-go/internal/term"
)

func TestTermOrVarIsVariable(t *testing.T) {
	nn, err := term.NewNamedNode("http://example.org/p")
	assert.NoError(t, err)
	assert.True(t, V("x").IsVariable())
	assert.False(t, T(nn).IsVariable())
}

func TestReferencedVariablesDedupesAndWalksCompoundExpr(t *testing.T) {
	e := ExprAnd{
		Left:  ExprCall{Func: "STR", Args: []AlgExpr{ExprVar{Name: "x"}}},
		Right: ExprOr{Left: ExprBound{Var: "x"}, Right: ExprNot{Arg: ExprVar{Name: "y"}}},
	}
	got := ReferencedVariables(e)
	assert.ElementsMatch(t, []string{"x", "y"}, got)
}

func TestIsVolatileDetectsNonDeterministicCalls(t *testing.T) {
	assert.True(t, IsVolatile(ExprCall{Func: "RAND"}))
	assert.True(t, IsVolatile(ExprAnd{Left: ExprCall{Func: "UUID"}, Right: ExprVar{Name: "x"}}))
	assert.False(t, IsVolatile(ExprCall{Func: "STR", Args: []AlgExpr{ExprVar{Name: "x"}}}))
}

func TestIsVolatileRecursesIntoCoalesce(t *testing.T) {
	e := ExprCoalesce{Args: []AlgExpr{ExprVar{Name: "x"}, ExprCall{Func: "NOW"}}}
	assert.True(t, IsVolatile(e))
}
