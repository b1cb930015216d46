package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileAggregateCarriesArgAndFlags(t *testing.T) {
	a := AggregateCall{As: "n", Func: "COUNT", Distinct: true}
	got := compileAggregate(a)
	assert.Equal(t, "n", got.As)
	assert.Equal(t, "COUNT", got.Func)
	assert.Nil(t, got.Arg)
	assert.True(t, got.Distinct)
}

func TestCompileAggregateWrapsNonNilArg(t *testing.T) {
	a := AggregateCall{As: "total", Func: "SUM", Arg: ExprVar{Name: "x"}}
	got := compileAggregate(a)
	assert.NotNil(t, got.Arg)
	assert.Equal(t, []string{"x"}, got.Arg.ReferencedVariables())
}

func TestNewAccumulatorCoversEveryFunction(t *testing.T) {
	for _, fn := range []string{"COUNT", "SUM", "AVG", "MIN", "MAX", "SAMPLE", "GROUP_CONCAT", "UNKNOWN"} {
		acc := NewAccumulator(compileAggregate(AggregateCall{Func: fn}))
		assert.NotNil(t, acc)
	}
}

func TestNewAccumulatorWrapsDistinct(t *testing.T) {
	acc := NewAccumulator(compileAggregate(AggregateCall{Func: "COUNT", Distinct: true}))
	assert.NotNil(t, acc)
}
