package xsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalGrammar(t *testing.T) {
	bad := []string{"", "+", "-", ".", "+.", "-.", "a", ".a"}
	for _, s := range bad {
		r := ParseDecimal(s)
		assert.Falsef(t, r.IsOK(), "expected parse failure for %q", s)
	}

	cases := map[string]string{
		"1.":    "1",
		"1.0":   "1",
		"01.0":  "1",
		"-0":    "0",
		"0":     "0",
		"1.5":   "1.5",
		"-1.50": "-1.5",
	}
	for in, want := range cases {
		r := ParseDecimal(in)
		require.Truef(t, r.IsOK(), "expected %q to parse", in)
		assert.Equal(t, want, r.Value.String())
	}
}

func TestDecimalRoundTripThroughString(t *testing.T) {
	inputs := []string{"0", "1", "-1", "123.456789012345678", "1000000000000000000"}
	for _, in := range inputs {
		r := ParseDecimal(in)
		require.True(t, r.IsOK())
		r2 := ParseDecimal(r.Value.String())
		require.True(t, r2.IsOK())
		assert.Equal(t, 0, r.Value.Cmp(r2.Value))
	}
}

func TestDecimalOverflowBoundary(t *testing.T) {
	step := FromInt64(0)
	step.Mag = step.Mag.Add64(1) // smallest positive step: 10^-18

	maxPlusStep := MaxDecimal128.Add(step)
	assert.Equal(t, StatusOverflow, maxPlusStep.Status)

	// MAX + MIN = -STEP
	sum := MaxDecimal128.Add(MinDecimal128)
	require.True(t, sum.IsOK())
	assert.Equal(t, 0, sum.Value.Cmp(negate(step)))
}

func negate(d Decimal128) Decimal128 {
	r := d.Neg()
	return r.Value
}

func TestDecimalCheckedRoundBoundary(t *testing.T) {
	r := MaxDecimal128.Round()
	assert.False(t, r.IsOK(), "rounding MAX should overflow")

	step := FromInt64(0)
	step.Mag = step.Mag.Add64(5 * 100000000000000000) // 0.5
	half := Decimal128{Mag: step.Mag}

	maxMinusHalf := MaxDecimal128.Sub(half)
	require.True(t, maxMinusHalf.IsOK())
	r2 := maxMinusHalf.Value.Round()
	assert.True(t, r2.IsOK(), "rounding MAX-0.5 should succeed")
}

func TestDecimalDivisionByZero(t *testing.T) {
	one := FromInt64(1)
	r := one.Div(Zero)
	assert.Equal(t, StatusDivisionByZero, r.Status)
}

func TestDecimalMulPreservesPrecision(t *testing.T) {
	a := ParseDecimal("1.5").Value
	b := ParseDecimal("2.0").Value
	r := a.Mul(b)
	require.True(t, r.IsOK())
	assert.Equal(t, "3", r.Value.String())
}

func TestDecimalFloorCeil(t *testing.T) {
	neg := ParseDecimal("-1.5").Value
	assert.Equal(t, "-2", neg.Floor().Value.String())
	assert.Equal(t, "-1", neg.Ceil().Value.String())

	pos := ParseDecimal("1.5").Value
	assert.Equal(t, "1", pos.Floor().Value.String())
	assert.Equal(t, "2", pos.Ceil().Value.String())
}
