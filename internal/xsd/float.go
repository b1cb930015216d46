package xsd

import (
	"math"
	"strconv"
)

// ParseFloat32 parses an xsd:float lexical value, including the special
// tokens INF, -INF and NaN.
func ParseFloat32(s string) Result[float32] {
	switch s {
	case "INF", "+INF":
		return Ok[float32](float32(math.Inf(1)))
	case "-INF":
		return Ok[float32](float32(math.Inf(-1)))
	case "NaN":
		return Ok[float32](float32(math.NaN()))
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return Domain[float32]()
	}
	return Ok(float32(f))
}

// ParseFloat64 parses an xsd:double lexical value.
func ParseFloat64(s string) Result[float64] {
	switch s {
	case "INF", "+INF":
		return Ok(math.Inf(1))
	case "-INF":
		return Ok(math.Inf(-1))
	case "NaN":
		return Ok(math.NaN())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Domain[float64]()
	}
	return Ok(f)
}

// FormatFloat renders a float/double per the XSD canonical lexical
// mapping's special tokens, delegating to strconv for finite values.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}

// DoubleToDecimal converts a double to Decimal128 (spec §4.1): multiply by
// 10^18 and cast; NaN, +-Inf or magnitude outside the int128 range fail.
func DoubleToDecimal(f float64) Result[Decimal128] { return FromFloat64(f) }

// DecimalToDouble converts a Decimal128 to a double (spec §4.1): strip
// trailing zero factors of 10, then divide.
func DecimalToDouble(d Decimal128) float64 { return d.ToFloat64() }
