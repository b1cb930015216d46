package xsd

import (
	"math"
	"strconv"
)

// IntegerKind identifies which integer subtype a value was constructed or
// cast as (spec §3.1): the value space for all of these fits in int64, but
// construction is checked against the narrower subtype's range.
type IntegerKind int

const (
	KindInteger IntegerKind = iota
	KindInt
	KindLong
	KindShort
	KindByte
	KindUnsignedLong
	KindUnsignedInt
	KindUnsignedShort
	KindUnsignedByte
	KindNonNegativeInteger
	KindPositiveInteger
	KindNonPositiveInteger
	KindNegativeInteger
)

// Bounds returns the inclusive [min, max] range for kind. xsd:integer and
// the unsigned-64 subtypes that exceed int64's positive range are reported
// with the int64 ceiling, per spec's "bounded to 64-bit in storage" note.
func (k IntegerKind) Bounds() (min, max int64) {
	switch k {
	case KindInt:
		return math.MinInt32, math.MaxInt32
	case KindLong:
		return math.MinInt64, math.MaxInt64
	case KindShort:
		return math.MinInt16, math.MaxInt16
	case KindByte:
		return math.MinInt8, math.MaxInt8
	case KindUnsignedLong:
		return 0, math.MaxInt64
	case KindUnsignedInt:
		return 0, math.MaxUint32
	case KindUnsignedShort:
		return 0, math.MaxUint16
	case KindUnsignedByte:
		return 0, math.MaxUint8
	case KindNonNegativeInteger:
		return 0, math.MaxInt64
	case KindPositiveInteger:
		return 1, math.MaxInt64
	case KindNonPositiveInteger:
		return math.MinInt64, 0
	case KindNegativeInteger:
		return math.MinInt64, -1
	default: // KindInteger
		return math.MinInt64, math.MaxInt64
	}
}

// Integer is a value of the integer family, tagged with the subtype it was
// validated against.
type Integer struct {
	Value int64
	Kind  IntegerKind
}

// NewInteger validates v against kind's range (spec §4.1: "narrower
// subtypes validated at construction").
func NewInteger(v int64, kind IntegerKind) Result[Integer] {
	min, max := kind.Bounds()
	if v < min || v > max {
		return Domain[Integer]()
	}
	return Ok(Integer{Value: v, Kind: kind})
}

// Add, Sub, Mul, Div are checked against int64 overflow (Div also against
// a zero divisor); the result is always KindInteger (xsd:integer),
// whatever the operand kinds.
func (i Integer) Add(o Integer) Result[Integer] { return checkedInt(i.Value, o.Value, addOverflows, func(a, b int64) int64 { return a + b }) }
func (i Integer) Sub(o Integer) Result[Integer] { return checkedInt(i.Value, o.Value, subOverflows, func(a, b int64) int64 { return a - b }) }
func (i Integer) Mul(o Integer) Result[Integer] { return checkedInt(i.Value, o.Value, mulOverflows, func(a, b int64) int64 { return a * b }) }

func (i Integer) Div(o Integer) Result[Integer] {
	if o.Value == 0 {
		return DivByZero[Integer]()
	}
	if i.Value == math.MinInt64 && o.Value == -1 {
		return Overflow[Integer]()
	}
	return Ok(Integer{Value: i.Value / o.Value, Kind: KindInteger})
}

func checkedInt(a, b int64, overflows func(a, b int64) bool, apply func(a, b int64) int64) Result[Integer] {
	if overflows(a, b) {
		return Overflow[Integer]()
	}
	return Ok(Integer{Value: apply(a, b), Kind: KindInteger})
}

func addOverflows(a, b int64) bool {
	c := a + b
	return ((a ^ c) & (b ^ c)) < 0
}

func subOverflows(a, b int64) bool {
	c := a - b
	return ((a ^ b) & (a ^ c)) < 0
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	c := a * b
	return c/b != a
}

// ParseIntLexical parses the canonical xsd integer lexical grammar
// (optionally signed decimal digits, no fractional part) and validates the
// result against kind's subtype range.
func ParseIntLexical(s string, kind IntegerKind) Result[Integer] {
	if s == "" {
		return Domain[Integer]()
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Domain[Integer]()
	}
	return NewInteger(v, kind)
}

// integerKindByIRI maps an xsd integer-family datatype IRI to its Kind;
// used by the columnar builder's literal classifier to recover the
// subtype that the dense union's single FieldInteger column elides.
var integerKindByIRI = map[string]IntegerKind{
	"http://www.w3.org/2001/XMLSchema#integer":            KindInteger,
	"http://www.w3.org/2001/XMLSchema#int":                KindInt,
	"http://www.w3.org/2001/XMLSchema#long":                KindLong,
	"http://www.w3.org/2001/XMLSchema#short":               KindShort,
	"http://www.w3.org/2001/XMLSchema#byte":                KindByte,
	"http://www.w3.org/2001/XMLSchema#unsignedLong":        KindUnsignedLong,
	"http://www.w3.org/2001/XMLSchema#unsignedInt":         KindUnsignedInt,
	"http://www.w3.org/2001/XMLSchema#unsignedShort":       KindUnsignedShort,
	"http://www.w3.org/2001/XMLSchema#unsignedByte":        KindUnsignedByte,
	"http://www.w3.org/2001/XMLSchema#nonNegativeInteger":  KindNonNegativeInteger,
	"http://www.w3.org/2001/XMLSchema#positiveInteger":     KindPositiveInteger,
	"http://www.w3.org/2001/XMLSchema#nonPositiveInteger":  KindNonPositiveInteger,
	"http://www.w3.org/2001/XMLSchema#negativeInteger":     KindNegativeInteger,
}

// IntegerKindFromIRI looks up the subtype for a datatype IRI, defaulting
// to KindInteger for anything unrecognized.
func IntegerKindFromIRI(iri string) IntegerKind {
	if k, ok := integerKindByIRI[iri]; ok {
		return k
	}
	return KindInteger
}

// CastToInt64 truncates a float/double/decimal-derived value to int64,
// reporting StatusDomainError when it is NaN or doesn't fit.
func CastToInt64(f float64) Result[int64] {
	if f != f || f >= math.MaxInt64 || f <= math.MinInt64 {
		return Domain[int64]()
	}
	return Ok(int64(f))
}
