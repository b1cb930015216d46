package functions

import (
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// promotedDatatype returns the datatype IRI that a binary numeric
// operator's result carries, per the int -> integer -> decimal -> float
// -> double lattice of spec §4.3.
func promotedDatatype(a, b term.Literal) (string, bool) {
	ra, aok := term.NumericPromotionRank[a.Datatype]
	rb, bok := term.NumericPromotionRank[b.Datatype]
	if !aok || !bok {
		return "", false
	}
	if ra >= rb {
		return a.Datatype, true
	}
	return b.Datatype, true
}

func binaryNumeric(a, b term.Term, op func(x, y xsd.Decimal128) xsd.Result[xsd.Decimal128]) (term.Term, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return term.Term{}, false
	}
	dt, ok := promotedDatatype(a.Literal, b.Literal)
	if !ok {
		return term.Term{}, false
	}
	da, oka := literalAsDecimal(a.Literal)
	db, okb := literalAsDecimal(b.Literal)
	if !oka || !okb {
		return term.Term{}, false
	}
	r := op(da, db)
	if !r.IsOK() {
		return term.Term{}, false
	}
	return decimalAsLiteral(r.Value, dt), true
}

func decimalAsLiteral(d xsd.Decimal128, datatype string) term.Term {
	switch datatype {
	case "http://www.w3.org/2001/XMLSchema#float":
		return term.NewTypedLiteral(xsd.FormatFloat(d.ToFloat64(), 32), datatype)
	case "http://www.w3.org/2001/XMLSchema#double":
		return term.NewTypedLiteral(xsd.FormatFloat(d.ToFloat64(), 64), datatype)
	default:
		return term.NewTypedLiteral(d.String(), datatype)
	}
}

// Add, Sub, Mul, Div implement the four arithmetic operators with the
// numeric promotion lattice and checked Decimal128 arithmetic (spec
// §4.3, §4.1).
func Add(a, b term.Term) (term.Term, bool) {
	return binaryNumeric(a, b, func(x, y xsd.Decimal128) xsd.Result[xsd.Decimal128] { return x.Add(y) })
}

func Sub(a, b term.Term) (term.Term, bool) {
	return binaryNumeric(a, b, func(x, y xsd.Decimal128) xsd.Result[xsd.Decimal128] { return x.Sub(y) })
}

func Mul(a, b term.Term) (term.Term, bool) {
	return binaryNumeric(a, b, func(x, y xsd.Decimal128) xsd.Result[xsd.Decimal128] { return x.Mul(y) })
}

func Div(a, b term.Term) (term.Term, bool) {
	return binaryNumeric(a, b, func(x, y xsd.Decimal128) xsd.Result[xsd.Decimal128] { return x.Div(y) })
}

// UnaryMinus negates a numeric literal.
func UnaryMinus(a term.Term) (term.Term, bool) {
	if !a.IsNumeric() {
		return term.Term{}, false
	}
	d, ok := literalAsDecimal(a.Literal)
	if !ok {
		return term.Term{}, false
	}
	r := d.Neg()
	if !r.IsOK() {
		return term.Term{}, false
	}
	return decimalAsLiteral(r.Value, a.Literal.Datatype), true
}

// UnaryPlus is the identity numeric operator, after validating a is
// numeric.
func UnaryPlus(a term.Term) (term.Term, bool) {
	if !a.IsNumeric() {
		return term.Term{}, false
	}
	return a, true
}

// Abs, Round, Ceil, Floor operate on a single numeric literal, preserving
// its datatype.
func Abs(a term.Term) (term.Term, bool) { return unaryNumeric(a, func(d xsd.Decimal128) xsd.Result[xsd.Decimal128] { return d.Abs() }) }
func Round(a term.Term) (term.Term, bool) {
	return unaryNumeric(a, func(d xsd.Decimal128) xsd.Result[xsd.Decimal128] { return d.Round() })
}
func Ceil(a term.Term) (term.Term, bool) {
	return unaryNumeric(a, func(d xsd.Decimal128) xsd.Result[xsd.Decimal128] { return d.Ceil() })
}
func Floor(a term.Term) (term.Term, bool) {
	return unaryNumeric(a, func(d xsd.Decimal128) xsd.Result[xsd.Decimal128] { return d.Floor() })
}

func unaryNumeric(a term.Term, op func(xsd.Decimal128) xsd.Result[xsd.Decimal128]) (term.Term, bool) {
	if !a.IsNumeric() {
		return term.Term{}, false
	}
	d, ok := literalAsDecimal(a.Literal)
	if !ok {
		return term.Term{}, false
	}
	r := op(d)
	if !r.IsOK() {
		return term.Term{}, false
	}
	return decimalAsLiteral(r.Value, a.Literal.Datatype), true
}

// Rand draws a fresh xsd:double in [0, 1) from the query's seeded
// source (spec §4.3 RAND).
func Rand(ctx *Context) term.Term {
	return term.NewTypedLiteral(xsd.FormatFloat(ctx.Rand.Float64(), 64), "http://www.w3.org/2001/XMLSchema#double")
}
