package functions

import (
	"strconv"

	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// Cast function-name IRIs, spec §4.3's closing bullet ("identified by
// function-name IRI").
const (
	CastBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	CastInt      = "http://www.w3.org/2001/XMLSchema#int"
	CastInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	CastFloat    = "http://www.w3.org/2001/XMLSchema#float"
	CastDouble   = "http://www.w3.org/2001/XMLSchema#double"
	CastDecimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	CastDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	CastString   = "http://www.w3.org/2001/XMLSchema#string"
)

// Cast converts arg to the target datatype, per the XPath cast rules
// SPARQL 1.1 §17.4.1.9 inherits. A cast that cannot be performed (wrong
// source shape, unparseable lexical form, out-of-range numeric) is a
// per-row failure (ok=false), not a batch error.
func Cast(target string, arg term.Term) (term.Term, bool) {
	switch target {
	case CastString:
		return castToString(arg)
	case CastBoolean:
		return castToBoolean(arg)
	case CastInt, CastInteger:
		return castToInteger(arg, target)
	case CastFloat:
		return castToFloatKind(arg, CastFloat)
	case CastDouble:
		return castToFloatKind(arg, CastDouble)
	case CastDecimal:
		return castToDecimal(arg)
	case CastDateTime:
		return castToDateTime(arg)
	default:
		return term.Term{}, false
	}
}

func castToString(arg term.Term) (term.Term, bool) {
	switch arg.Kind {
	case term.KindLiteral:
		return term.NewSimpleLiteral(arg.Literal.Lexical), true
	case term.KindNamedNode:
		return term.NewSimpleLiteral(arg.Named.IRI), true
	default:
		return term.Term{}, false
	}
}

func castToBoolean(arg term.Term) (term.Term, bool) {
	if arg.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	switch {
	case arg.Literal.Datatype == CastBoolean:
		return arg, true
	case arg.IsNumeric():
		d, ok := literalAsDecimal(arg.Literal)
		if !ok {
			return term.Term{}, false
		}
		return term.NewTypedLiteral(xsd.FormatBoolean(!d.IsZero()), CastBoolean), true
	case arg.Literal.Datatype == term.XSDString || arg.Literal.Datatype == "":
		r := xsd.ParseBoolean(arg.Literal.Lexical)
		if !r.IsOK() {
			return term.Term{}, false
		}
		return term.NewTypedLiteral(xsd.FormatBoolean(r.Value), CastBoolean), true
	default:
		return term.Term{}, false
	}
}

func castToInteger(arg term.Term, target string) (term.Term, bool) {
	if arg.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	kind := xsd.KindInteger
	if target == CastInt {
		kind = xsd.KindInt
	}
	switch {
	case arg.IsNumeric():
		d, ok := literalAsDecimal(arg.Literal)
		if !ok {
			return term.Term{}, false
		}
		n, ok := xsd.CastToInt64(d.ToFloat64()).Get()
		if !ok {
			return term.Term{}, false
		}
		if r := xsd.NewInteger(n, kind); r.IsOK() {
			return term.NewTypedLiteral(strconv.FormatInt(n, 10), target), true
		}
		return term.Term{}, false
	case arg.Literal.Datatype == term.XSDString || arg.Literal.Datatype == "":
		r := xsd.ParseIntLexical(arg.Literal.Lexical, kind)
		if !r.IsOK() {
			return term.Term{}, false
		}
		return term.NewTypedLiteral(strconv.FormatInt(r.Value.Value, 10), target), true
	case arg.Literal.Datatype == CastBoolean:
		v, ok := xsd.ParseBoolean(arg.Literal.Lexical).Get()
		if !ok {
			return term.Term{}, false
		}
		n := int64(0)
		if v {
			n = 1
		}
		return term.NewTypedLiteral(strconv.FormatInt(n, 10), target), true
	default:
		return term.Term{}, false
	}
}

func castToFloatKind(arg term.Term, target string) (term.Term, bool) {
	if arg.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	var f float64
	switch {
	case arg.IsNumeric():
		d, ok := literalAsDecimal(arg.Literal)
		if !ok {
			return term.Term{}, false
		}
		f = d.ToFloat64()
	case arg.Literal.Datatype == term.XSDString || arg.Literal.Datatype == "":
		v, ok := xsd.ParseFloat64(arg.Literal.Lexical).Get()
		if !ok {
			return term.Term{}, false
		}
		f = v
	case arg.Literal.Datatype == CastBoolean:
		v, ok := xsd.ParseBoolean(arg.Literal.Lexical).Get()
		if !ok {
			return term.Term{}, false
		}
		if v {
			f = 1
		}
	default:
		return term.Term{}, false
	}
	bitSize := 64
	if target == CastFloat {
		bitSize = 32
	}
	return term.NewTypedLiteral(xsd.FormatFloat(f, bitSize), target), true
}

func castToDecimal(arg term.Term) (term.Term, bool) {
	if arg.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	switch {
	case arg.IsNumeric():
		d, ok := literalAsDecimal(arg.Literal)
		if !ok {
			return term.Term{}, false
		}
		return term.NewTypedLiteral(d.String(), CastDecimal), true
	case arg.Literal.Datatype == term.XSDString || arg.Literal.Datatype == "":
		r := xsd.ParseDecimal(arg.Literal.Lexical)
		if !r.IsOK() {
			return term.Term{}, false
		}
		return term.NewTypedLiteral(r.Value.String(), CastDecimal), true
	default:
		return term.Term{}, false
	}
}

func castToDateTime(arg term.Term) (term.Term, bool) {
	if arg.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	if arg.Literal.Datatype != term.XSDString && arg.Literal.Datatype != "" && arg.Literal.Datatype != CastDateTime {
		return term.Term{}, false
	}
	r := xsd.ParseDateTime(arg.Literal.Lexical)
	if !r.IsOK() {
		return term.Term{}, false
	}
	return term.NewTypedLiteral(r.Value.String(), CastDateTime), true
}
