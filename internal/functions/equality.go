package functions

import (
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// SameTerm is ENC_SAME_TERM: RDF term identity, spec §4.3.
func SameTerm(a, b term.Term) bool { return a.Eq(b) }

// ValueEq is ENC_EQ: SPARQL '=' value equality. Two IRIs/blank nodes are
// equal iff SameTerm; two literals are equal iff their typed values
// compare equal under the relevant XSD value space; comparing
// incompatible literal types (e.g. string vs dateTime) is a per-row type
// error (ok=false), matching SPARQL's "type error" semantics for '='.
func ValueEq(a, b term.Term) (bool, bool) {
	if a.Kind != b.Kind {
		return false, a.Kind == term.KindLiteral && b.Kind == term.KindLiteral
	}
	if a.Kind != term.KindLiteral {
		return a.Eq(b), true
	}
	la, lb := a.Literal, b.Literal
	switch {
	case la.Datatype == term.RDFLangString || lb.Datatype == term.RDFLangString:
		if la.Datatype != lb.Datatype {
			return false, false
		}
		return la.Lexical == lb.Lexical && la.Language == lb.Language, true
	case a.IsNumeric() && b.IsNumeric():
		return numericEq(la, lb)
	case la.Datatype == term.XSDString && lb.Datatype == term.XSDString:
		return la.Lexical == lb.Lexical, true
	case la.Datatype == "http://www.w3.org/2001/XMLSchema#boolean" && lb.Datatype == la.Datatype:
		ra, oka := xsd.ParseBoolean(la.Lexical).Get()
		rb, okb := xsd.ParseBoolean(lb.Lexical).Get()
		if !oka || !okb {
			return false, false
		}
		return ra == rb, true
	case la.Datatype == lb.Datatype && isTemporalDatatype(la.Datatype):
		return temporalEq(la, lb)
	case la.Datatype == lb.Datatype:
		return la.Lexical == lb.Lexical, true
	default:
		return false, false
	}
}

// Compare is ENC_LESS_THAN's building block, covering '<', '<=', '>'
// and '>=': numeric and temporal literals compare by value, plain and
// xsd:string literals compare lexically. Comparing IRIs, blank nodes,
// or incompatible literal types is a type error (ok=false), mirroring
// ValueEq's boundary.
func Compare(a, b term.Term) (int, bool) {
	if a.Kind != term.KindLiteral || b.Kind != term.KindLiteral {
		return 0, false
	}
	la, lb := a.Literal, b.Literal
	switch {
	case a.IsNumeric() && b.IsNumeric():
		da, oka := literalAsDecimal(la)
		db, okb := literalAsDecimal(lb)
		if !oka || !okb {
			return 0, false
		}
		return da.Cmp(db), true
	case la.Datatype == lb.Datatype && isTemporalDatatype(la.Datatype):
		return temporalCompare(la, lb)
	case la.Datatype == term.XSDString && lb.Datatype == term.XSDString:
		return lexicalCompare(la.Lexical, lb.Lexical), true
	case la.Datatype == term.RDFLangString && lb.Datatype == term.RDFLangString && la.Language == lb.Language:
		return lexicalCompare(la.Lexical, lb.Lexical), true
	default:
		return 0, false
	}
}

func lexicalCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func temporalCompare(a, b term.Literal) (int, bool) {
	var ra, rb xsd.Result[xsd.DateTime]
	switch a.Datatype {
	case "http://www.w3.org/2001/XMLSchema#dateTime":
		ra, rb = xsd.ParseDateTime(a.Lexical), xsd.ParseDateTime(b.Lexical)
	case "http://www.w3.org/2001/XMLSchema#date":
		ra, rb = xsd.ParseDate(a.Lexical), xsd.ParseDate(b.Lexical)
	default:
		ra, rb = xsd.ParseTime(a.Lexical), xsd.ParseTime(b.Lexical)
	}
	va, oka := ra.Get()
	vb, okb := rb.Get()
	if !oka || !okb {
		return 0, false
	}
	return va.Compare(vb), true
}

func isTemporalDatatype(dt string) bool {
	switch dt {
	case "http://www.w3.org/2001/XMLSchema#dateTime",
		"http://www.w3.org/2001/XMLSchema#date",
		"http://www.w3.org/2001/XMLSchema#time":
		return true
	default:
		return false
	}
}

func temporalEq(a, b term.Literal) (bool, bool) {
	var ra, rb xsd.Result[xsd.DateTime]
	switch a.Datatype {
	case "http://www.w3.org/2001/XMLSchema#dateTime":
		ra, rb = xsd.ParseDateTime(a.Lexical), xsd.ParseDateTime(b.Lexical)
	case "http://www.w3.org/2001/XMLSchema#date":
		ra, rb = xsd.ParseDate(a.Lexical), xsd.ParseDate(b.Lexical)
	default:
		ra, rb = xsd.ParseTime(a.Lexical), xsd.ParseTime(b.Lexical)
	}
	va, oka := ra.Get()
	vb, okb := rb.Get()
	if !oka || !okb {
		return false, false
	}
	return va.Eq(vb), true
}

func numericEq(a, b term.Literal) (bool, bool) {
	da, oka := literalAsDecimal(a)
	db, okb := literalAsDecimal(b)
	if !oka || !okb {
		return false, false
	}
	return da.Cmp(db) == 0, true
}

func literalAsDecimal(l term.Literal) (xsd.Decimal128, bool) {
	switch l.Datatype {
	case "http://www.w3.org/2001/XMLSchema#float":
		f, ok := xsd.ParseFloat32(l.Lexical).Get()
		if !ok {
			return xsd.Zero, false
		}
		return xsd.FromFloat64(float64(f)).Get()
	case "http://www.w3.org/2001/XMLSchema#double":
		f, ok := xsd.ParseFloat64(l.Lexical).Get()
		if !ok {
			return xsd.Zero, false
		}
		return xsd.FromFloat64(f).Get()
	default:
		return xsd.ParseDecimal(l.Lexical).Get()
	}
}
