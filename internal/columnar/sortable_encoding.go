package columnar

import (
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// sortTier fixes the top-level ordering spec §4.4 (OrderBy) requires:
// unbound first, then blank nodes, then IRIs, then literals. Within the
// literal tier, numeric and date/time types are bit-re-encoded so that
// byte-lex order matches numeric order; other literals fall back to
// lexical-value order, which is a superset of what spec §9 commits to
// (exact cross-datatype literal order beyond numeric/date-time is left
// implementation-defined, consistent with SPARQL 1.1's own "implementation
// dependent but stable" clause for ORDER BY across incomparable types).
type sortTier byte

const (
	tierUnbound sortTier = iota
	tierBlank
	tierNamed
	tierNumeric
	tierDateTime
	tierBoolean
	tierString
	tierOther
)

// SortKey computes the byte-comparable sortable encoding of a single term
// (spec §3.2.4): lexicographic comparison of SortKey(a) and SortKey(b)
// agrees with SPARQL's ORDER BY over a and b.
func SortKey(t term.Term) []byte {
	switch t.Kind {
	case term.KindBlankNode:
		return append([]byte{byte(tierBlank)}, []byte(t.Blank.ID)...)
	case term.KindNamedNode:
		return append([]byte{byte(tierNamed)}, []byte(t.Named.IRI)...)
	case term.KindLiteral:
		return literalSortKey(t.Literal)
	default:
		return []byte{byte(tierUnbound)}
	}
}

func literalSortKey(lit term.Literal) []byte {
	switch {
	case lit.Datatype == term.XSDString || lit.Datatype == term.RDFLangString || lit.Datatype == "":
		key := append([]byte{byte(tierString)}, []byte(lit.Lexical)...)
		key = append(key, 0)
		return append(key, []byte(lit.Language)...)
	case lit.Datatype == xsdBoolean:
		r := xsd.ParseBoolean(lit.Lexical)
		b := byte(0)
		if r.IsOK() && r.Value {
			b = 1
		}
		return []byte{byte(tierBoolean), b}
	case isNumericDatatype(lit.Datatype):
		switch lit.Lexical {
		case "-INF":
			return []byte{byte(tierNumeric), 0x00}
		case "INF", "+INF":
			return []byte{byte(tierNumeric), 0xff}
		case "NaN":
			return []byte{byte(tierNumeric), 0x01}
		}
		if r := xsd.ParseDecimal(lit.Lexical); r.IsOK() {
			return append([]byte{byte(tierNumeric)}, decimalSortBytes(r.Value)...)
		}
		return fallbackOther(lit)
	case lit.Datatype == xsdDateTime || lit.Datatype == xsdDate || lit.Datatype == xsdTime:
		var r xsd.Result[xsd.DateTime]
		switch lit.Datatype {
		case xsdDateTime:
			r = xsd.ParseDateTime(lit.Lexical)
		case xsdDate:
			r = xsd.ParseDate(lit.Lexical)
		default:
			r = xsd.ParseTime(lit.Lexical)
		}
		if r.IsOK() {
			return append([]byte{byte(tierDateTime)}, decimalSortBytes(r.Value.Seconds)...)
		}
		return fallbackOther(lit)
	default:
		return fallbackOther(lit)
	}
}

func fallbackOther(lit term.Literal) []byte {
	key := append([]byte{byte(tierOther)}, []byte(lit.Datatype)...)
	key = append(key, 0)
	return append(key, []byte(lit.Lexical)...)
}

func isNumericDatatype(dt string) bool {
	if dt == xsdInt || dt == xsdInteger || dt == xsdFloat || dt == xsdDouble || dt == xsdDecimal {
		return true
	}
	return integerSubtypes[dt]
}

// decimalSortBytes bit-re-encodes a Decimal128 magnitude so that
// byte-lexicographic order matches numeric order: flip the sign bit of
// the two's-complement form, which for a 128-bit signed integer turns
// "most negative first" two's-complement wraparound into a monotonic
// unsigned order.
func decimalSortBytes(d xsd.Decimal128) []byte {
	b := d.Bytes()
	b[0] ^= 0x80
	return b[:]
}
