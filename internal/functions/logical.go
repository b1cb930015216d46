package functions

import "github.com/graphfusion/graphfusion-go/internal/term"

// EBV computes a term's effective boolean value per SPARQL 1.1 §17.2.2:
// booleans and numerics use their intrinsic truthiness, simple/xsd:string
// literals are true when non-empty and false when empty, everything else
// (IRIs, blank nodes, language-tagged and other literal types,
// non-parseable numerics) is a type error.
func EBV(t term.Term) (bool, bool) {
	if t.Kind != term.KindLiteral {
		return false, false
	}
	lit := t.Literal
	switch {
	case lit.Datatype == "http://www.w3.org/2001/XMLSchema#boolean":
		v, ok := parseBooleanLexical(lit.Lexical)
		return v, ok
	case t.IsNumeric():
		d, ok := literalAsDecimal(lit)
		if !ok {
			return false, false
		}
		return !d.IsZero(), true
	case lit.Datatype == term.XSDString || lit.Datatype == "":
		return lit.Lexical != "", true
	default:
		return false, false
	}
}

func parseBooleanLexical(s string) (bool, bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// And implements SPARQL three-valued AND: error propagates only when it
// cannot change the result (false dominates error, consistent with
// SPARQL 1.1 §17.3's truth table).
func And(a, b func() (bool, bool)) (bool, bool) {
	av, aok := a()
	if aok && !av {
		return false, true
	}
	bv, bok := b()
	if bok && !bv {
		return false, true
	}
	if !aok || !bok {
		return false, false
	}
	return av && bv, true
}

// Or implements SPARQL three-valued OR: true dominates error.
func Or(a, b func() (bool, bool)) (bool, bool) {
	av, aok := a()
	if aok && av {
		return true, true
	}
	bv, bok := b()
	if bok && bv {
		return true, true
	}
	if !aok || !bok {
		return false, false
	}
	return av || bv, true
}

// Not negates an EBV.
func Not(v, ok bool) (bool, bool) {
	if !ok {
		return false, false
	}
	return !v, true
}
