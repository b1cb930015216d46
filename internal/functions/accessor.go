package functions

import "github.com/graphfusion/graphfusion-go/internal/term"

// Str returns the lexical/string form of t: an IRI's string, a literal's
// lexical value (spec §4.3 STR). Blank nodes have no defined STR form and
// report ok=false.
func Str(t term.Term) (term.Term, bool) {
	switch t.Kind {
	case term.KindNamedNode:
		return term.NewSimpleLiteral(t.Named.IRI), true
	case term.KindLiteral:
		return term.NewSimpleLiteral(t.Literal.Lexical), true
	default:
		return term.Term{}, false
	}
}

// Lang returns the language tag of a literal, or "" for an untagged
// literal; non-literals fail (spec §4.3 LANG).
func Lang(t term.Term) (term.Term, bool) {
	if t.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	return term.NewSimpleLiteral(t.Literal.Language), true
}

// Datatype returns the literal's datatype IRI; non-literals fail (spec
// §4.3 DATATYPE). A plain literal with a language tag has no defined
// DATATYPE per SPARQL 1.0 and is reported as rdf:langString per 1.1.
func Datatype(t term.Term) (term.Term, bool) {
	if t.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	dt := t.Literal.Datatype
	if dt == "" {
		dt = term.XSDString
	}
	named, err := term.NewNamedNode(dt)
	if err != nil {
		return term.Term{}, false
	}
	return named, true
}
