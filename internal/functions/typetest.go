package functions

import "github.com/graphfusion/graphfusion-go/internal/term"

// IsIRI reports whether t is a named node (isIRI/isURI, spec §4.3).
func IsIRI(t term.Term) bool { return t.Kind == term.KindNamedNode }

// IsBlank reports whether t is a blank node.
func IsBlank(t term.Term) bool { return t.Kind == term.KindBlankNode }

// IsLiteral reports whether t is a literal.
func IsLiteral(t term.Term) bool { return t.Kind == term.KindLiteral }

// IsNumeric reports whether t is a literal of a recognized numeric
// datatype (spec §4.3).
func IsNumeric(t term.Term) bool { return t.IsNumeric() }
