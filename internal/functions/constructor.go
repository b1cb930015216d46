package functions

import (
	"net/url"

	"github.com/graphfusion/graphfusion-go/internal/term"
)

// MakeIRI builds a named node from a literal or IRI argument, resolved
// against base if the argument is relative (spec §4.3 IRI/URI). A
// malformed result is a per-row failure, not a batch error.
func MakeIRI(arg term.Term, base string) (term.Term, bool) {
	var lexical string
	switch arg.Kind {
	case term.KindNamedNode:
		lexical = arg.Named.IRI
	case term.KindLiteral:
		lexical = arg.Literal.Lexical
	default:
		return term.Term{}, false
	}
	resolved := lexical
	if base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return term.Term{}, false
		}
		ref, err := url.Parse(lexical)
		if err != nil {
			return term.Term{}, false
		}
		resolved = b.ResolveReference(ref).String()
	}
	out, err := term.NewNamedNode(resolved)
	if err != nil {
		return term.Term{}, false
	}
	return out, true
}

// StrDT builds a typed literal STRDT(lexicalForm, datatypeIRI), spec
// §4.3. Both arguments must be the right shape or the call fails.
func StrDT(lexicalForm, datatype term.Term) (term.Term, bool) {
	if lexicalForm.Kind != term.KindLiteral || datatype.Kind != term.KindNamedNode {
		return term.Term{}, false
	}
	return term.NewTypedLiteral(lexicalForm.Literal.Lexical, datatype.Named.IRI), true
}

// StrLang builds a language-tagged literal STRLANG(lexicalForm, langTag).
func StrLang(lexicalForm, lang term.Term) (term.Term, bool) {
	if lexicalForm.Kind != term.KindLiteral || lang.Kind != term.KindLiteral {
		return term.Term{}, false
	}
	if lang.Literal.Lexical == "" {
		return term.Term{}, false
	}
	return term.NewLangLiteral(lexicalForm.Literal.Lexical, lang.Literal.Lexical), true
}
