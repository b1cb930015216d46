package functions

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/graphfusion/graphfusion-go/internal/term"
)

// StrLen returns the character (not byte) length of a string literal's
// lexical value (spec §4.3 STRLEN).
func StrLen(a term.Term) (term.Term, bool) {
	s, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	n := utf8.RuneCountInString(s)
	return term.NewTypedLiteral(itoa(n), "http://www.w3.org/2001/XMLSchema#integer"), true
}

// Substr implements 1-based SUBSTR(source, start[, length]); length < 0
// behaves as "to the end".
func Substr(a term.Term, start int, length int, hasLength bool) (term.Term, bool) {
	s, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	runes := []rune(s)
	i := start - 1
	if i < 0 {
		i = 0
	}
	if i > len(runes) {
		i = len(runes)
	}
	end := len(runes)
	if hasLength {
		if length < 0 {
			length = 0
		}
		if start-1+length < end {
			end = start - 1 + length
		}
		if end < i {
			end = i
		}
	}
	return reLiteral(a, string(runes[i:end])), true
}

// UCase, LCase apply Unicode case mapping (spec §4.3; uses
// golang.org/x/text/cases rather than strings.ToUpper so locale-aware
// casing is available once a language tag is threaded through).
func UCase(a term.Term) (term.Term, bool) {
	s, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	return reLiteral(a, cases.Upper(language.Und).String(s)), true
}

func LCase(a term.Term) (term.Term, bool) {
	s, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	return reLiteral(a, cases.Lower(language.Und).String(s)), true
}

// StrStarts, StrEnds, Contains implement the three string-matching
// predicates (spec §4.3); both arguments must share a compatible
// string-literal shape (SPARQL 1.1 §17.4.2).
func StrStarts(a, b term.Term) (bool, bool) {
	return stringPredicate(a, b, strings.HasPrefix)
}

func StrEnds(a, b term.Term) (bool, bool) {
	return stringPredicate(a, b, strings.HasSuffix)
}

func Contains(a, b term.Term) (bool, bool) {
	return stringPredicate(a, b, strings.Contains)
}

func stringPredicate(a, b term.Term, pred func(s, sub string) bool) (bool, bool) {
	sa, ok := literalString(a)
	if !ok {
		return false, false
	}
	sb, ok := literalString(b)
	if !ok {
		return false, false
	}
	if !compatibleArgs(a, b) {
		return false, false
	}
	return pred(sa, sb), true
}

// compatibleArgs enforces SPARQL's string-argument compatibility rule:
// same language tag, or the second argument has no language tag.
func compatibleArgs(a, b term.Term) bool {
	if a.Kind != term.KindLiteral || b.Kind != term.KindLiteral {
		return false
	}
	if b.Literal.Language == "" {
		return true
	}
	return a.Literal.Language == b.Literal.Language
}

// StrBefore, StrAfter implement the SPARQL 1.1 substring split functions.
func StrBefore(a, b term.Term) (term.Term, bool) {
	sa, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	sb, ok := literalString(b)
	if !ok {
		return term.Term{}, false
	}
	if sb == "" {
		return reLiteral(a, ""), true
	}
	idx := strings.Index(sa, sb)
	if idx < 0 {
		return term.NewSimpleLiteral(""), true
	}
	return reLiteral(a, sa[:idx]), true
}

func StrAfter(a, b term.Term) (term.Term, bool) {
	sa, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	sb, ok := literalString(b)
	if !ok {
		return term.Term{}, false
	}
	if sb == "" {
		return reLiteral(a, sa), true
	}
	idx := strings.Index(sa, sb)
	if idx < 0 {
		return term.NewSimpleLiteral(""), true
	}
	return reLiteral(a, sa[idx+len(sb):]), true
}

// EncodeForURI percent-encodes a string for safe embedding in a URI path
// segment (spec §4.3).
func EncodeForURI(a term.Term) (term.Term, bool) {
	s, ok := literalString(a)
	if !ok {
		return term.Term{}, false
	}
	return term.NewSimpleLiteral(strings.ReplaceAll(url.QueryEscape(s), "+", "%20")), true
}

// LangMatches implements the BCP-47-ish language-range matching of spec
// §4.3, case-insensitively via golang.org/x/text/cases.
func LangMatches(langTag, langRange term.Term) (bool, bool) {
	lt, ok := literalString(langTag)
	if !ok {
		return false, false
	}
	lr, ok := literalString(langRange)
	if !ok {
		return false, false
	}
	fold := cases.Fold()
	lt, lr = fold.String(lt), fold.String(lr)
	if lr == "*" {
		return lt != "", true
	}
	if lt == lr {
		return true, true
	}
	return strings.HasPrefix(lt, lr+"-"), true
}

// Concat joins any number of string-literal arguments; the result's
// language tag is preserved only if every argument shares the same one
// (spec §4.3 CONCAT / SPARQL 1.1 §17.4.2.1).
func Concat(args []term.Term) (term.Term, bool) {
	if len(args) == 0 {
		return term.NewSimpleLiteral(""), true
	}
	var b strings.Builder
	lang := args[0].Literal.Language
	sameLang := true
	for _, a := range args {
		s, ok := literalString(a)
		if !ok {
			return term.Term{}, false
		}
		b.WriteString(s)
		if a.Literal.Language != lang {
			sameLang = false
		}
	}
	if sameLang && lang != "" {
		return term.NewLangLiteral(b.String(), lang), true
	}
	return term.NewSimpleLiteral(b.String()), true
}

// UUID, StrUUID generate a fresh UUIDv4 as a urn:uuid: IRI or a plain
// string respectively (spec §4.3), via github.com/google/uuid.
func UUID() term.Term {
	n, err := term.NewNamedNode("urn:uuid:" + uuid.NewString())
	if err != nil {
		return term.Term{}
	}
	return n
}

func StrUUID() term.Term { return term.NewSimpleLiteral(uuid.NewString()) }

func literalString(t term.Term) (string, bool) {
	if t.Kind != term.KindLiteral {
		return "", false
	}
	if t.Literal.Datatype != term.XSDString && t.Literal.Datatype != term.RDFLangString && t.Literal.Datatype != "" {
		return "", false
	}
	return t.Literal.Lexical, true
}

// reLiteral rebuilds a literal with new lexical text, preserving a's
// language tag if it had one (spec §17.4.2 result forms).
func reLiteral(a term.Term, lexical string) term.Term {
	if a.Kind == term.KindLiteral && a.Literal.Language != "" {
		return term.NewLangLiteral(lexical, a.Literal.Language)
	}
	return term.NewSimpleLiteral(lexical)
}
