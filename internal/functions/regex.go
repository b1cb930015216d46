package functions

import (
	"regexp"
	"strings"

	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Regex implements SPARQL's REGEX(text, pattern[, flags]) (spec §4.3) on
// top of the standard library's RE2 engine. XPath regex and RE2 differ in
// a few corners (backreferences, possessive quantifiers) that no library
// in the example pack addresses either; regexp is the correct default
// here rather than a gap (see DESIGN.md).
func Regex(text, pattern, flags term.Term, hasFlags bool) (bool, bool) {
	s, ok := literalString(text)
	if !ok {
		return false, false
	}
	p, ok := literalString(pattern)
	if !ok {
		return false, false
	}
	f := ""
	if hasFlags {
		f, ok = literalString(flags)
		if !ok {
			return false, false
		}
	}
	re, err := compileXPathRegex(p, f)
	if err != nil {
		return false, false
	}
	return re.MatchString(s), true
}

// Replace implements REPLACE(text, pattern, replacement[, flags]).
// Backreferences in replacement use XPath's $1 syntax; regexp.ReplaceAll
// expects ${1}, so Replace rewrites the syntax before delegating.
func Replace(text, pattern, replacement, flags term.Term, hasFlags bool) (term.Term, bool) {
	s, ok := literalString(text)
	if !ok {
		return term.Term{}, false
	}
	p, ok := literalString(pattern)
	if !ok {
		return term.Term{}, false
	}
	r, ok := literalString(replacement)
	if !ok {
		return term.Term{}, false
	}
	f := ""
	if hasFlags {
		f, ok = literalString(flags)
		if !ok {
			return term.Term{}, false
		}
	}
	re, err := compileXPathRegex(p, f)
	if err != nil {
		return term.Term{}, false
	}
	out := re.ReplaceAllString(s, xpathToGoReplacement(r))
	return reLiteral(text, out), true
}

func compileXPathRegex(pattern, flags string) (*regexp.Regexp, error) {
	var sb strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 's', 'm':
			sb.WriteRune(f)
		case 'x':
			// Go's regexp has no literal "extended" mode; strip
			// unescaped whitespace ourselves before compiling.
			pattern = stripExtendedWhitespace(pattern)
		}
	}
	if sb.Len() > 0 {
		return regexp.Compile("(?" + sb.String() + ")" + pattern)
	}
	return regexp.Compile(pattern)
}

func stripExtendedWhitespace(pattern string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
		case r == ' ' || r == '\t' || r == '\n':
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func xpathToGoReplacement(r string) string {
	var sb strings.Builder
	for i := 0; i < len(r); i++ {
		if r[i] == '$' && i+1 < len(r) && r[i+1] >= '0' && r[i+1] <= '9' {
			j := i + 1
			for j < len(r) && r[j] >= '0' && r[j] <= '9' {
				j++
			}
			sb.WriteString("${" + r[i+1:j] + "}")
			i = j - 1
			continue
		}
		sb.WriteByte(r[i])
	}
	return sb.String()
}
