package sparql

import (
	"github.com/graphfusion/graphfusion-go/internal/functions"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Eval evaluates the wrapped AlgExpr against one solution, giving
// internal/engine/exec a way to run the Filter/Extend/LeftJoin
// expressions a logical.Expr only exposes opaquely (spec §4.3, §4.6).
// ok=false means the row failed to evaluate and the caller should treat
// it as unbound/excluded per spec §7's per-row failure policy.
func (b exprBridge) Eval(sol functions.Solution, ctx *functions.Context) (term.Term, bool) {
	return evalAlgExpr(b.Expr, sol, ctx)
}

func boolTerm(v bool) term.Term {
	if v {
		return term.NewTypedLiteral("true", functions.CastBoolean)
	}
	return term.NewTypedLiteral("false", functions.CastBoolean)
}

func evalAlgExpr(e AlgExpr, sol functions.Solution, ctx *functions.Context) (term.Term, bool) {
	switch ex := e.(type) {
	case ExprVar:
		t, ok := sol[ex.Name]
		return t, ok

	case ExprConst:
		return ex.Term, true

	case ExprBound:
		return boolTerm(functions.Bound(sol, ex.Var)), true

	case ExprNot:
		v, ok := evalAlgExpr(ex.Arg, sol, ctx)
		if !ok {
			return term.Term{}, false
		}
		b, ok := functions.EBV(v)
		if !ok {
			return term.Term{}, false
		}
		return boolTerm(!b), true

	case ExprAnd:
		v, ok := functions.And(
			func() (bool, bool) { return evalEBV(ex.Left, sol, ctx) },
			func() (bool, bool) { return evalEBV(ex.Right, sol, ctx) },
		)
		if !ok {
			return term.Term{}, false
		}
		return boolTerm(v), true

	case ExprOr:
		v, ok := functions.Or(
			func() (bool, bool) { return evalEBV(ex.Left, sol, ctx) },
			func() (bool, bool) { return evalEBV(ex.Right, sol, ctx) },
		)
		if !ok {
			return term.Term{}, false
		}
		return boolTerm(v), true

	case ExprCoalesce:
		candidates := make([]func() (term.Term, bool), len(ex.Args))
		for i, a := range ex.Args {
			a := a
			candidates[i] = func() (term.Term, bool) { return evalAlgExpr(a, sol, ctx) }
		}
		return functions.Coalesce(candidates...)

	case ExprCall:
		return evalCall(ex, sol, ctx)

	default:
		return term.Term{}, false
	}
}

func evalEBV(e AlgExpr, sol functions.Solution, ctx *functions.Context) (bool, bool) {
	v, ok := evalAlgExpr(e, sol, ctx)
	if !ok {
		return false, false
	}
	return functions.EBV(v)
}

func evalArgs(args []AlgExpr, sol functions.Solution, ctx *functions.Context) ([]term.Term, bool) {
	out := make([]term.Term, len(args))
	for i, a := range args {
		v, ok := evalAlgExpr(a, sol, ctx)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// evalCall dispatches the SPARQL built-in function families of spec
// §4.3 to internal/functions. IS_COMPATIBLE is the one pseudo-function
// that never reaches here in practice: by the time its wrapping Filter
// evaluates, the join operator has already excluded incompatible rows
// (see compatibilityFilter), so it is handled as a tautology rather than
// re-deriving two-sided solution state it no longer has access to.
func evalCall(ex ExprCall, sol functions.Solution, ctx *functions.Context) (term.Term, bool) {
	if ex.Func == "IS_COMPATIBLE" {
		return boolTerm(true), true
	}

	args, ok := evalArgs(ex.Args, sol, ctx)
	if !ok {
		return term.Term{}, false
	}

	switch ex.Func {
	case "STR":
		return call1(args, functions.Str)
	case "LANG":
		return call1(args, functions.Lang)
	case "DATATYPE":
		return call1(args, functions.Datatype)
	case "isIRI", "isURI":
		return call1Bool(args, functions.IsIRI)
	case "isBLANK":
		return call1Bool(args, functions.IsBlank)
	case "isLITERAL":
		return call1Bool(args, functions.IsLiteral)
	case "isNUMERIC":
		return call1Bool(args, functions.IsNumeric)
	case "SAMETERM":
		return call2Bool(args, functions.SameTerm)
	case "=":
		return call2BoolOk(args, functions.ValueEq)
	case "!=":
		return call2BoolOk(args, func(a, b term.Term) (bool, bool) {
			eq, ok := functions.ValueEq(a, b)
			return !eq, ok
		})
	case "<", "<=", ">", ">=":
		return compareCall(ex.Func, args)
	case "UCASE":
		return call1(args, functions.UCase)
	case "LCASE":
		return call1(args, functions.LCase)
	case "STRLEN":
		return call1(args, functions.StrLen)
	case "STRSTARTS":
		return call2BoolOk(args, functions.StrStarts)
	case "STRENDS":
		return call2BoolOk(args, functions.StrEnds)
	case "CONTAINS":
		return call2BoolOk(args, functions.Contains)
	case "STRBEFORE":
		return call2(args, functions.StrBefore)
	case "STRAFTER":
		return call2(args, functions.StrAfter)
	case "ENCODE_FOR_URI":
		return call1(args, functions.EncodeForURI)
	case "CONCAT":
		return functions.Concat(args)
	case "LANGMATCHES":
		return call2BoolOk(args, functions.LangMatches)
	case "ABS":
		return call1(args, functions.Abs)
	case "ROUND":
		return call1(args, functions.Round)
	case "CEIL":
		return call1(args, functions.Ceil)
	case "FLOOR":
		return call1(args, functions.Floor)
	case "+":
		return call2(args, functions.Add)
	case "-":
		if len(args) == 1 {
			return functions.UnaryMinus(args[0])
		}
		return call2(args, functions.Sub)
	case "*":
		return call2(args, functions.Mul)
	case "/":
		return call2(args, functions.Div)
	case "BNODE":
		if len(args) == 0 {
			return ctx.FreshBlankNode(), true
		}
		s, ok := call1(args, functions.Str)
		if !ok {
			return term.Term{}, false
		}
		return ctx.StableBlankNode(s.Literal.Lexical), true
	case "RAND":
		return functions.Rand(ctx), true
	case "NOW":
		return term.NewTypedLiteral(ctx.Now.Format("2006-01-02T15:04:05.999999999Z07:00"), "http://www.w3.org/2001/XMLSchema#dateTime"), true
	case "UUID":
		return functions.UUID(), true
	case "STRUUID":
		return functions.StrUUID(), true
	case "REGEX":
		if len(args) == 2 {
			return call2BoolOk(args, func(a, b term.Term) (bool, bool) { return functions.Regex(a, b, term.Term{}, false) })
		}
		return call3BoolOk(args, func(a, b, c term.Term) (bool, bool) { return functions.Regex(a, b, c, true) })
	case "REPLACE":
		if len(args) == 3 {
			return functions.Replace(args[0], args[1], args[2], term.Term{}, false)
		}
		return functions.Replace(args[0], args[1], args[2], args[3], true)
	case "SUBSTR":
		// SUBSTR's start/length are xsd:integer-valued AlgExprs, already
		// evaluated to literal terms; decode them to Go ints here rather
		// than widen functions.Substr's signature for one caller.
		start, ok := literalInt(args[1])
		if !ok {
			return term.Term{}, false
		}
		if len(args) == 2 {
			return functions.Substr(args[0], start, 0, false)
		}
		length, ok := literalInt(args[2])
		if !ok {
			return term.Term{}, false
		}
		return functions.Substr(args[0], start, length, true)
	case "IRI", "URI":
		return functions.MakeIRI(args[0], "")
	case "STRDT":
		return functions.StrDT(args[0], args[1])
	case "STRLANG":
		return functions.StrLang(args[0], args[1])
	default:
		return term.Term{}, false
	}
}

func literalInt(t term.Term) (int, bool) {
	if t.Kind != term.KindLiteral {
		return 0, false
	}
	n := 0
	neg := false
	for i, r := range t.Literal.Lexical {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func call1(args []term.Term, f func(term.Term) (term.Term, bool)) (term.Term, bool) {
	if len(args) != 1 {
		return term.Term{}, false
	}
	return f(args[0])
}

func call2(args []term.Term, f func(term.Term, term.Term) (term.Term, bool)) (term.Term, bool) {
	if len(args) != 2 {
		return term.Term{}, false
	}
	return f(args[0], args[1])
}

func call1Bool(args []term.Term, f func(term.Term) bool) (term.Term, bool) {
	if len(args) != 1 {
		return term.Term{}, false
	}
	return boolTerm(f(args[0])), true
}

func call2Bool(args []term.Term, f func(term.Term, term.Term) bool) (term.Term, bool) {
	if len(args) != 2 {
		return term.Term{}, false
	}
	return boolTerm(f(args[0], args[1])), true
}

func call2BoolOk(args []term.Term, f func(term.Term, term.Term) (bool, bool)) (term.Term, bool) {
	if len(args) != 2 {
		return term.Term{}, false
	}
	v, ok := f(args[0], args[1])
	if !ok {
		return term.Term{}, false
	}
	return boolTerm(v), true
}

func compareCall(op string, args []term.Term) (term.Term, bool) {
	if len(args) != 2 {
		return term.Term{}, false
	}
	c, ok := functions.Compare(args[0], args[1])
	if !ok {
		return term.Term{}, false
	}
	switch op {
	case "<":
		return boolTerm(c < 0), true
	case "<=":
		return boolTerm(c <= 0), true
	case ">":
		return boolTerm(c > 0), true
	default:
		return boolTerm(c >= 0), true
	}
}

func call3BoolOk(args []term.Term, f func(term.Term, term.Term, term.Term) (bool, bool)) (term.Term, bool) {
	if len(args) != 3 {
		return term.Term{}, false
	}
	v, ok := f(args[0], args[1], args[2])
	if !ok {
		return term.Term{}, false
	}
	return boolTerm(v), true
}
