package functions

import "github.com/graphfusion/graphfusion-go/internal/term"

// Solution is a finite partial variable binding (spec §3.4), shared by
// the function family's BOUND/IS_COMPATIBLE helpers and the C6 rewriter's
// join implementation.
type Solution map[string]term.Term

// Bound implements BOUND(?var): true iff the variable is present in the
// solution (spec §4.3/§4.6).
func Bound(sol Solution, variable string) bool {
	_, ok := sol[variable]
	return ok
}

// Coalesce returns the first candidate that evaluates without a per-row
// failure (spec §4.6 COALESCE); if every candidate fails, COALESCE itself
// fails (returns ok=false) so the caller masks the row.
func Coalesce(candidates ...func() (term.Term, bool)) (term.Term, bool) {
	for _, c := range candidates {
		if v, ok := c(); ok {
			return v, true
		}
	}
	return term.Term{}, false
}

// IsCompatible reports whether two solutions agree on every variable they
// share (spec §4.6's compatibility join predicate, reused by Minus's
// left-anti join and by Join/LeftJoin in internal/sparql).
func IsCompatible(a, b Solution) bool {
	for v, ta := range a {
		if tb, ok := b[v]; ok && !ta.Eq(tb) {
			return false
		}
	}
	return true
}

// SharesBoundVariable reports whether a and b both bind at least one
// common variable, the extra clause MINUS applies on top of
// IsCompatible (spec §4.6: "MINUS-with-disjoint-domains is a no-op").
func SharesBoundVariable(a, b Solution) bool {
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}
	return false
}

// Merge combines two compatible solutions into their union (the result
// of a successful Join).
func Merge(a, b Solution) Solution {
	out := make(Solution, len(a)+len(b))
	for v, t := range a {
		out[v] = t
	}
	for v, t := range b {
		out[v] = t
	}
	return out
}
