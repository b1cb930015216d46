package store

import "sort"

// PredicateKind discriminates the five scan-instruction predicate shapes
// of spec §4.4.4.
type PredicateKind int

const (
	PredUnbound PredicateKind = iota
	PredIn
	PredEqualTo
	PredBetween
	PredExcept
	PredFalse
)

// ScanInstruction is one position's (scan-variable-or-traverse, optional
// predicate) pair (spec §4.4.4).
type ScanInstruction struct {
	Kind     PredicateKind
	In       []uint32 // PredIn / PredExcept
	Lo, Hi   uint32   // PredBetween, inclusive
	EqualPos int      // PredEqualTo: index (0-3) of the other position in this scan
}

// Unbound returns the instruction meaning "no constraint, bind the
// variable".
func Unbound() ScanInstruction { return ScanInstruction{Kind: PredUnbound} }

// In constructs an In(S) instruction.
func In(ids ...uint32) ScanInstruction { return ScanInstruction{Kind: PredIn, In: ids} }

// Between constructs an inclusive Between(lo, hi) instruction.
func Between(lo, hi uint32) ScanInstruction { return ScanInstruction{Kind: PredBetween, Lo: lo, Hi: hi} }

// Except constructs an anti-set instruction.
func Except(ids ...uint32) ScanInstruction { return ScanInstruction{Kind: PredExcept, In: ids} }

// False constructs a vacuously-empty instruction.
func False() ScanInstruction { return ScanInstruction{Kind: PredFalse} }

// EqualToPosition constructs a self-join predicate against another
// position in the same scan.
func EqualToPosition(pos int) ScanInstruction { return ScanInstruction{Kind: PredEqualTo, EqualPos: pos} }

// prunable reports whether this instruction can narrow a sorted prefix
// range via binary search: a singleton In, or a Between. Anything else
// (unbound, multi-element In, EqualTo, Except) halts prefix pruning at
// this position, per spec §4.4.4.
func (s ScanInstruction) prunable() bool {
	return s.Kind == PredBetween || (s.Kind == PredIn && len(s.In) == 1)
}

// narrowRange binary-searches entries[lo:hi) (already sorted by cols) for
// the sub-range matching instruction at column posIdx, returning the new
// [lo, hi) bounds. Only called when prunable() is true.
func narrowRange(entries []quadEntry, lo, hi, posIdx int, instr ScanInstruction) (int, int) {
	var rangeLo, rangeHi uint32
	switch instr.Kind {
	case PredBetween:
		rangeLo, rangeHi = instr.Lo, instr.Hi
	case PredIn:
		rangeLo, rangeHi = instr.In[0], instr.In[0]
	default:
		return lo, hi
	}
	newLo := lo + sort.Search(hi-lo, func(i int) bool {
		return entries[lo+i].cols[posIdx] >= rangeLo
	})
	newHi := lo + sort.Search(hi-lo, func(i int) bool {
		return entries[lo+i].cols[posIdx] > rangeHi
	})
	if newHi < newLo {
		newHi = newLo
	}
	return newLo, newHi
}

// pruneEntries applies the scan's instructions in permutation order,
// narrowing the candidate range position by position for as long as each
// position's predicate is prunable; it returns the narrowed [lo, hi)
// range and how many leading positions were fully satisfied by the
// narrowing (so the scan body's per-row filter can skip re-checking
// them), matching spec §4.4.4's pruning contract. Pruning is always
// conservative: it never excludes a row that could still match.
func pruneEntries(entries []quadEntry, instructions [4]ScanInstruction) (lo, hi, satisfiedPrefix int) {
	lo, hi = 0, len(entries)
	for pos := 0; pos < 4; pos++ {
		instr := instructions[pos]
		if instr.Kind == PredFalse {
			return lo, lo, 4
		}
		if !instr.prunable() {
			break
		}
		lo, hi = narrowRange(entries, lo, hi, pos, instr)
		satisfiedPrefix = pos + 1
		if lo >= hi {
			break
		}
	}
	return lo, hi, satisfiedPrefix
}

// matches reports whether a row's cols satisfy instruction at posIdx,
// used by the scan body for any position pruning could not fully resolve.
func (s ScanInstruction) matches(cols [4]uint32, posIdx int) bool {
	v := cols[posIdx]
	switch s.Kind {
	case PredUnbound:
		return true
	case PredIn:
		for _, c := range s.In {
			if c == v {
				return true
			}
		}
		return false
	case PredBetween:
		return v >= s.Lo && v <= s.Hi
	case PredExcept:
		for _, c := range s.In {
			if c == v {
				return false
			}
		}
		return true
	case PredEqualTo:
		return v == cols[s.EqualPos]
	case PredFalse:
		return false
	default:
		return false
	}
}
