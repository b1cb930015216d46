package store

import (
	"sort"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
)

// Index is one permutation's physical layout: a single list of entries
// kept sorted by cols, logically sliced into contiguous, disjoint row
// groups of at most DefaultRowGroupSize rows for batched scanning (spec
// §4.4.1). Entries carry every version an object id pair has ever held,
// so removal never deletes a row -- it closes its trailing interval.
type Index struct {
	perm         Permutation
	entries      []quadEntry
	rowGroupSize int
}

func newIndex(perm Permutation, rowGroupSize int) *Index {
	if rowGroupSize <= 0 {
		rowGroupSize = DefaultRowGroupSize
	}
	return &Index{perm: perm, rowGroupSize: rowGroupSize}
}

// insert stages a new interval for q, opened at the transaction sentinel.
// If an entry for these exact cols already exists (a prior version of the
// same quad, now removed), its existing slot gains a new interval instead
// of a duplicate row.
func (ix *Index) insert(q Quad) {
	cols := toCols(ix.perm.positions(q))
	i, found := ix.search(cols)
	if found {
		ix.entries[i].versions.openForTxn()
		return
	}
	entry := quadEntry{cols: cols}
	entry.versions.openForTxn()
	ix.entries = append(ix.entries, quadEntry{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = entry
}

// remove stages the close of q's currently-live interval, if any.
func (ix *Index) remove(q Quad) {
	cols := toCols(ix.perm.positions(q))
	i, found := ix.search(cols)
	if !found {
		return
	}
	ix.entries[i].versions.closeForTxn()
}

// liveNow reports whether q is visible to the in-flight writer right now
// (spec §4.4.6 "no phantom writes" precondition for insert/remove).
func (ix *Index) liveNow(q Quad) bool {
	cols := toCols(ix.perm.positions(q))
	i, found := ix.search(cols)
	if !found {
		return false
	}
	return ix.entries[i].versions.isLiveNow()
}

func (ix *Index) search(cols [4]uint32) (int, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool {
		return !lessCols(ix.entries[i].cols, cols)
	})
	return i, i < len(ix.entries) && ix.entries[i].cols == cols
}

// publish makes every staged interval in this index visible at v.
func (ix *Index) publish(v Version) {
	for i := range ix.entries {
		ix.entries[i].versions.publish(v)
	}
}

// rollback discards every staged interval in this index.
func (ix *Index) rollback() {
	for i := range ix.entries {
		ix.entries[i].versions.rollback()
	}
}

// rowGroups partitions entries into contiguous chunks of at most
// rowGroupSize, matching the host engine's columnar batching (spec
// §4.4.1, §4.4.5).
func (ix *Index) rowGroups() []rowGroup {
	if len(ix.entries) == 0 {
		return nil
	}
	var groups []rowGroup
	for start := 0; start < len(ix.entries); start += ix.rowGroupSize {
		end := start + ix.rowGroupSize
		if end > len(ix.entries) {
			end = len(ix.entries)
		}
		groups = append(groups, rowGroup{entries: ix.entries[start:end]})
	}
	return groups
}

// scan returns every row visible at snapshot v whose cols satisfy
// instructions, after pruning as much of the permutation-ordered prefix
// as instructions allows (spec §4.4.4, §4.4.5).
func (ix *Index) scan(v Version, instructions [4]ScanInstruction) [][4]uint32 {
	lo, hi, satisfied := pruneEntries(ix.entries, instructions)
	var out [][4]uint32
	for i := lo; i < hi; i++ {
		e := ix.entries[i]
		if !e.versions.coversAny(v) {
			continue
		}
		ok := true
		for pos := satisfied; pos < 4; pos++ {
			if !instructions[pos].matches(e.cols, pos) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e.cols)
		}
	}
	return out
}

func toCols(ids [4]columnar.ObjectID) [4]uint32 {
	var out [4]uint32
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}
