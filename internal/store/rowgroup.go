package store

import "sort"

// DefaultRowGroupSize is the row-group size used when QueryOptions/
// StoreOptions does not override it (spec §4.4.1: "default of the host
// engine, typically a few thousand rows").
const DefaultRowGroupSize = 4096

// quadEntry is one physical row: the quad's object ids in a given
// permutation's column order, plus its MVCC version range.
type quadEntry struct {
	cols     [4]uint32
	versions VersionRange
}

// rowGroup is an in-memory batch of entries, sorted lexicographically by
// cols, covering a contiguous key range disjoint from every other row
// group in the same index (spec §4.4.1).
type rowGroup struct {
	entries []quadEntry
}

func (g *rowGroup) min() [4]uint32 { return g.entries[0].cols }
func (g *rowGroup) max() [4]uint32 { return g.entries[len(g.entries)-1].cols }

// searchInsertPos returns the index within entries where key would be
// inserted to keep the slice sorted, and whether an exact match exists at
// that index.
func (g *rowGroup) searchInsertPos(key [4]uint32) (int, bool) {
	i := sort.Search(len(g.entries), func(i int) bool {
		return !lessCols(g.entries[i].cols, key)
	})
	return i, i < len(g.entries) && g.entries[i].cols == key
}

func lessCols(a, b [4]uint32) bool {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
