package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mkEntries(cols ...[4]uint32) []quadEntry {
	out := make([]quadEntry, len(cols))
	for i, c := range cols {
		out[i] = quadEntry{cols: c}
	}
	return out
}

func TestPruneEntriesSingletonInNarrowsPrefix(t *testing.T) {
	entries := mkEntries(
		[4]uint32{1, 1, 1, 0},
		[4]uint32{1, 2, 1, 0},
		[4]uint32{2, 1, 1, 0},
		[4]uint32{2, 2, 1, 0},
	)
	lo, hi, satisfied := pruneEntries(entries, [4]ScanInstruction{In(2), Unbound(), Unbound(), Unbound()})
	assert.Equal(t, 1, satisfied)
	assert.Equal(t, []quadEntry{entries[2], entries[3]}, entries[lo:hi])
}

func TestPruneEntriesBetweenNarrows(t *testing.T) {
	entries := mkEntries(
		[4]uint32{1, 0, 0, 0},
		[4]uint32{2, 0, 0, 0},
		[4]uint32{3, 0, 0, 0},
		[4]uint32{4, 0, 0, 0},
	)
	lo, hi, satisfied := pruneEntries(entries, [4]ScanInstruction{Between(2, 3), Unbound(), Unbound(), Unbound()})
	assert.Equal(t, 1, satisfied)
	assert.Equal(t, entries[1:3], entries[lo:hi])
}

func TestPruneEntriesStopsAtUnboundedPosition(t *testing.T) {
	entries := mkEntries([4]uint32{1, 5, 9, 0}, [4]uint32{1, 6, 9, 0})
	lo, hi, satisfied := pruneEntries(entries, [4]ScanInstruction{In(1), Unbound(), In(9), Unbound()})
	assert.Equal(t, 1, satisfied) // stops after position 0; position 1 is unbound
	assert.Equal(t, entries, entries[lo:hi])
}

func TestPruneEntriesFalseYieldsEmptyRange(t *testing.T) {
	entries := mkEntries([4]uint32{1, 0, 0, 0})
	lo, hi, satisfied := pruneEntries(entries, [4]ScanInstruction{False(), Unbound(), Unbound(), Unbound()})
	assert.Equal(t, lo, hi)
	assert.Equal(t, 4, satisfied)
}

func TestScanInstructionMatches(t *testing.T) {
	cols := [4]uint32{1, 2, 3, 4}
	assert.True(t, Unbound().matches(cols, 0))
	assert.True(t, In(1, 9).matches(cols, 0))
	assert.False(t, In(9).matches(cols, 0))
	assert.True(t, Between(0, 5).matches(cols, 1))
	assert.False(t, Between(3, 5).matches(cols, 1))
	assert.True(t, Except(100).matches(cols, 2))
	assert.False(t, Except(3).matches(cols, 2))
	assert.True(t, EqualToPosition(1).matches([4]uint32{2, 2, 0, 0}, 0))
	assert.False(t, EqualToPosition(1).matches(cols, 0))
	assert.False(t, False().matches(cols, 0))
}
