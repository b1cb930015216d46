package store

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) *uint32 { return &v }

func TestQuadStoreInsertCommitThenVisible(t *testing.T) {
	s := NewQuadStore(16)
	before := s.Snapshot()

	txn, err := s.Begin()
	require.NoError(t, err)
	changed := txn.Insert(q(1, 2, 3, 0))
	assert.True(t, changed)
	after := txn.Commit()

	assert.False(t, s.Contains(before, q(1, 2, 3, 0)))
	assert.True(t, s.Contains(after, q(1, 2, 3, 0)))
}

func TestQuadStoreDuplicateInsertIsNoOp(t *testing.T) {
	s := NewQuadStore(16)
	txn, _ := s.Begin()
	assert.True(t, txn.Insert(q(1, 1, 1, 0)))
	assert.False(t, txn.Insert(q(1, 1, 1, 0)))
	txn.Commit()
}

func TestQuadStoreSecondWriterBlockedUntilCommit(t *testing.T) {
	s := NewQuadStore(16)
	txn, err := s.Begin()
	require.NoError(t, err)

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrWriteInProgress)

	txn.Commit()
	txn2, err := s.Begin()
	require.NoError(t, err)
	txn2.Rollback()
}

func TestQuadStoreRollbackLeavesNoTrace(t *testing.T) {
	s := NewQuadStore(16)
	txn, _ := s.Begin()
	txn.Insert(q(5, 5, 5, 0))
	txn.Rollback()

	txn2, _ := s.Begin()
	v := txn2.Commit()
	assert.False(t, s.Contains(v, q(5, 5, 5, 0)))
}

func TestQuadStoreQuadsForPatternChoosesMatchingIndex(t *testing.T) {
	s := NewQuadStore(16)
	txn, _ := s.Begin()
	txn.Insert(q(1, 10, 100, 0))
	txn.Insert(q(1, 10, 200, 0))
	txn.Insert(q(2, 10, 100, 0))
	v := txn.Commit()

	got := s.QuadsForPattern(v, Pattern{Subject: u32(1), Predicate: u32(10)})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, columnar.ObjectID(1), r.Subject)
		assert.Equal(t, columnar.ObjectID(10), r.Predicate)
	}
}

func TestQuadStoreQuadsForPatternUnboundScansAll(t *testing.T) {
	s := NewQuadStore(16)
	txn, _ := s.Begin()
	txn.Insert(q(1, 1, 1, 0))
	txn.Insert(q(2, 2, 2, 0))
	v := txn.Commit()

	got := s.QuadsForPattern(v, Pattern{})
	assert.Len(t, got, 2)
}

func TestQuadStoreNamedGraphLifecycle(t *testing.T) {
	s := NewQuadStore(16)
	txn, _ := s.Begin()
	txn.InsertNamedGraph(7)
	v := txn.Commit()

	assert.Contains(t, s.NamedGraphs(v), uint32(7))

	txn2, _ := s.Begin()
	txn2.RemoveNamedGraph(7)
	v2 := txn2.Commit()
	assert.NotContains(t, s.NamedGraphs(v2), uint32(7))
	assert.Contains(t, s.NamedGraphs(v), uint32(7)) // old snapshot unaffected
}

func TestPatternChooseIndexPrefersLongestBoundPrefix(t *testing.T) {
	s := NewQuadStore(16)
	p := Pattern{Object: u32(5)}
	ix := p.chooseIndex(s.indexes)
	assert.Equal(t, PermOSPG, ix.perm)
}
