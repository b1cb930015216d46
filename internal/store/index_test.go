package store

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(s, p, o, g uint32) Quad {
	return Quad{
		Subject:   columnar.ObjectID(s),
		Predicate: columnar.ObjectID(p),
		Object:    columnar.ObjectID(o),
		Graph:     columnar.ObjectID(g),
	}
}

func TestIndexInsertPublishScan(t *testing.T) {
	ix := newIndex(PermSPOG, 16)
	ix.insert(q(1, 2, 3, 0))
	ix.insert(q(1, 2, 4, 0))
	ix.publish(1)

	rows := ix.scan(1, [4]ScanInstruction{In(1), In(2), Unbound(), Unbound()})
	assert.Len(t, rows, 2)
}

func TestIndexScanInvisibleBeforeCommit(t *testing.T) {
	ix := newIndex(PermSPOG, 16)
	ix.insert(q(1, 2, 3, 0))
	rows := ix.scan(0, [4]ScanInstruction{Unbound(), Unbound(), Unbound(), Unbound()})
	assert.Empty(t, rows)
}

func TestIndexRemoveClosesInterval(t *testing.T) {
	ix := newIndex(PermSPOG, 16)
	ix.insert(q(1, 2, 3, 0))
	ix.publish(1)
	require.True(t, ix.liveNow(q(1, 2, 3, 0)))

	ix.remove(q(1, 2, 3, 0))
	ix.publish(2)

	assert.True(t, ix.scan(1, [4]ScanInstruction{Unbound(), Unbound(), Unbound(), Unbound()}) != nil)
	assert.Empty(t, ix.scan(2, [4]ScanInstruction{Unbound(), Unbound(), Unbound(), Unbound()}))
}

func TestIndexRowGroupsChunkByConfiguredSize(t *testing.T) {
	ix := newIndex(PermSPOG, 2)
	for i := uint32(0); i < 5; i++ {
		ix.insert(q(i, 0, 0, 0))
	}
	ix.publish(1)
	groups := ix.rowGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, 2, len(groups[0].entries))
	assert.Equal(t, 1, len(groups[2].entries))
}

func TestIndexRollbackDiscardsStagedInsert(t *testing.T) {
	ix := newIndex(PermSPOG, 16)
	ix.insert(q(1, 2, 3, 0))
	ix.rollback()
	assert.Empty(t, ix.scan(1, [4]ScanInstruction{Unbound(), Unbound(), Unbound(), Unbound()}))
}
