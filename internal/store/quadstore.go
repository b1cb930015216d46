package store

import (
	"sync"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
)

// Pattern is a quad pattern over object ids: a nil/zero pointer at a
// position means "unbound" (spec §3.3, §4.4.3). Bound positions carry the
// interned object id to match. GraphIn additionally narrows an unbound
// graph position to one of a dataset's declared named-graph ids (spec
// §4.6.1); nil means no such restriction.
type Pattern struct {
	Subject, Predicate, Object, Graph *uint32
	GraphIn                           []uint32
}

func bound(id *uint32) bool { return id != nil }

// chooseIndex picks the permutation whose leading columns cover the
// longest prefix of this pattern's bound positions, so pruning narrows
// the candidate range as early as possible (spec §4.4.3). Ties favor
// earlier declaration order (SPOG, POSG, OSPG, GSPO).
func (p Pattern) chooseIndex(indexes [4]*Index) *Index {
	boundByName := map[quadPosition]bool{
		posSubject:   bound(p.Subject),
		posPredicate: bound(p.Predicate),
		posObject:    bound(p.Object),
		posGraph:     bound(p.Graph),
	}
	best := indexes[0]
	bestPrefix := -1
	for _, ix := range indexes {
		names := ix.perm.positionNames()
		prefix := 0
		for _, name := range names {
			if !boundByName[name] {
				break
			}
			prefix++
		}
		if prefix > bestPrefix {
			bestPrefix = prefix
			best = ix
		}
	}
	return best
}

// instructions builds the chosen index's per-position ScanInstruction
// array from this pattern, in that index's permutation column order.
func (p Pattern) instructions(perm Permutation) [4]ScanInstruction {
	valByName := map[quadPosition]*uint32{
		posSubject:   p.Subject,
		posPredicate: p.Predicate,
		posObject:    p.Object,
		posGraph:     p.Graph,
	}
	var out [4]ScanInstruction
	for i, name := range perm.positionNames() {
		if v := valByName[name]; v != nil {
			out[i] = In(*v)
		} else {
			out[i] = Unbound()
		}
	}
	return out
}

// QuadStore is the MVCC in-memory quad index (spec §4.4): one term
// dictionary shared across four canonical permutation indexes, a
// single-writer lock, and a monotonic version counter readers snapshot
// at the start of every scan.
type QuadStore struct {
	dict      *Dictionary
	indexes   [4]*Index
	versions  versionCounter
	writeLock sync.Mutex

	graphsMu sync.RWMutex
	graphs   map[uint32]*VersionRange // named graphs declared empty or explicitly (spec §4.4.7 insert_named_graph)
}

// NewQuadStore returns an empty store. rowGroupSize <= 0 uses
// DefaultRowGroupSize.
func NewQuadStore(rowGroupSize int) *QuadStore {
	s := &QuadStore{
		dict:   NewDictionary(),
		graphs: make(map[uint32]*VersionRange),
	}
	s.indexes[PermSPOG] = newIndex(PermSPOG, rowGroupSize)
	s.indexes[PermPOSG] = newIndex(PermPOSG, rowGroupSize)
	s.indexes[PermOSPG] = newIndex(PermOSPG, rowGroupSize)
	s.indexes[PermGSPO] = newIndex(PermGSPO, rowGroupSize)
	return s
}

// Dictionary exposes the store's term dictionary (e.g. for columnar
// encoding of query results back into term.Term values).
func (s *QuadStore) Dictionary() *Dictionary { return s.dict }

// Snapshot returns the version number a new scan should read at: every
// write committed strictly before this call is visible, nothing staged
// by an in-flight writer is.
func (s *QuadStore) Snapshot() Version { return s.versions.current() }

// containsLiveUnsafe reports whether q is live right now, from the
// perspective of the in-flight writer (used to decide whether Insert/
// Remove is a no-op). Must only be called while holding writeLock, i.e.
// from within a Txn method.
func (s *QuadStore) containsLiveUnsafe(q Quad) bool {
	return s.indexes[PermSPOG].liveNow(q)
}

// Contains reports whether q is visible at snapshot v.
func (s *QuadStore) Contains(v Version, q Quad) bool {
	ix := s.indexes[PermSPOG]
	cols := toCols(PermSPOG.positions(q))
	i, found := ix.search(cols)
	if !found {
		return false
	}
	return ix.entries[i].versions.coversAny(v)
}

// Begin opens a write transaction. Only one may be open at a time.
func (s *QuadStore) Begin() (*Txn, error) { return s.beginTxn() }

// QuadsForPattern returns every quad visible at v matching pattern,
// choosing whichever permutation index covers the longest bound prefix
// and pruning the rest via ScanInstructions (spec §4.4.3, §4.4.4).
func (s *QuadStore) QuadsForPattern(v Version, p Pattern) []Quad {
	ix := p.chooseIndex(s.indexes)
	instrs := p.instructions(ix.perm)
	rows := ix.scan(v, instrs)
	out := make([]Quad, 0, len(rows))
	for _, cols := range rows {
		out = append(out, fromCols(ix.perm, cols))
	}
	return filterGraphIn(out, p.GraphIn)
}

// filterGraphIn drops quads outside allowed, the post-scan dataset
// restriction a pattern's GraphIn carries (spec §4.6.1): the permutation
// indexes prune on equality only, so a "graph in this set" restriction is
// applied as a row filter after the index scan rather than pushed into
// pruneEntries.
func filterGraphIn(quads []Quad, allowed []uint32) []Quad {
	if len(allowed) == 0 {
		return quads
	}
	ids := make(map[uint32]bool, len(allowed))
	for _, id := range allowed {
		ids[id] = true
	}
	out := quads[:0]
	for _, q := range quads {
		if ids[uint32(q.Graph)] {
			out = append(out, q)
		}
	}
	return out
}

// fromCols reconstructs a Quad from a permutation's column order.
func fromCols(perm Permutation, cols [4]uint32) Quad {
	names := perm.positionNames()
	var q Quad
	for i, name := range names {
		switch name {
		case posSubject:
			q.Subject = columnar.ObjectID(cols[i])
		case posPredicate:
			q.Predicate = columnar.ObjectID(cols[i])
		case posObject:
			q.Object = columnar.ObjectID(cols[i])
		case posGraph:
			q.Graph = columnar.ObjectID(cols[i])
		}
	}
	return q
}

// NamedGraphs returns every graph id that has been explicitly declared
// (by insert_named_graph) and is live at v; a graph that only appears in
// the graph position of inserted quads is not included.
func (s *QuadStore) NamedGraphs(v Version) []uint32 {
	s.graphsMu.RLock()
	defer s.graphsMu.RUnlock()
	var out []uint32
	for id, vr := range s.graphs {
		if vr.coversAny(v) {
			out = append(out, id)
		}
	}
	return out
}

// InsertNamedGraph declares graph id present (possibly empty), staged
// under t.
func (t *Txn) InsertNamedGraph(id uint32) {
	t.store.graphsMu.Lock()
	defer t.store.graphsMu.Unlock()
	vr, ok := t.store.graphs[id]
	if !ok {
		vr = &VersionRange{}
		t.store.graphs[id] = vr
	}
	if !vr.isLiveNow() {
		vr.openForTxn()
	}
}

// RemoveNamedGraph un-declares graph id, staged under t. It does not by
// itself remove the graph's quads; callers clear those separately
// (spec's clear_graph composes RemoveNamedGraph with per-quad Remove).
func (t *Txn) RemoveNamedGraph(id uint32) {
	t.store.graphsMu.Lock()
	defer t.store.graphsMu.Unlock()
	if vr, ok := t.store.graphs[id]; ok {
		vr.closeForTxn()
	}
}
