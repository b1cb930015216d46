// Package store implements the MVCC in-memory quad index of spec §4.4:
// a process-wide term dictionary, four canonical index permutations, and
// snapshot-isolated, single-writer/many-reader transactions.
package store

import (
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"golang.org/x/sync/singleflight"
)

// Dictionary assigns a stable 32-bit object id to every term ever
// inserted (spec §4.4.2). Ids are never reclaimed or rebuilt; 0 is
// reserved for null/the default graph. Dictionary implements
// columnar.Dictionary so the columnar encodings can intern/resolve
// without importing internal/store.
type Dictionary struct {
	mu     sync.RWMutex
	byTerm map[string]columnar.ObjectID
	byID   []term.Term // index 0 is the reserved null entry

	// group collapses concurrent first-Intern calls for the same term
	// (e.g. many goroutines inserting quads that share a predicate) into
	// a single assignment instead of racing on the write lock below.
	group singleflight.Group
}

// NewDictionary returns an empty dictionary with the reserved null entry
// pre-populated at id 0.
func NewDictionary() *Dictionary {
	return &Dictionary{
		byTerm: make(map[string]columnar.ObjectID),
		byID:   []term.Term{{}},
	}
}

// dictKey is the term's RDF-equality key (spec §3.1): kind, plus the
// fields relevant to that kind, disjoint across kinds by construction.
func dictKey(t term.Term) string {
	switch t.Kind {
	case term.KindNamedNode:
		return "N" + t.Named.IRI
	case term.KindBlankNode:
		return "B" + t.Blank.ID
	case term.KindLiteral:
		return "L" + t.Literal.Datatype + "\x00" + t.Literal.Language + "\x00" + t.Literal.Lexical
	default:
		return ""
	}
}

// Intern returns t's object id, assigning a fresh one on first sight.
func (d *Dictionary) Intern(t term.Term) columnar.ObjectID {
	key := dictKey(t)
	if key == "" {
		return columnar.NullObjectID
	}
	d.mu.RLock()
	if id, ok := d.byTerm[key]; ok {
		d.mu.RUnlock()
		return id
	}
	d.mu.RUnlock()

	id, _, _ := d.group.Do(key, func() (any, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if id, ok := d.byTerm[key]; ok {
			return id, nil
		}
		id := columnar.ObjectID(len(d.byID))
		d.byID = append(d.byID, t)
		d.byTerm[key] = id
		return id, nil
	})
	return id.(columnar.ObjectID)
}

// TryLookup resolves t to its object id without interning it, for callers
// building a scan pattern from a constant that may never have been seen
// before (a predicate absent from the store should fail the scan, not
// silently add it to the dictionary).
func (d *Dictionary) TryLookup(t term.Term) (columnar.ObjectID, bool) {
	key := dictKey(t)
	if key == "" {
		return columnar.NullObjectID, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byTerm[key]
	return id, ok
}

// Lookup resolves an object id back to its term.
func (d *Dictionary) Lookup(id columnar.ObjectID) (term.Term, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id == columnar.NullObjectID || int(id) >= len(d.byID) {
		return term.Term{}, false
	}
	return d.byID[id], true
}

// Len reports how many terms (including the reserved null entry) have
// been interned.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}

// InternBatch interns every term in terms as a single columnar encode
// (spec §3.2.2's plain encoding, §4.2): Extend and LoadFromReader build
// one arrow-backed Array for the whole batch via columnar.NewPlainBuilder
// and resolve it to object ids with columnar.EncodeObjectIDs instead of
// calling Intern term by term. Plain encoding stores every term verbatim
// (no value parsing), so the ids returned are identical to interning each
// term individually, just batched through the columnar array machinery.
func (d *Dictionary) InternBatch(terms []term.Term) []columnar.ObjectID {
	b := columnar.NewPlainBuilder(memory.NewGoAllocator())
	for _, t := range terms {
		b.AppendTerm(t)
	}
	arr := b.Finalize()
	ida := columnar.EncodeObjectIDs(arr, d)
	ids := make([]columnar.ObjectID, ida.Len())
	for i := range ids {
		ids[i] = ida.At(i)
	}
	return ids
}

// LookupBatch resolves ids back to terms as a single columnar decode, the
// inverse of InternBatch, used by DumpToWriter/DumpGraphToWriter to
// export a graph's quads without reformatting any literal's lexical form.
func (d *Dictionary) LookupBatch(ids []columnar.ObjectID) []term.Term {
	ida := columnar.NewObjectIDArray(append([]columnar.ObjectID(nil), ids...))
	arr := columnar.DecodeObjectIDs(ida, d, columnar.NewPlainBuilder(memory.NewGoAllocator()))
	out := make([]term.Term, arr.Len())
	for i := range out {
		out[i] = arr.Decode(i)
	}
	return out
}
