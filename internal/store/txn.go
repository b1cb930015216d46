package store

import "github.com/pkg/errors"

// ErrWriteInProgress is returned by Begin when another write transaction
// is already open (spec §4.4.6: single-writer).
var ErrWriteInProgress = errors.New("store: a write transaction is already in progress")

// Txn is a single-writer, read-your-own-writes transaction over a
// QuadStore (spec §4.4.6). Readers never see a Txn; they only ever see
// the store's committed snapshot at the version current when their scan
// began.
type Txn struct {
	store    *QuadStore
	done     bool
	inserted int
	removed  int
}

// beginTxn acquires the store's single writer lock. Callers must Commit
// or Rollback exactly once.
func (s *QuadStore) beginTxn() (*Txn, error) {
	if !s.writeLock.TryLock() {
		return nil, ErrWriteInProgress
	}
	return &Txn{store: s}, nil
}

// Insert stages q for insertion if it is not already live, reporting
// whether the store's content changed (spec §4.4.7 Insert contract).
func (t *Txn) Insert(q Quad) bool {
	if t.store.containsLiveUnsafe(q) {
		return false
	}
	for _, ix := range t.store.indexes {
		ix.insert(q)
	}
	t.inserted++
	return true
}

// Remove stages q for removal if currently live, reporting whether the
// store's content changed.
func (t *Txn) Remove(q Quad) bool {
	if !t.store.containsLiveUnsafe(q) {
		return false
	}
	for _, ix := range t.store.indexes {
		ix.remove(q)
	}
	t.removed++
	return true
}

// Commit publishes every staged interval at a freshly advanced version,
// making the writes atomically visible to new readers, then releases the
// writer lock.
func (t *Txn) Commit() Version {
	defer t.finish()
	v := t.store.versions.advance()
	for _, ix := range t.store.indexes {
		ix.publish(v)
	}
	t.store.graphsMu.Lock()
	for _, vr := range t.store.graphs {
		vr.publish(v)
	}
	t.store.graphsMu.Unlock()
	return v
}

// Rollback discards every staged interval and releases the writer lock.
func (t *Txn) Rollback() {
	defer t.finish()
	for _, ix := range t.store.indexes {
		ix.rollback()
	}
	t.store.graphsMu.Lock()
	for _, vr := range t.store.graphs {
		vr.rollback()
	}
	t.store.graphsMu.Unlock()
}

func (t *Txn) finish() {
	if t.done {
		return
	}
	t.done = true
	t.store.writeLock.Unlock()
}
