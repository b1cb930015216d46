package store

import "sync/atomic"

// Version is a snapshot counter value (spec §4.4.6).
type Version uint64

// txnSentinel marks an interval endpoint as "owned by the in-flight
// transaction T", per spec §4.4.6: "a transient transaction id T >> the
// current version". Because only one writer runs at a time, a single
// sentinel value (rather than a per-transaction id) is sufficient to
// disambiguate "staged by the current writer" from "a committed version
// number", since a new transaction never starts before the previous one's
// sentinel intervals have all been resolved by commit or rollback.
const txnSentinel Version = 1<<64 - 1

// Interval is a half-open version range [Start, End); End == 0 means
// "still open" (the quad or graph entry is live from Start onward).
type Interval struct {
	Start Version
	End   Version // 0 means open
}

// covers reports whether snapshot v falls inside the interval.
func (iv Interval) covers(v Version) bool {
	if v < iv.Start {
		return false
	}
	return iv.End == 0 || v < iv.End
}

// VersionRange is the sorted list of intervals a quad or named-graph
// entry carries (spec §4.4.6). A term is live at snapshot v iff some
// interval covers v.
type VersionRange struct {
	Intervals []Interval
}

// coversAny reports whether snapshot v is covered by any interval.
func (r VersionRange) coversAny(v Version) bool {
	for _, iv := range r.Intervals {
		if iv.covers(v) {
			return true
		}
	}
	return false
}

// isLiveNow reports whether the range has an open trailing interval (no
// end, committed or staged), i.e. the entity is currently live as the
// writer sees it: a staged insert counts as live, a staged remove does
// not. Ignores any particular snapshot -- used by insert's "already live"
// phantom-write check during the write transaction itself (spec §4.4.6
// "no phantom writes").
func (r VersionRange) isLiveNow() bool {
	if len(r.Intervals) == 0 {
		return false
	}
	last := r.Intervals[len(r.Intervals)-1]
	return last.End == 0
}

// openForTxn appends a new interval starting at the transaction sentinel,
// staging an insert.
func (r *VersionRange) openForTxn() {
	r.Intervals = append(r.Intervals, Interval{Start: txnSentinel})
}

// closeForTxn closes the trailing open interval at the transaction
// sentinel, staging a remove.
func (r *VersionRange) closeForTxn() {
	if len(r.Intervals) == 0 {
		return
	}
	last := &r.Intervals[len(r.Intervals)-1]
	if last.End == 0 {
		last.End = txnSentinel
	}
}

// publish rewrites every interval endpoint equal to txnSentinel to v,
// atomically making staged changes visible (spec §4.4.6 commit step).
func (r *VersionRange) publish(v Version) {
	for i := range r.Intervals {
		if r.Intervals[i].Start == txnSentinel {
			r.Intervals[i].Start = v
		}
		if r.Intervals[i].End == txnSentinel {
			r.Intervals[i].End = v
		}
	}
}

// rollback removes every interval endpoint equal to txnSentinel,
// collapsing Start(T) to empty and StartEnd(a, T) to Start(a) (spec
// §4.4.6 rollback step).
func (r *VersionRange) rollback() {
	out := r.Intervals[:0]
	for _, iv := range r.Intervals {
		if iv.Start == txnSentinel {
			continue // never became visible
		}
		if iv.End == txnSentinel {
			iv.End = 0
		}
		out = append(out, iv)
	}
	r.Intervals = out
}

// versionCounter is the monotonic counter behind every Store's snapshots.
type versionCounter struct {
	v atomic.Uint64
}

func (c *versionCounter) current() Version { return Version(c.v.Load()) }

func (c *versionCounter) advance() Version {
	return Version(c.v.Add(1))
}
