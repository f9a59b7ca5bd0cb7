// Package queue implements the index-addressable sparse message log shared
// by the mutual queue and each slot's per-connection queue. Grounded on the
// reference peer_queue_t: a growable array keyed by index, where growing
// past the current length leaves zero-filled, not-ready holes.
package queue

import "github.com/sessionwire/peer/internal/wire"

// Entry is one committed (or pending) queue slot.
type Entry struct {
	Ready bool
	Time  int64
	Actor int64
	Data  []byte
}

// Queue is a sparse, index-addressable log of Entry values.
type Queue struct {
	entries []Entry
}

// Len returns the queue's logical length, including any not-ready holes.
func (q *Queue) Len() int64 {
	return int64(len(q.entries))
}

// At returns the entry at index, or the zero Entry and false if index is
// out of range.
func (q *Queue) At(index int64) (Entry, bool) {
	if index < 0 || index >= int64(len(q.entries)) {
		return Entry{}, false
	}
	return q.entries[index], true
}

// Slice returns the entries in [from, to), or nil if the range is empty or
// out of bounds.
func (q *Queue) Slice(from, to int64) []Entry {
	if from < 0 {
		from = 0
	}
	if to > int64(len(q.entries)) {
		to = int64(len(q.entries))
	}
	if from >= to {
		return nil
	}
	return q.entries[from:to]
}

// Append commits a new ready entry at the tail and returns its index.
func (q *Queue) Append(time, actor int64, data []byte) int64 {
	index := int64(len(q.entries))
	q.entries = append(q.entries, Entry{Ready: true, Time: time, Actor: actor, Data: data})
	return index
}

// Insert commits an entry at an explicit index, matching peer_insert:
//   - index == wire.Undefined is a silent no-op (service messages never
//     carry an index);
//   - index < 0 (and not Undefined) is an error;
//   - an already-ready entry at index is left untouched (the first writer
//     to fill an index wins and later writes are silently ignored; see
//     DESIGN.md — no checksum comparison is performed);
//   - otherwise the queue grows with not-ready holes up to index and the
//     entry is committed there.
func (q *Queue) Insert(index, time, actor int64, data []byte) wire.Status {
	if index == wire.Undefined {
		return wire.StatusOK
	}
	if index < 0 {
		return wire.StatusInvalidMessageIndex
	}

	if index < int64(len(q.entries)) {
		if q.entries[index].Ready {
			return wire.StatusOK
		}
		q.entries[index] = Entry{Ready: true, Time: time, Actor: actor, Data: data}
		return wire.StatusOK
	}

	grown := make([]Entry, index+1-int64(len(q.entries)))
	q.entries = append(q.entries, grown...)
	q.entries[index] = Entry{Ready: true, Time: time, Actor: actor, Data: data}
	return wire.StatusOK
}

// StampTimeFrom rewrites the Time field of every ready entry in [from, len)
// to time. Used by the host tick to timestamp the mutual queue's
// not-yet-cursored tail with the freshly advanced authoritative clock.
func (q *Queue) StampTimeFrom(from, time int64) {
	if from < 0 {
		from = 0
	}
	for i := from; i < int64(len(q.entries)); i++ {
		if q.entries[i].Ready {
			q.entries[i].Time = time
		}
	}
}

// StampActorFrom rewrites the Actor field of every entry in [from, len).
// Used by a client slot retroactively stamping locally-queued messages
// once the host assigns its actor id in SESSION_RESPONSE.
func (q *Queue) StampActorFrom(from, actor int64) {
	if from < 0 {
		from = 0
	}
	for i := from; i < int64(len(q.entries)); i++ {
		q.entries[i].Actor = actor
	}
}
