// Package history provides a bounded, linear undo/redo log over
// immutable graph snapshots.
//
// The log is a sequence of snapshots plus a cursor. Recording a new
// snapshot after an undo truncates the abandoned future - there is no
// branching history. Once the number of undoable steps exceeds the
// capacity, the oldest snapshot is evicted and its state becomes
// unrecoverable.
//
// Snapshots are opaque byte slices (the engine stores serialized graph
// records) and are never mutated once recorded, so reading past
// snapshots is safe under the engine's single-writer assumption.
package history

// DefaultCapacity is the default number of undoable steps.
const DefaultCapacity = 50

// Log is a bounded undo/redo log. The zero value is not usable - use
// [New]. Like the rest of the engine, a Log assumes a single caller.
type Log struct {
	snaps    [][]byte
	cursor   int // index of the current snapshot
	capacity int // maximum undoable steps
}

// New creates a log holding the given initial snapshot as its oldest
// state, with the given capacity of undoable steps. A capacity below 1
// falls back to [DefaultCapacity].
func New(initial []byte, capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{snaps: [][]byte{initial}, capacity: capacity}
}

// Record appends a snapshot after the cursor, discarding any snapshots
// beyond it (a new action after an undo abandons the redone-away
// branch), and advances the cursor. When the log exceeds its capacity
// of undoable steps, the oldest snapshot is evicted.
func (l *Log) Record(snap []byte) {
	l.snaps = append(l.snaps[:l.cursor+1], snap)
	l.cursor++
	if l.cursor > l.capacity {
		l.snaps = l.snaps[1:]
		l.cursor--
	}
}

// Undo steps the cursor back one snapshot and returns it. Reports false
// without moving when the cursor is already at the oldest snapshot.
func (l *Log) Undo() ([]byte, bool) {
	if !l.CanUndo() {
		return nil, false
	}
	l.cursor--
	return l.snaps[l.cursor], true
}

// Redo steps the cursor forward one snapshot and returns it. Reports
// false without moving when the cursor is already at the newest
// snapshot.
func (l *Log) Redo() ([]byte, bool) {
	if !l.CanRedo() {
		return nil, false
	}
	l.cursor++
	return l.snaps[l.cursor], true
}

// CanUndo reports whether an older snapshot exists.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snaps)-1 }

// Current returns the snapshot at the cursor.
func (l *Log) Current() []byte { return l.snaps[l.cursor] }

// Len returns the number of stored snapshots, including the current one.
func (l *Log) Len() int { return len(l.snaps) }
