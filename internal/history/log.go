// Package history keeps a linear sequence of full pixel-buffer snapshots
// with a cursor. There is no branching: pushing after an undo discards the
// redo tail.
package history

import (
	"image"
	"sync"
)

// DefaultMaxEntries bounds the log when no explicit limit is configured.
// Snapshots are full-resolution buffers, so the cap matters.
const DefaultMaxEntries = 50

// Log is the undo/redo stack. Entries are immutable snapshots; the entry at
// the cursor always matches the visible working buffer, which is the
// caller's responsibility to maintain via restore.
type Log struct {
	mu     sync.Mutex
	snaps  []*image.RGBA
	cursor int
	max    int
}

// NewLog creates a log that evicts its oldest entry once max is exceeded.
// A non-positive max selects DefaultMaxEntries.
func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Log{snaps: make([]*image.RGBA, 0, max), cursor: -1, max: max}
}

// Push appends a snapshot after the cursor, truncating any redo entries
// first. Call once per completed stroke or applied crop, never per
// pointer-move.
func (l *Log) Push(buf *image.RGBA) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor < len(l.snaps)-1 {
		l.snaps = l.snaps[:l.cursor+1]
	}
	l.snaps = append(l.snaps, buf)
	if len(l.snaps) > l.max {
		l.snaps = l.snaps[len(l.snaps)-l.max:]
	}
	l.cursor = len(l.snaps) - 1
}

// Undo steps the cursor back and returns the buffer now under it, or nil
// when already at the oldest entry. A nil return means the caller must not
// touch the working surface.
func (l *Log) Undo() *image.RGBA {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cursor <= 0 {
		return nil
	}
	l.cursor--
	return l.snaps[l.cursor]
}

// Redo steps the cursor forward and returns the buffer now under it, or nil
// when already at the newest entry.
func (l *Log) Redo() *image.RGBA {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cursor >= len(l.snaps)-1 {
		return nil
	}
	l.cursor++
	return l.snaps[l.cursor]
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < len(l.snaps)-1
}

// Len returns the number of stored snapshots.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snaps)
}

// Clear drops every snapshot. Call on image load before pushing the first
// entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snaps = l.snaps[:0]
	l.cursor = -1
}
